package main

import (
	"log"
	"os"

	"github.com/alex-user-go/hotel-widget/internal/app"
)

// @title Hotel Price Widget API
// @version 1.0
// @description Compares hotel prices across affiliate booking providers and serves an embeddable widget.
// @BasePath /
// @schemes http https
func main() {
	if err := app.Run(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
