package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Query holds the normalized search parameters passed to every provider.
type Query struct {
	HotelName string
	City      string
	CheckIn   string
	CheckOut  string
	Adults    int
	Rooms     int
	Currency  string
}

// Text returns the free-text destination sent to the booking sites.
func (q Query) Text() string {
	parts := make([]string, 0, 2)
	for _, p := range []string{q.HotelName, q.City} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Quote is a single provider's answer for a query.
// Price is nil when the provider has no price to offer.
type Quote struct {
	Provider string
	Currency string
	Price    *int
	Deeplink string
}

// Provider defines the interface for affiliate price providers.
type Provider interface {
	// Name returns the display name of the provider.
	Name() string
	// Quote returns a price row and deep link for the query.
	Quote(ctx context.Context, q Query) (Quote, error)
}

// Mode selects how providers produce prices.
type Mode string

const (
	// ModeDemo returns synthetic random prices.
	ModeDemo Mode = "demo"
	// ModeLive is reserved for real upstream integrations and returns no price.
	ModeLive Mode = "live"
)

// ErrUnknownMode is returned by ParseMode for unsupported values.
var ErrUnknownMode = errors.New("unknown provider mode")

// ParseMode parses a PROVIDER_MODE value. Empty input means demo.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeDemo, nil
	case ModeDemo, ModeLive:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}
