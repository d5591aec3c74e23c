package widget_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/alex-user-go/hotel-widget/internal/widget"
)

func TestHandler_Page(t *testing.T) {
	h, err := widget.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := httptest.NewRecorder()
	h.Page(w, httptest.NewRequest(http.MethodGet, widget.PagePath, nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}

	body := w.Body.String()
	for _, want := range []string{`<form`, `name="hotelName"`, `name="city"`, `name="checkIn"`, `name="checkOut"`, `/api/search?`, `_blank`} {
		if !strings.Contains(body, want) {
			t.Errorf("widget page missing %q", want)
		}
	}
}

func TestHandler_Static(t *testing.T) {
	h, err := widget.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantType   string
	}{
		{name: "embed script", path: "/public/embed.js", wantStatus: http.StatusOK, wantType: "javascript"},
		{name: "widget html", path: "/public/widget.html", wantStatus: http.StatusOK, wantType: "text/html"},
		{name: "missing", path: "/public/nope.css", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Static().ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantType != "" && !strings.Contains(w.Header().Get("Content-Type"), tt.wantType) {
				t.Errorf("Content-Type = %q, want %q", w.Header().Get("Content-Type"), tt.wantType)
			}
		})
	}
}

func TestRedirectToPage(t *testing.T) {
	w := httptest.NewRecorder()
	widget.RedirectToPage(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if loc := w.Header().Get("Location"); loc != widget.PagePath {
		t.Errorf("Location = %q, want %q", loc, widget.PagePath)
	}
}

func TestNewWithFS(t *testing.T) {
	if _, err := widget.NewWithFS(fstest.MapFS{}); err == nil {
		t.Fatal("expected error for a filesystem without the widget page")
	}

	fsys := fstest.MapFS{"widget.html": {Data: []byte("<p>custom</p>")}}
	h, err := widget.NewWithFS(fsys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := httptest.NewRecorder()
	h.Page(w, httptest.NewRequest(http.MethodGet, widget.PagePath, nil))
	if !strings.Contains(w.Body.String(), "custom") {
		t.Errorf("expected custom page, got %q", w.Body.String())
	}
}
