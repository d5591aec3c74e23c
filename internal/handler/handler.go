package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/alex-user-go/hotel-widget/internal/middleware"
	"github.com/alex-user-go/hotel-widget/internal/obs"
	"github.com/alex-user-go/hotel-widget/internal/providers"
	"github.com/alex-user-go/hotel-widget/internal/search"
	"github.com/alex-user-go/hotel-widget/internal/search/types"
)

// Defaults and bounds for search parameters.
const (
	DefaultAdults   = 2
	MinAdults       = 1
	MaxAdults       = 12
	DefaultRooms    = 1
	MinRooms        = 1
	MaxRooms        = 8
	DefaultCurrency = "USD"
)

var (
	decoder  = newDecoder()
	validate = validator.New()
)

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// Handler handles HTTP requests.
type Handler struct {
	aggregator *search.Aggregator
	metrics    *obs.Metrics
	logger     *slog.Logger
}

// New creates a new Handler.
func New(aggregator *search.Aggregator, metrics *obs.Metrics, logger *slog.Logger) *Handler {
	return &Handler{
		aggregator: aggregator,
		metrics:    metrics,
		logger:     logger,
	}
}

// SearchResponse represents the complete API response.
type SearchResponse struct {
	Currency string       `json:"currency"`
	Items    []types.Item `json:"items"`
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SearchHandler handles /api/search requests.
//
// @Summary Compare hotel prices
// @Description Queries every affiliate provider and returns price rows sorted by price, unpriced rows last.
// @Tags search
// @Produce json
// @Param hotelName query string false "Hotel name (hotelName or city is required)"
// @Param city query string false "City (hotelName or city is required)"
// @Param checkIn query string true "Check-in date"
// @Param checkOut query string true "Check-out date"
// @Param adults query integer false "Adults, clamped to 1-12" default(2)
// @Param rooms query integer false "Rooms, clamped to 1-8" default(1)
// @Param currency query string false "Currency code" default(USD)
// @Success 200 {object} SearchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/search [get]
func (h *Handler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.IncRequests()
	requestID := middleware.RequestID(r.Context())

	params, err := ParseSearchParams(r)
	if err != nil {
		h.metrics.IncInvalidRequests()
		h.logger.Debug("invalid request parameters", "request_id", requestID, "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.aggregator.Search(r.Context(), params.Query())
	if err != nil {
		h.logger.Error("search failed",
			"request_id", requestID,
			"error", err,
			"hotel_name", params.HotelName,
			"city", params.City,
			"check_in", params.CheckIn,
		)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	h.logger.Debug("search completed",
		"request_id", requestID,
		"providers_total", result.ProvidersTotal,
		"providers_failed", result.ProvidersFailed,
		"items", len(result.Items),
	)

	response := SearchResponse{
		Currency: result.Currency,
		Items:    result.Items,
	}
	if response.Items == nil {
		response.Items = []types.Item{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		// Can't change status after WriteHeader, just log
		h.logger.Error("failed to encode response", "request_id", requestID, "error", err)
	}
}

// SearchParams holds validated search parameters.
type SearchParams struct {
	HotelName string
	City      string
	CheckIn   string
	CheckOut  string
	Adults    int
	Rooms     int
	Currency  string
}

// Query converts the parameters into a provider query.
func (p *SearchParams) Query() providers.Query {
	return providers.Query{
		HotelName: p.HotelName,
		City:      p.City,
		CheckIn:   p.CheckIn,
		CheckOut:  p.CheckOut,
		Adults:    p.Adults,
		Rooms:     p.Rooms,
		Currency:  p.Currency,
	}
}

// searchQuery mirrors the raw query string. Numbers stay strings so that
// malformed values fall back to defaults instead of failing the request.
type searchQuery struct {
	HotelName string `schema:"hotelName" validate:"required_without=City"`
	City      string `schema:"city"`
	CheckIn   string `schema:"checkIn" validate:"required"`
	CheckOut  string `schema:"checkOut" validate:"required"`
	Adults    string `schema:"adults"`
	Rooms     string `schema:"rooms"`
	Currency  string `schema:"currency"`
}

var fieldMessages = map[string]string{
	"HotelName": "hotelName or city is required",
	"CheckIn":   "checkIn is required",
	"CheckOut":  "checkOut is required",
}

// ParseSearchParams parses and validates search parameters from the request.
func ParseSearchParams(r *http.Request) (*SearchParams, error) {
	var raw searchQuery
	if err := decoder.Decode(&raw, r.URL.Query()); err != nil {
		return nil, errors.New("invalid query parameters")
	}

	raw.HotelName = strings.TrimSpace(raw.HotelName)
	raw.City = strings.TrimSpace(raw.City)
	raw.CheckIn = strings.TrimSpace(raw.CheckIn)
	raw.CheckOut = strings.TrimSpace(raw.CheckOut)

	if err := validate.Struct(raw); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			if msg, ok := fieldMessages[verrs[0].StructField()]; ok {
				return nil, errors.New(msg)
			}
		}
		return nil, errors.New("invalid query parameters")
	}

	currency := strings.ToUpper(strings.TrimSpace(raw.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	return &SearchParams{
		HotelName: raw.HotelName,
		City:      raw.City,
		CheckIn:   raw.CheckIn,
		CheckOut:  raw.CheckOut,
		Adults:    ClampInt(raw.Adults, DefaultAdults, MinAdults, MaxAdults),
		Rooms:     ClampInt(raw.Rooms, DefaultRooms, MinRooms, MaxRooms),
		Currency:  currency,
	}, nil
}

// ClampInt parses raw as an integer and clamps it to [lo, hi].
// Empty or non-numeric input yields def.
func ClampInt(raw string, def, lo, hi int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return min(max(n, lo), hi)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
