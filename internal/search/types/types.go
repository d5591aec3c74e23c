package types

// Result represents aggregated search results.
type Result struct {
	Currency           string `json:"currency"`
	Items              []Item `json:"items"`
	ProvidersTotal     int    `json:"-"`
	ProvidersSucceeded int    `json:"-"`
	ProvidersFailed    int    `json:"-"`
}

// Item is one provider's normalized price row.
type Item struct {
	Provider string `json:"provider"`
	Currency string `json:"currency"`
	Price    *int   `json:"price"`
	Deeplink string `json:"deeplink"`
}
