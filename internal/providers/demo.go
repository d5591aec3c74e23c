package providers

import (
	"context"
	"math/rand/v2"
)

// PriceRange is an inclusive range of demo prices.
type PriceRange struct {
	Min int
	Max int
}

// Demo price ranges per provider.
var (
	AgodaPrices     = PriceRange{Min: 90, Max: 220}
	PricelinePrices = PriceRange{Min: 85, Max: 210}
	ExpediaPrices   = PriceRange{Min: 95, Max: 240}
)

// DemoProvider answers with a deep link and, in demo mode, a random price.
// It never calls the upstream site.
type DemoProvider struct {
	name   string
	mode   Mode
	prices PriceRange
	link   func(Query) string
	intN   func(n int) int
}

// NewAgoda creates the Agoda provider.
func NewAgoda(mode Mode, cid string) *DemoProvider {
	return newDemoProvider("Agoda", mode, AgodaPrices, func(q Query) string {
		return AgodaLink(q, cid)
	})
}

// NewPriceline creates the Priceline provider.
func NewPriceline(mode Mode, refID string) *DemoProvider {
	return newDemoProvider("Priceline", mode, PricelinePrices, func(q Query) string {
		return PricelineLink(q, refID)
	})
}

// NewExpedia creates the Expedia provider.
func NewExpedia(mode Mode, partnerAttr string) *DemoProvider {
	return newDemoProvider("Expedia", mode, ExpediaPrices, func(q Query) string {
		return ExpediaLink(q, partnerAttr)
	})
}

// All returns every known provider in registration order.
func All(mode Mode, aff Affiliates) []Provider {
	return []Provider{
		NewAgoda(mode, aff.AgodaCID),
		NewPriceline(mode, aff.PricelineRefID),
		NewExpedia(mode, aff.ExpediaPartnerAttr),
	}
}

func newDemoProvider(name string, mode Mode, prices PriceRange, link func(Query) string) *DemoProvider {
	return &DemoProvider{
		name:   name,
		mode:   mode,
		prices: prices,
		link:   link,
		intN:   rand.IntN,
	}
}

// Name returns the provider name.
func (p *DemoProvider) Name() string {
	return p.name
}

// Range returns the demo price range of the provider.
func (p *DemoProvider) Range() PriceRange {
	return p.prices
}

// Quote builds the deep link and, in demo mode, draws a price from the range.
func (p *DemoProvider) Quote(ctx context.Context, q Query) (Quote, error) {
	if err := context.Cause(ctx); err != nil {
		return Quote{}, err
	}

	quote := Quote{
		Provider: p.name,
		Currency: q.Currency,
		Deeplink: p.link(q),
	}

	// TODO: call the partner availability APIs once live credentials exist.
	if p.mode == ModeDemo {
		price := p.prices.Min + p.intN(p.prices.Max-p.prices.Min+1)
		quote.Price = &price
	}

	return quote, nil
}
