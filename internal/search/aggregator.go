package search

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/alex-user-go/hotel-widget/internal/obs"
	"github.com/alex-user-go/hotel-widget/internal/providers"
	"github.com/alex-user-go/hotel-widget/internal/search/types"
)

// Aggregator collects quotes from multiple providers.
type Aggregator struct {
	providers []providers.Provider
	timeout   time.Duration
	metrics   *obs.Metrics
	logger    *slog.Logger
}

// NewAggregator creates a new Aggregator.
func NewAggregator(providers []providers.Provider, timeout time.Duration, metrics *obs.Metrics, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		providers: providers,
		timeout:   timeout,
		metrics:   metrics,
		logger:    logger,
	}
}

// Search queries all providers concurrently and returns their rows sorted by price.
// Providers that fail are left out of the result.
func (a *Aggregator) Search(ctx context.Context, q providers.Query) (*types.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		slots     = make([]*types.Item, len(a.providers))
		succeeded int
		failed    int
		errs      []error
	)

	for i, provider := range a.providers {
		wg.Go(func() {
			quote, err := provider.Quote(ctx, q)
			if err != nil {
				mu.Lock()
				failed++
				errs = append(errs, fmt.Errorf("%s: %w", provider.Name(), err))
				mu.Unlock()
				a.metrics.IncProviderErrors()
				return
			}

			item := normalizeQuote(quote, provider.Name(), q.Currency)

			mu.Lock()
			succeeded++
			slots[i] = &item
			mu.Unlock()
		})
	}

	wg.Wait()

	if len(errs) > 0 {
		a.logger.Error("provider quote errors",
			"query", q.Text(),
			"failed_count", failed,
			"errors", errs)

		if failed == len(a.providers) {
			return nil, errs[0]
		}
	}

	// Slots keep registration order so unpriced rows stay stable.
	items := make([]types.Item, 0, succeeded)
	for _, item := range slots {
		if item != nil {
			items = append(items, *item)
		}
	}
	SortByPrice(items)

	return &types.Result{
		Currency:           q.Currency,
		Items:              items,
		ProvidersTotal:     len(a.providers),
		ProvidersSucceeded: succeeded,
		ProvidersFailed:    failed,
	}, nil
}

// SortByPrice sorts items by ascending price, with unpriced items last.
func SortByPrice(items []types.Item) {
	slices.SortStableFunc(items, func(a, b types.Item) int {
		switch {
		case a.Price == nil && b.Price == nil:
			return 0
		case a.Price == nil:
			return 1
		case b.Price == nil:
			return -1
		}
		return cmp.Compare(*a.Price, *b.Price)
	})
}

func normalizeQuote(q providers.Quote, name, currency string) types.Item {
	provider := strings.TrimSpace(q.Provider)
	if provider == "" {
		provider = name
	}

	cur := strings.ToUpper(strings.TrimSpace(q.Currency))
	if cur == "" {
		cur = currency
	}

	price := q.Price
	if price != nil && *price <= 0 {
		price = nil
	}

	return types.Item{
		Provider: provider,
		Currency: cur,
		Price:    price,
		Deeplink: q.Deeplink,
	}
}
