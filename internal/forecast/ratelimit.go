// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package forecast

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitedLoader wraps a Loader with a token bucket so the remote API quota is respected.
type RateLimitedLoader struct {
	loader  Loader
	limiter *rate.Limiter
}

// NewRateLimitedLoader allows rps requests per second (fractions allowed) with the given burst.
func NewRateLimitedLoader(loader Loader, rps float64, burst int) *RateLimitedLoader {
	return &RateLimitedLoader{
		loader:  loader,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimitedLoader) Name() string {
	return r.loader.Name()
}

// Forecast waits for the limiter or the context before forwarding the query.
func (r *RateLimitedLoader) Forecast(ctx context.Context, query Query) (*Forecast, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.loader.Forecast(ctx, query)
}
