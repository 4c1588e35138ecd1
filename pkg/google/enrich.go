package google

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FanOut calls fn once per item concurrently and returns the results in item
// order. limit bounds the number of calls in flight; 0 means no bound. The
// first error cancels the context passed to the remaining calls and is
// returned without any partial results.
func FanOut[T, R any](ctx context.Context, items []T, limit int, fn func(ctx context.Context, i int, item T) (R, error)) ([]R, error) {
	out := make([]R, len(items))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, item := range items {
		g.Go(func() error {
			r, err := fn(gctx, i, item)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// addressLookup resolves the addresses of one place.
type addressLookup func(ctx context.Context, p Place) ([]Address, error)

// attach runs lookup for every place and returns copies with Addresses set.
// The input slice is not modified.
func (c *Client) attach(ctx context.Context, places []Place, lookup addressLookup) ([]Place, error) {
	addrs, err := FanOut(ctx, places, c.fanOutLimit, func(ctx context.Context, i int, pl Place) ([]Address, error) {
		a, err := lookup(ctx, pl)
		if err != nil {
			// Siblings cancelled after the first failure are not logged.
			if !errors.Is(err, context.Canceled) {
				zap.L().Warn("google: enrichment failed",
					zap.Int("index", i),
					zap.String("place_id", pl.PlaceID),
					zap.Error(err),
				)
			}
			return nil, &EnrichmentError{Index: i, Key: pl.PlaceID, Err: err}
		}
		return a, nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]Place, len(places))
	for i := range places {
		out[i] = places[i]
		out[i].Addresses = addrs[i]
	}
	return out, nil
}

// AttachAddresses geocodes every place by its place id.
func (c *Client) AttachAddresses(ctx context.Context, places []Place) ([]Place, error) {
	return c.attach(ctx, places, func(ctx context.Context, pl Place) ([]Address, error) {
		resp, err := c.GeocodePlaceID(ctx, pl.PlaceID)
		if err != nil {
			return nil, err
		}
		return resp.Results, nil
	})
}

// AttachAddressesByLabel looks up each place's details for its formatted
// address and then geocodes that label. A place without a label gets no
// addresses.
func (c *Client) AttachAddressesByLabel(ctx context.Context, places []Place) ([]Place, error) {
	return c.attach(ctx, places, func(ctx context.Context, pl Place) ([]Address, error) {
		details, err := c.PlaceDetails(ctx, pl.PlaceID, DetailsOptions{Fields: []string{"formatted_address"}})
		if err != nil {
			return nil, err
		}
		if details.Result == nil || details.Result.FormattedAddress == "" {
			return []Address{}, nil
		}
		resp, err := c.SearchAddress(ctx, details.Result.FormattedAddress)
		if err != nil {
			return nil, err
		}
		return resp.Results, nil
	})
}
