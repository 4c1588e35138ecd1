package google

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/places-cli/internal/resilience"
)

func (c *Client) getPlaces(ctx context.Context, u string) (*Response[Place], error) {
	raw, err := c.transport.Get(ctx, u)
	if err != nil {
		return nil, err
	}
	return DecodePlaces(raw)
}

func (c *Client) getAddresses(ctx context.Context, u string) (*Response[Address], error) {
	raw, err := c.transport.Get(ctx, u)
	if err != nil {
		return nil, err
	}
	return DecodeAddresses(raw)
}

// searchPage runs a first-page search once and scopes its token to family.
func (c *Client) searchPage(ctx context.Context, family SearchFamily, u string) (*Response[Place], error) {
	resp, err := c.getPlaces(ctx, u)
	if err != nil {
		return nil, eris.Wrapf(err, "google: %s", family)
	}
	if !resp.NextPage.IsZero() {
		resp.NextPage.Family = family
	}
	return resp, nil
}

// NextPage fetches the page a token points to. The request carries only the
// token. While the service answers INVALID_REQUEST, meaning the token is not
// yet servable, the request is repeated with a fixed delay up to the
// configured attempt count. Every other error returns at once.
func (c *Client) NextPage(ctx context.Context, tok PageToken) (*Response[Place], error) {
	if tok.IsZero() {
		return nil, ErrEmptyToken
	}
	if tok.Family != FamilyText && tok.Family != FamilyNearby {
		return nil, eris.Wrapf(ErrTokenFamily, "google: unknown family %q", tok.Family)
	}

	u := c.tokenURL(tok)
	cfg := c.pageRetry
	cfg.ShouldRetry = IsInvalidRequest
	cfg.OnRetry = resilience.RetryLogger("google", string(tok.Family)+" page")

	resp, err := resilience.DoVal(ctx, cfg, func(ctx context.Context) (*Response[Place], error) {
		return c.getPlaces(ctx, u)
	})
	if err != nil {
		return nil, eris.Wrapf(err, "google: %s page", tok.Family)
	}
	if !resp.NextPage.IsZero() {
		resp.NextPage.Family = tok.Family
	}
	return resp, nil
}

// NextNearbyPage continues a nearby search. A bare token without a family
// is taken to be a nearby token.
func (c *Client) NextNearbyPage(ctx context.Context, tok PageToken) (*Response[Place], error) {
	return c.nextInFamily(ctx, FamilyNearby, tok)
}

// NextTextPage continues a text search.
func (c *Client) NextTextPage(ctx context.Context, tok PageToken) (*Response[Place], error) {
	return c.nextInFamily(ctx, FamilyText, tok)
}

func (c *Client) nextInFamily(ctx context.Context, family SearchFamily, tok PageToken) (*Response[Place], error) {
	switch tok.Family {
	case "":
		tok.Family = family
	case family:
	default:
		return nil, eris.Wrapf(ErrTokenFamily, "google: %s token passed to %s", tok.Family, family)
	}
	return c.NextPage(ctx, tok)
}

// CollectPages follows the tokens of first and returns the results of every
// page in order. maxPages counts first; 0 means no limit.
func (c *Client) CollectPages(ctx context.Context, first *Response[Place], maxPages int) ([]Place, error) {
	if first == nil {
		return []Place{}, nil
	}
	out := append([]Place{}, first.Results...)
	next := first.NextPage
	for pages := 1; !next.IsZero() && (maxPages <= 0 || pages < maxPages); pages++ {
		resp, err := c.NextPage(ctx, next)
		if err != nil {
			return nil, err
		}
		out = append(out, resp.Results...)
		next = resp.NextPage
	}
	return out, nil
}
