package components

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-app-kernel/internal/callback"
	"github.com/MKhiriev/go-app-kernel/internal/utils"
)

// HTTPClient is the outbound HTTP component available to command line
// applications.
type HTTPClient struct {
	*utils.HTTPClient
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{HTTPClient: utils.NewHTTPClient(baseURL, timeout)}
}

// Fetch GETs url and returns the body. Responses with a status of 400 or
// above are errors.
func (c *HTTPClient) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := c.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", url, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("get %s: unexpected status %s", url, resp.Status())
	}
	return resp.String(), nil
}

// Method exposes "Fetch" (url).
func (c *HTTPClient) Method(name string) (callback.Func, bool) {
	if name != "Fetch" {
		return nil, false
	}
	return func(ctx context.Context, args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: Fetch wants a url", callback.ErrInvalidCallback)
		}
		return c.Fetch(ctx, fmt.Sprint(args[0]))
	}, true
}
