package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
//
// Example usage:
//
//	client := utils.NewHTTPClient("https://api.example.com", 30*time.Second)
//	resp, err := client.R().Get("/users")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an independent client. An empty baseURL leaves
// requests to use absolute URLs; a zero timeout means no timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New()
	if baseURL != "" {
		client.SetBaseURL(baseURL)
	}
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &HTTPClient{Client: client}
}
