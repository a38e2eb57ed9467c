// Package books is a small client for the Google Books volumes API.
package books

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the production Google Books API endpoint.
const DefaultBaseURL = "https://www.googleapis.com/books/v1"

// Volume is one search result.
type Volume struct {
	Title   string   `json:"title"`
	Authors []string `json:"authors"`
}

// volumesResponse mirrors the fields of the API response we care about.
type volumesResponse struct {
	Items []struct {
		VolumeInfo struct {
			Title   string   `json:"title"`
			Authors []string `json:"authors"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// Client queries the volumes endpoint.
type Client struct {
	http   *resty.Client
	apiKey string
}

// NewClient creates a Client against baseURL. An empty baseURL selects the
// production endpoint.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:   resty.New().SetBaseURL(baseURL),
		apiKey: apiKey,
	}
}

// Search runs a free-text query against the public volumes source and returns
// the matching volumes.
func (c *Client) Search(ctx context.Context, query string) ([]Volume, error) {
	var out volumesResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":      query,
			"source": "public",
			"key":    c.apiKey,
		}).
		SetResult(&out).
		Get("/volumes")
	if err != nil {
		return nil, fmt.Errorf("books search failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("books search failed: %s", resp.Status())
	}

	volumes := make([]Volume, 0, len(out.Items))
	for _, item := range out.Items {
		volumes = append(volumes, Volume{
			Title:   item.VolumeInfo.Title,
			Authors: item.VolumeInfo.Authors,
		})
	}
	return volumes, nil
}
