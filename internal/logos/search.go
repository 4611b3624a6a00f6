// Package logos finds company logo candidates via image search.
package logos

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// ImageResult is a single image-search hit.
type ImageResult struct {
	URL          string
	ThumbnailURL string
	Title        string
	Source       string
}

// Searcher is the image-search capability boundary.
type Searcher interface {
	SearchImages(ctx context.Context, query string, maxResults int64) ([]ImageResult, error)
}

// GoogleSearcher implements Searcher on Google Custom Search.
type GoogleSearcher struct {
	svc *customsearch.Service
	cx  string
}

// NewGoogleSearcher creates a GoogleSearcher.
func NewGoogleSearcher(ctx context.Context, apiKey, cx string) (*GoogleSearcher, error) {
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &GoogleSearcher{
		svc: svc,
		cx:  cx,
	}, nil
}

// SearchImages runs an image-type search and returns up to maxResults hits.
func (g *GoogleSearcher) SearchImages(ctx context.Context, query string, maxResults int64) ([]ImageResult, error) {
	if maxResults <= 0 || maxResults > 10 {
		maxResults = 10
	}

	resp, err := g.svc.Cse.List().Cx(g.cx).Q(query).SearchType("image").Num(maxResults).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("image search failed: %w", err)
	}

	results := make([]ImageResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		result := ImageResult{
			URL:    item.Link,
			Title:  item.Title,
			Source: item.DisplayLink,
		}
		if item.Image != nil {
			result.ThumbnailURL = item.Image.ThumbnailLink
		}
		results = append(results, result)
	}

	return results, nil
}
