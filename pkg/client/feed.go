package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Feed is a remote JSON document classified by shape.
type Feed struct {
	// Items holds the elements when the document is a JSON array.
	Items []any
	// Links lists the string elements that point at .json files.
	Links []string
	// Value holds the document when it is not an array.
	Value any
}

// IsList reports whether the feed was a JSON array.
func (f *Feed) IsList() bool {
	return f.Items != nil
}

// FetchJSON downloads and classifies a JSON document from an absolute URL.
// The client's credentials are not sent.
func (c *Client) FetchJSON(ctx context.Context, target string) (*Feed, error) {
	resp, err := c.do(ctx, request{method: http.MethodGet, url: target})
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	var doc any
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding feed: %w", err)
	}
	return ClassifyFeed(doc), nil
}

// ClassifyFeed splits a decoded JSON document into items and .json links.
func ClassifyFeed(doc any) *Feed {
	list, ok := doc.([]any)
	if !ok {
		return &Feed{Value: doc}
	}

	f := &Feed{Items: list, Links: []string{}}
	for _, item := range list {
		if s, ok := item.(string); ok && strings.HasSuffix(strings.ToLower(s), ".json") {
			f.Links = append(f.Links, s)
		}
	}
	return f
}
