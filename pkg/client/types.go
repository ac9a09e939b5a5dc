package client

import (
	"fmt"

	"github.com/usestring/wpbridge-mcp/pkg/record"
)

// Record order values accepted by ListOptions.Order.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Status values accepted by ListOptions.Status.
const (
	StatusPublish = "publish"
	StatusDraft   = "draft"
	StatusPending = "pending"
	StatusPrivate = "private"
	StatusAny     = "any"
)

// MaxPerPage is the largest page size WordPress accepts.
const MaxPerPage = 100

// RecordPage is one page of records plus the collection totals.
type RecordPage struct {
	Records    []record.Record
	Page       int
	Total      int
	TotalPages int
}

// typeWire is the JSON shape of one entry under /wp/v2/types.
type typeWire struct {
	Name         string   `json:"name"`
	Slug         string   `json:"slug"`
	Description  string   `json:"description"`
	Hierarchical bool     `json:"hierarchical"`
	RestBase     string   `json:"rest_base"`
	Taxonomies   []string `json:"taxonomies"`
}

func (w typeWire) contentType(key string) record.ContentType {
	if w.Slug != "" {
		key = w.Slug
	}
	return record.ContentType{
		Key:          key,
		Name:         w.Name,
		Description:  w.Description,
		Hierarchical: w.Hierarchical,
		RestBase:     w.RestBase,
		Taxonomies:   w.Taxonomies,
	}
}

// taxonomyWire is the JSON shape of one entry under /wp/v2/taxonomies.
type taxonomyWire struct {
	Name         string   `json:"name"`
	Slug         string   `json:"slug"`
	Description  string   `json:"description"`
	Hierarchical bool     `json:"hierarchical"`
	RestBase     string   `json:"rest_base"`
	Types        []string `json:"types"`
}

func (w taxonomyWire) taxonomy(key string) record.Taxonomy {
	if w.Slug != "" {
		key = w.Slug
	}
	return record.Taxonomy{
		Key:          key,
		Name:         w.Name,
		Description:  w.Description,
		Hierarchical: w.Hierarchical,
		RestBase:     w.RestBase,
		Types:        w.Types,
	}
}

// APIError represents an error response from the WordPress REST API.
type APIError struct {
	StatusCode int
	// Code is the WordPress error code, such as "rest_no_route".
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("wordpress API error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("wordpress API error %d: %s", e.StatusCode, e.Message)
}

// errorResponse is the JSON structure of WordPress REST errors.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Status int `json:"status"`
	} `json:"data"`
}
