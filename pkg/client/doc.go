// Package client provides a Go SDK for the WordPress REST API.
//
// The client covers the read side an automation generator needs: content
// type and taxonomy discovery, paginated record listing, plus the JWT token
// exchange and the outbound webhook delivery used when wiring a site to an
// automation platform.
//
// # Quick Start
//
// Create a client and list content types:
//
//	c := client.New(client.WithBaseURL("https://example.com"))
//	types, err := c.ListContentTypes(ctx)
//
// Authenticate with an application password or a bearer token:
//
//	c := client.New(
//	    client.WithBaseURL("https://example.com"),
//	    client.WithBasicAuth("editor", "abcd efgh ijkl mnop"),
//	)
//
// # Listing Records
//
// ListRecords returns one page together with the totals WordPress reports in
// the X-WP-Total and X-WP-TotalPages headers:
//
//	page, err := c.ListRecords(ctx, "posts", &client.ListOptions{
//	    PerPage: 20,
//	    Status:  "publish",
//	})
//
// Records keep the field order of the response body. See [record.Record].
//
// # Errors
//
// Non-2xx responses are returned as *APIError carrying the HTTP status and
// the WordPress error code (for example "rest_no_route"):
//
//	var apiErr *client.APIError
//	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
//	    // unknown content type
//	}
package client
