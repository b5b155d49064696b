package graph

import (
	"context"
	"encoding/json"
	"fmt"
)

// listPage is the envelope Graph wraps every collection response in.
type listPage[T any] struct {
	Value    []T    `json:"value"`
	NextLink string `json:"@odata.nextLink"`
}

// CollectAll fetches every page of a Graph collection, following
// @odata.nextLink until it is absent. nextLink URLs are only valid in
// sequence, so pages are fetched strictly in order.
//
// On failure the items collected so far are returned alongside the error,
// so callers can degrade to a partial result instead of discarding work.
func CollectAll[T any](ctx context.Context, c *Client, url string) ([]T, error) {
	var items []T

	for url != "" {
		resp, err := c.Get(ctx, url)
		if err != nil {
			return items, err
		}

		var page listPage[T]
		if err := json.Unmarshal(resp.Body, &page); err != nil {
			return items, fmt.Errorf("decode page: %w", err)
		}

		items = append(items, page.Value...)
		url = page.NextLink
	}

	return items, nil
}
