package marketplace

import (
	"context"
	"net/http"

	"github.com/wedvenue/wedvenue-client/transport"
)

// Favorites lists the vendors the user has saved. Soft endpoint.
func (c *Client) Favorites(ctx context.Context) ([]Vendor, error) {
	var vendors []Vendor
	if err := c.do(ctx, http.MethodGet, transport.EndpointFavorites, nil, &vendors); err != nil {
		return nil, err
	}
	return vendors, nil
}

// AddFavorite saves a vendor. Soft endpoint.
func (c *Client) AddFavorite(ctx context.Context, vendorID string) error {
	return c.do(ctx, http.MethodPost, transport.EndpointFavorites+"/"+vendorID, nil, nil)
}

// RemoveFavorite removes a saved vendor. Soft endpoint.
func (c *Client) RemoveFavorite(ctx context.Context, vendorID string) error {
	return c.do(ctx, http.MethodDelete, transport.EndpointFavorites+"/"+vendorID, nil, nil)
}
