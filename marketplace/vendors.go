package marketplace

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/wedvenue/wedvenue-client/transport"
)

// Vendor is a marketplace vendor listing.
type Vendor struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	PriceRange  string   `json:"price_range"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	Images      []string `json:"images,omitempty"`
}

// VendorFilter narrows a vendor browse. Zero fields are omitted.
type VendorFilter struct {
	Category string
	Location string
	Search   string
	Page     int
	PageSize int
}

// BrowseVendors lists vendors. This endpoint is public: it works with or
// without a session, so it doubles as the canonical unauthenticated probe.
func (c *Client) BrowseVendors(ctx context.Context, filter VendorFilter) ([]Vendor, error) {
	query := url.Values{}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Location != "" {
		query.Set("location", filter.Location)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(filter.PageSize))
	}

	path := transport.EndpointVendors
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var vendors []Vendor
	if err := c.do(ctx, http.MethodGet, path, nil, &vendors); err != nil {
		return nil, err
	}
	return vendors, nil
}

// GetVendor fetches a single vendor profile. Public.
func (c *Client) GetVendor(ctx context.Context, vendorID string) (Vendor, error) {
	var vendor Vendor
	if err := c.do(ctx, http.MethodGet, transport.EndpointVendors+"/"+vendorID, nil, &vendor); err != nil {
		return Vendor{}, err
	}
	return vendor, nil
}
