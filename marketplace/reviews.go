package marketplace

import (
	"context"
	"net/http"
	"time"

	"github.com/wedvenue/wedvenue-client/transport"
)

// Review is a vendor review.
type Review struct {
	ID        string    `json:"id"`
	VendorID  string    `json:"vendor_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewCreate is the payload for posting a review.
type ReviewCreate struct {
	VendorID string  `json:"vendor_id"`
	Rating   int     `json:"rating"`
	Comment  *string `json:"comment,omitempty"`
}

// MyReviews lists the user's reviews. Soft endpoint.
func (c *Client) MyReviews(ctx context.Context) ([]Review, error) {
	var reviews []Review
	if err := c.do(ctx, http.MethodGet, transport.EndpointReviews+"/my", nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// CreateReview posts a review. Soft endpoint.
func (c *Client) CreateReview(ctx context.Context, input ReviewCreate) (Review, error) {
	var review Review
	if err := c.do(ctx, http.MethodPost, transport.EndpointReviews, input, &review); err != nil {
		return Review{}, err
	}
	return review, nil
}
