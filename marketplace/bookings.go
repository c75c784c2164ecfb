package marketplace

import (
	"context"
	"net/http"
	"time"

	"github.com/wedvenue/wedvenue-client/transport"
)

// BookingCreate is the payload for booking a vendor.
type BookingCreate struct {
	VendorID            string    `json:"vendor_id"`
	EventDate           time.Time `json:"event_date"`
	EventLocation       string    `json:"event_location"`
	GuestCount          *int      `json:"guest_count,omitempty"`
	SpecialRequirements *string   `json:"special_requirements,omitempty"`
	TotalAmount         float64   `json:"total_amount"`
}

// Booking is a booking as returned by the backend.
type Booking struct {
	ID                  string    `json:"id"`
	VendorID            string    `json:"vendor_id"`
	UserID              string    `json:"user_id"`
	EventDate           time.Time `json:"event_date"`
	EventLocation       string    `json:"event_location"`
	GuestCount          *int      `json:"guest_count,omitempty"`
	SpecialRequirements *string   `json:"special_requirements,omitempty"`
	TotalAmount         float64   `json:"total_amount"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
}

// CreateBooking books a vendor. Soft endpoint: a 401 here is returned to the
// caller as *APIError, never escalated to a forced logout.
func (c *Client) CreateBooking(ctx context.Context, input BookingCreate) (Booking, error) {
	var booking Booking
	if err := c.do(ctx, http.MethodPost, transport.EndpointBookings, input, &booking); err != nil {
		return Booking{}, err
	}
	return booking, nil
}

// MyBookings lists the current user's bookings. Soft endpoint.
func (c *Client) MyBookings(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	if err := c.do(ctx, http.MethodGet, transport.EndpointBookings+"/my", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CancelBooking cancels a booking. Soft endpoint.
func (c *Client) CancelBooking(ctx context.Context, bookingID string) error {
	return c.do(ctx, http.MethodDelete, transport.EndpointBookings+"/"+bookingID, nil, nil)
}
