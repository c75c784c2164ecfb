package marketplace

import (
	"context"
	"net/http"
	"time"

	"github.com/wedvenue/wedvenue-client/transport"
)

// ChecklistItem is a wedding-planning checklist entry.
type ChecklistItem struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Category      string     `json:"category"`
	Description   *string    `json:"description,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	Priority      string     `json:"priority"`
	EstimatedCost *float64   `json:"estimated_cost,omitempty"`
	IsCompleted   bool       `json:"is_completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// ChecklistItemCreate is the payload for adding a checklist entry.
type ChecklistItemCreate struct {
	Title         string     `json:"title"`
	Category      string     `json:"category"`
	Description   *string    `json:"description,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	Priority      string     `json:"priority,omitempty"`
	EstimatedCost *float64   `json:"estimated_cost,omitempty"`
}

// Checklist fetches the user's checklist. Soft endpoint; also one of the
// trailing-slash routes the transport normalizes.
func (c *Client) Checklist(ctx context.Context) ([]ChecklistItem, error) {
	var items []ChecklistItem
	if err := c.do(ctx, http.MethodGet, transport.EndpointChecklist, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddChecklistItem creates a checklist entry. Soft endpoint.
func (c *Client) AddChecklistItem(ctx context.Context, input ChecklistItemCreate) (ChecklistItem, error) {
	var item ChecklistItem
	if err := c.do(ctx, http.MethodPost, transport.EndpointChecklist, input, &item); err != nil {
		return ChecklistItem{}, err
	}
	return item, nil
}

// ToggleChecklistItem flips an entry's completion state. Soft endpoint.
func (c *Client) ToggleChecklistItem(ctx context.Context, itemID string, completed bool) (ChecklistItem, error) {
	payload := map[string]bool{"is_completed": completed}
	var item ChecklistItem
	if err := c.do(ctx, http.MethodPut, transport.EndpointChecklist+"/"+itemID, payload, &item); err != nil {
		return ChecklistItem{}, err
	}
	return item, nil
}
