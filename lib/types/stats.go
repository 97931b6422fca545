package types

import (
	"time"

	"github.com/icco/cinevault/models"
)

// WishlistStats summarises a wishlist for the wishlist page.
type WishlistStats struct {
	Total      int             `json:"total"`
	FirstAdded time.Time       `json:"first_added"`
	LastAdded  time.Time       `json:"last_added"`
	ByCategory []CategoryCount `json:"by_category"`
}

type CategoryCount struct {
	Category models.Category `json:"category"`
	Count    int             `json:"count"`
}
