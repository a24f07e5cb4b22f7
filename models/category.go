package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Category is a product category as served by the admin backend.
type Category struct {
	ID            string            `json:"_id"`
	Name          string            `json:"name"`
	Slug          string            `json:"slug,omitempty"`
	Details       string            `json:"details"`
	SubCategories []json.RawMessage `json:"subCategories"`
	Icon          Media             `json:"icon"`
	Image         Media             `json:"image"`
	BannerImg     Media             `json:"bannerImg"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// SubCategoryCount is the only sub-category information the views consume.
func (c *Category) SubCategoryCount() int {
	return len(c.SubCategories)
}

// Matches reports whether term occurs, ignoring case, in the name or the details.
// An empty term matches everything.
func (c *Category) Matches(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(c.Name), term) ||
		strings.Contains(strings.ToLower(c.Details), term)
}

// Validate checks the fields every category held by a client must carry.
func (c *Category) Validate() error {
	if c.ID == "" {
		return ErrInvalidCategoryID
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrInvalidCategoryName
	}
	return nil
}
