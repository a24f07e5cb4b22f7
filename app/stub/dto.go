package stub

import (
	"github.com/joefazee/neo-admin/models"
)

// CreateCategoryRequest represents the request to create a category
type CreateCategoryRequest struct {
	Name      string        `json:"name" binding:"required,max=100"`
	Slug      string        `json:"slug" binding:"omitempty,max=100"`
	Details   string        `json:"details" binding:"max=1000"`
	Icon      *models.Media `json:"icon"`
	Image     *models.Media `json:"image"`
	BannerImg *models.Media `json:"bannerImg"`
}

// UpdateCategoryRequest represents the request to update a category
type UpdateCategoryRequest struct {
	Name      *string    `json:"name" binding:"omitempty,max=100"`
	Slug      *string    `json:"slug" binding:"omitempty,max=100"`
	Details   *string    `json:"details" binding:"omitempty,max=1000"`
	Icon      mediaPatch `json:"icon"`
	Image     mediaPatch `json:"image"`
	BannerImg mediaPatch `json:"bannerImg"`
}

// mediaPatch records whether a media field was present in a PATCH body,
// so an explicit null clears it.
type mediaPatch struct {
	Set   bool
	Value models.Media
}

func (m *mediaPatch) UnmarshalJSON(data []byte) error {
	m.Set = true
	return m.Value.UnmarshalJSON(data)
}

func (m mediaPatch) apply(dst *models.Media) {
	if m.Set {
		*dst = m.Value
	}
}

// ResetPasswordRequest represents the request to change a password
type ResetPasswordRequest struct {
	UserID      string `json:"userId" binding:"required"`
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

func mediaOrNone(m *models.Media) models.Media {
	if m == nil {
		return models.Media{}
	}
	return *m
}
