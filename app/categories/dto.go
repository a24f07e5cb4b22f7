package categories

import (
	"github.com/joefazee/neo-admin/models"
)

// CategoryFields is the payload of create and edit. A nil field is not sent.
type CategoryFields struct {
	Name      *string       `json:"name,omitempty"`
	Slug      *string       `json:"slug,omitempty"`
	Details   *string       `json:"details,omitempty"`
	Icon      *models.Media `json:"icon,omitempty"`
	Image     *models.Media `json:"image,omitempty"`
	BannerImg *models.Media `json:"bannerImg,omitempty"`
}

// Empty reports whether no field is supplied.
func (f *CategoryFields) Empty() bool {
	return f.Name == nil && f.Slug == nil && f.Details == nil &&
		f.Icon == nil && f.Image == nil && f.BannerImg == nil
}

func (f *CategoryFields) media() []*models.Media {
	return []*models.Media{f.Icon, f.Image, f.BannerImg}
}

// clone copies the struct and the values behind its pointers, so sanitizing
// and media resolution never touch the caller's data.
func (f CategoryFields) clone() CategoryFields {
	out := CategoryFields{
		Name:    cloneString(f.Name),
		Slug:    cloneString(f.Slug),
		Details: cloneString(f.Details),
	}
	out.Icon = cloneMedia(f.Icon)
	out.Image = cloneMedia(f.Image)
	out.BannerImg = cloneMedia(f.BannerImg)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneMedia(m *models.Media) *models.Media {
	if m == nil {
		return nil
	}
	v := *m
	return &v
}

// String returns a pointer to s, for building CategoryFields.
func String(s string) *string {
	return &s
}

// DeleteResult is the acknowledgement returned by a delete.
type DeleteResult struct {
	Message string `json:"message"`
}
