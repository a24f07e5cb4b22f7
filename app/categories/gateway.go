package categories

import (
	"context"
	"net/http"

	"github.com/joefazee/neo-admin/app/api"
	"github.com/joefazee/neo-admin/models"
)

const (
	listPath   = "/category"
	createPath = "/category/create-category"
	editPath   = "/category/edit-category"
	deletePath = "/category/delete-category"
)

// gateway implements the Gateway interface over the backend REST API
type gateway struct {
	client *api.Client
}

// NewGateway creates a new category gateway
func NewGateway(client *api.Client) Gateway {
	return &gateway{client: client}
}

// ListCategories handles GET /category
func (g *gateway) ListCategories(ctx context.Context) ([]models.Category, error) {
	var items []models.Category
	if _, err := g.client.Do(ctx, http.MethodGet, listPath, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetCategory handles GET /category/:id
func (g *gateway) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if _, err := g.client.Do(ctx, http.MethodGet, api.PathEscape(listPath, id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory handles POST /category/create-category
func (g *gateway) CreateCategory(ctx context.Context, fields CategoryFields) (*models.Category, error) {
	var category models.Category
	if _, err := g.client.Do(ctx, http.MethodPost, createPath, fields, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// EditCategory handles PATCH /category/edit-category/:id
func (g *gateway) EditCategory(ctx context.Context, id string, fields CategoryFields) (*models.Category, error) {
	var category models.Category
	if _, err := g.client.Do(ctx, http.MethodPatch, api.PathEscape(editPath, id), fields, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory handles DELETE /category/delete-category/:id
func (g *gateway) DeleteCategory(ctx context.Context, id string) (*DeleteResult, error) {
	msg, err := g.client.Do(ctx, http.MethodDelete, api.PathEscape(deletePath, id), nil, nil)
	if err != nil {
		return nil, err
	}
	return &DeleteResult{Message: msg}, nil
}
