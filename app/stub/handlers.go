package stub

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/joefazee/neo-admin/app/api"
	"github.com/joefazee/neo-admin/internal/logger"
	"github.com/joefazee/neo-admin/internal/sanitizer"
	"github.com/joefazee/neo-admin/models"
)

// Handler handles HTTP requests of the backend contract
type Handler struct {
	repo      *repository
	sanitizer sanitizer.HTMLStripperer
	logger    logger.Logger
}

func newHandler(repo *repository, stripper sanitizer.HTMLStripperer, log logger.Logger) *Handler {
	return &Handler{repo: repo, sanitizer: stripper, logger: log}
}

// ListCategories handles GET /category
func (h *Handler) ListCategories(c *gin.Context) {
	items := h.repo.list()
	api.ListResponse(c, "Categories retrieved successfully", items, len(items))
}

// GetCategory handles GET /category/:id
func (h *Handler) GetCategory(c *gin.Context) {
	category, err := h.repo.get(c.Param("id"))
	if err != nil {
		api.NotFoundResponse(c, "Category")
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Category retrieved successfully", category)
}

// CreateCategory handles POST /category/create-category
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if !h.bind(c, &req) {
		return
	}

	req.Name = h.sanitizer.StripHTML(req.Name)
	if req.Name == "" {
		api.ValidationErrorResponse(c, "Name is required", map[string]string{"name": "required"})
		return
	}

	category, err := h.repo.create(models.Category{
		Name:      req.Name,
		Slug:      h.sanitizer.StripHTML(req.Slug),
		Details:   h.sanitizer.StripHTML(req.Details),
		Icon:      mediaOrNone(req.Icon),
		Image:     mediaOrNone(req.Image),
		BannerImg: mediaOrNone(req.BannerImg),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	api.CreatedResponse(c, "Category created successfully", category)
}

// EditCategory handles PATCH /category/edit-category/:id
func (h *Handler) EditCategory(c *gin.Context) {
	var req UpdateCategoryRequest
	if !h.bind(c, &req) {
		return
	}

	for _, s := range []*string{req.Name, req.Slug, req.Details} {
		if s != nil {
			*s = h.sanitizer.StripHTML(*s)
		}
	}
	if req.Name != nil && *req.Name == "" {
		api.ValidationErrorResponse(c, "Name must not be blank", map[string]string{"name": "required"})
		return
	}

	category, err := h.repo.update(c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	api.UpdatedResponse(c, "Category updated successfully", category)
}

// DeleteCategory handles DELETE /category/delete-category/:id
func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.repo.delete(c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	api.DeletedResponse(c, "Category deleted successfully")
}

// ResetPassword handles POST /auth/reset-password
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if !h.bind(c, &req) {
		return
	}
	if err := h.repo.changePassword(req.UserID, req.OldPassword, req.NewPassword); err != nil {
		h.writeError(c, err)
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Password changed successfully", nil)
}

func (h *Handler) bind(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			details[jsonName(fe.Field())] = fe.Tag()
		}
		api.ValidationErrorResponse(c, "Invalid request data", details)
		return false
	}
	api.BadRequestResponse(c, "Invalid request format")
	return false
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		api.NotFoundResponse(c, "Resource")
	case errors.Is(err, errDuplicateName):
		api.ErrorResponse(c, http.StatusConflict, "CONFLICT", "Category name already exists",
			map[string]string{"name": "unique"})
	case errors.Is(err, errWrongPassword):
		api.BadRequestResponse(c, "Old password is incorrect")
	default:
		h.logger.Error(err, logger.Fields{"path": c.FullPath()})
		api.InternalErrorResponse(c, "Something went wrong")
	}
}

func jsonName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
