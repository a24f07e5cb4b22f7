package stub

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"dario.cat/mergo"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/joefazee/neo-admin/models"
)

var (
	errDuplicateName = errors.New("category name already exists")
	errWrongPassword = errors.New("old password is incorrect")
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

type account struct {
	ID           string
	Email        string
	PasswordHash []byte
}

// repository keeps categories in insertion order and accounts by id.
type repository struct {
	mu         sync.RWMutex
	categories []models.Category
	accounts   map[string]*account
	now        func() time.Time
}

func newRepository(now func() time.Time) *repository {
	return &repository{accounts: make(map[string]*account), now: now}
}

func (r *repository) list() []models.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Category, len(r.categories))
	copy(out, r.categories)
	return out
}

func (r *repository) indexOf(id string) int {
	for i := range r.categories {
		if r.categories[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *repository) get(id string) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, models.ErrNotFound
	}
	c := r.categories[i]
	return &c, nil
}

func (r *repository) nameTaken(name, exceptID string) bool {
	for i := range r.categories {
		if r.categories[i].ID != exceptID && strings.EqualFold(r.categories[i].Name, name) {
			return true
		}
	}
	return false
}

func (r *repository) create(c models.Category) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nameTaken(c.Name, "") {
		return nil, errDuplicateName
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Slug == "" {
		c.Slug = slugify(c.Name)
	}
	if c.SubCategories == nil {
		c.SubCategories = []json.RawMessage{}
	}
	now := r.now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	r.categories = append(r.categories, c)
	return &c, nil
}

// update merges the non-empty fields of patch into the stored category.
// Media is replaced as a whole when supplied, so null clears it.
func (r *repository) update(id string, req UpdateCategoryRequest) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, models.ErrNotFound
	}
	if req.Name != nil && r.nameTaken(*req.Name, id) {
		return nil, errDuplicateName
	}

	var patch models.Category
	if req.Name != nil {
		patch.Name = *req.Name
	}
	if req.Slug != nil {
		patch.Slug = *req.Slug
	}
	if req.Details != nil {
		patch.Details = *req.Details
	}

	c := r.categories[i]
	if err := mergo.Merge(&c, patch, mergo.WithOverride); err != nil {
		return nil, err
	}
	if req.Details != nil && *req.Details == "" {
		c.Details = ""
	}
	req.Icon.apply(&c.Icon)
	req.Image.apply(&c.Image)
	req.BannerImg.apply(&c.BannerImg)
	c.UpdatedAt = r.now()
	r.categories[i] = c
	return &c, nil
}

func (r *repository) delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return models.ErrNotFound
	}
	r.categories = append(r.categories[:i], r.categories[i+1:]...)
	return nil
}

func (r *repository) addAccount(id, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[id] = &account{ID: id, Email: email, PasswordHash: hash}
	return nil
}

func (r *repository) changePassword(id, oldPassword, newPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc, ok := r.accounts[id]
	if !ok {
		return models.ErrNotFound
	}
	if bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(oldPassword)) != nil {
		return errWrongPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	acc.PasswordHash = hash
	return nil
}

func (r *repository) checkPassword(id, password string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acc, ok := r.accounts[id]
	return ok && bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(password)) == nil
}

func slugify(name string) string {
	return strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(name), "-"), "-")
}
