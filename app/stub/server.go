package stub

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/joefazee/neo-admin/app/api"
	"github.com/joefazee/neo-admin/internal/logger"
	"github.com/joefazee/neo-admin/internal/router"
	"github.com/joefazee/neo-admin/internal/sanitizer"
	"github.com/joefazee/neo-admin/models"
)

// DefaultBasePath matches the default client base URL.
const DefaultBasePath = "/api/v1"

// Server is an in-memory double of the admin backend. It implements the
// category and password reset routes and nothing else.
type Server struct {
	repo     *repository
	engine   *gin.Engine
	token    string
	basePath string
	version  string
	logger   logger.Logger

	mu       sync.Mutex
	failures []failure
}

type failure struct {
	status  int
	message string
}

type Option func(*Server)

// WithToken requires "Authorization: Bearer <token>" on every API route.
func WithToken(token string) Option {
	return func(s *Server) { s.token = token }
}

func WithBasePath(path string) Option {
	return func(s *Server) { s.basePath = path }
}

func WithLogger(log logger.Logger) Option {
	return func(s *Server) { s.logger = log }
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.repo.now = now }
}

func WithVersion(version string) Option {
	return func(s *Server) { s.version = version }
}

func New(opts ...Option) *Server {
	s := &Server{
		repo:     newRepository(time.Now),
		basePath: DefaultBasePath,
		version:  "dev",
		logger:   logger.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), api.CorsMiddleware(), s.injectFailures())
	r.GET("/healthz", api.HealthCheck(s.version))

	h := newHandler(s.repo, sanitizer.NewHTMLStripper(), s.logger)
	mounter := router.NewMounter(r, s.basePath)

	mounter.Public().Group("/category").Mount(func(g *gin.RouterGroup) {
		g.GET("", h.ListCategories)
		g.GET("/:id", h.GetCategory)
	})
	mounter.Authenticated(api.BearerAuth(s.token)).Mount(func(g *gin.RouterGroup) {
		g.POST("/category/create-category", h.CreateCategory)
		g.PATCH("/category/edit-category/:id", h.EditCategory)
		g.DELETE("/category/delete-category/:id", h.DeleteCategory)
		g.POST("/auth/reset-password", h.ResetPassword)
	})
	return r
}

// injectFailures answers the next queued request with a canned error.
func (s *Server) injectFailures() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		if len(s.failures) == 0 || c.Request.URL.Path == "/healthz" {
			s.mu.Unlock()
			c.Next()
			return
		}
		f := s.failures[0]
		s.failures = s.failures[1:]
		s.mu.Unlock()

		api.ErrorResponse(c, f.status, "INJECTED_FAILURE", f.message, nil)
		c.Abort()
	}
}

// FailNext makes the next API request fail with status and message.
func (s *Server) FailNext(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{status: status, message: message})
}

// ServeHTTP makes the server usable with httptest and http.Server.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

// Seed adds categories as if they had been created in order.
func (s *Server) Seed(items ...models.Category) error {
	for _, c := range items {
		if _, err := s.repo.create(c); err != nil {
			return err
		}
	}
	return nil
}

// AddUser registers an account that can change its password.
func (s *Server) AddUser(id, email, password string) error {
	return s.repo.addAccount(id, email, password)
}

// Categories returns the stored categories in order.
func (s *Server) Categories() []models.Category {
	return s.repo.list()
}

// CheckPassword reports whether password is the current one of user id.
func (s *Server) CheckPassword(id, password string) bool {
	return s.repo.checkPassword(id, password)
}
