package router

import (
	"github.com/gin-gonic/gin"
)

// MountFunc represents a function that mounts routes for a module
type MountFunc func(*gin.RouterGroup)

// Mounter groups routes under a common base path.
type Mounter struct {
	engine   *gin.Engine
	basePath string
}

func NewMounter(engine *gin.Engine, basePath string) *Mounter {
	return &Mounter{engine: engine, basePath: basePath}
}

// Public routes - no authentication required
func (m *Mounter) Public() *RouteGroup {
	return &RouteGroup{group: m.engine.Group(m.basePath)}
}

// Authenticated routes - every handler runs behind auth
func (m *Mounter) Authenticated(auth gin.HandlerFunc) *RouteGroup {
	group := m.engine.Group(m.basePath)
	group.Use(auth)
	return &RouteGroup{group: group}
}

type RouteGroup struct {
	group *gin.RouterGroup
}

// Mount provides a fluent interface for mounting modules
func (rg *RouteGroup) Mount(mountFunc MountFunc) *RouteGroup {
	mountFunc(rg.group)
	return rg
}

// Group creates a sub-group for organizing routes
func (rg *RouteGroup) Group(path string) *RouteGroup {
	return &RouteGroup{group: rg.group.Group(path)}
}
