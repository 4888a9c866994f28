// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"suvarnadesk/internal/infrastructure/http/v1/middleware"
)

// CatalogRouteHandler is the surface every catalog handler exposes.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	SetDeletionMark(c *gin.Context)
	GetTree(c *gin.Context)
}

// RegisterCatalogRoutes mounts the shared CRUD routes on a catalog
// group. Reads and writes are open to any authenticated user; deleting
// and the explicit deletion-mark toggle need the admin role. Both
// delete paths end in the same soft mark, the second one can also
// clear it.
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/tree", handler.GetTree)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", middleware.RequireAdmin(), handler.Delete)
	group.POST("/:id/deletion-mark", middleware.RequireAdmin(), handler.SetDeletionMark)
}
