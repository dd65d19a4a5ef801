package parts

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coreselect/internal/shared/server/respond"
)

type Handler struct {
	Catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{Catalog: catalog}
}

func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.GET("/parts/:componentType", h.list)
}

func (h *Handler) list(c *gin.Context) {
	cat, ok := ParseCategory(c.Param("componentType"))
	if !ok {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "Invalid component type", nil)
		return
	}
	respond.OK(c, h.Catalog.Parts(cat))
}
