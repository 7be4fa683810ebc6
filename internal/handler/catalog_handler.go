package handler

import (
	"net/http"

	"backoffice/internal/middleware"
	"backoffice/internal/model"
	"backoffice/internal/service"
	"backoffice/pkg/response"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	catalog := router.Group("/api/catalog", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff))
	{
		catalog.GET("/templates", h.ListPrebuiltTemplates)
		catalog.GET("/line-items", h.ListLineItemEntries)
		catalog.GET("/categories", h.ListCategories)
	}
}

// ListPrebuiltTemplates returns the built-in template catalog
// @Summary      List prebuilt templates
// @Tags         catalog
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/catalog/templates [get]
func (h *CatalogHandler) ListPrebuiltTemplates(c *gin.Context) {
	templates, err := h.catalogService.ListPrebuiltTemplates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, templates))
}

// ListLineItemEntries returns the line-item catalog, optionally filtered by category
// @Summary      List line item catalog
// @Tags         catalog
// @Security     BearerAuth
// @Produce      json
// @Param        category  query  string  false  "Filter by category"
// @Success      200  {object}  response.Response
// @Router       /api/catalog/line-items [get]
func (h *CatalogHandler) ListLineItemEntries(c *gin.Context) {
	entries, err := h.catalogService.ListLineItemEntries(c.Request.Context(), c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}

// ListCategories returns the closed category set with display styles
// @Summary      List categories
// @Tags         catalog
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/catalog/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.catalogService.ListCategories()))
}
