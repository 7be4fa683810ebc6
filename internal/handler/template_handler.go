package handler

import (
	"net/http"

	"backoffice/internal/draft"
	"backoffice/internal/middleware"
	"backoffice/internal/model"
	"backoffice/internal/service"
	"backoffice/pkg/pagination"
	"backoffice/pkg/response"

	"github.com/gin-gonic/gin"
)

type TemplateHandler struct {
	templateService service.TemplateService
}

func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

func (h *TemplateHandler) RegisterRoutes(router *gin.RouterGroup) {
	templates := router.Group("/api/templates")
	{
		templates.GET("", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.ListTemplates)
		templates.GET("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.GetTemplate)
		templates.POST("", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.SaveTemplate)
		templates.POST("/preview", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.PreviewTotals)
		templates.PUT("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.UpdateTemplate)
		templates.DELETE("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.DeleteTemplate)
	}
}

// writeServiceError maps draft validation failures to 422 with a machine-readable
// kind; everything else is a plain 400.
func writeServiceError(c *gin.Context, err error) {
	if verr, ok := draft.AsValidationError(err); ok {
		c.JSON(http.StatusUnprocessableEntity, response.Response{
			Status:     "error",
			StatusCode: http.StatusUnprocessableEntity,
			Error:      verr.Error(),
			Data:       gin.H{"kind": string(verr.Kind)},
		})
		return
	}
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
}

// ListTemplates returns paginated invoice templates with optional filters
// @Summary      List invoice templates
// @Tags         templates
// @Security     BearerAuth
// @Produce      json
// @Param        page      query     int     false  "Page number (default: 1)"
// @Param        limit     query     int     false  "Items per page (default: 20)"
// @Param        category  query     string  false  "Filter by category"
// @Param        search    query     string  false  "Search by name"
// @Success      200       {object}  response.Response
// @Router       /api/templates [get]
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	params := pagination.Parse(c)

	templates, total, err := h.templateService.ListTemplates(c.Request.Context(), service.TemplateFilter{
		Category: c.Query("category"),
		Name:     c.Query("search"),
		Page:     params.Page,
		Limit:    params.Limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, templates, params.Page, params.Limit, total))
}

// GetTemplate returns a single template with its line items and totals
// @Summary      Get invoice template
// @Tags         templates
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Template ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/templates/{id} [get]
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	tmpl, err := h.templateService.GetTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, tmpl))
}

// SaveTemplate validates and persists a full template payload
// @Summary      Save invoice template
// @Tags         templates
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.SaveTemplateRequest  true  "Template payload"
// @Success      201  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/templates [post]
func (h *TemplateHandler) SaveTemplate(c *gin.Context) {
	var req service.SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	tmpl, err := h.templateService.SaveTemplate(c.Request.Context(), req, c.GetString("userID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, tmpl))
}

// PreviewTotals computes subtotal/discount/total for an unsaved payload
// @Summary      Preview template totals
// @Tags         templates
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.SaveTemplateRequest  true  "Draft payload"
// @Success      200  {object}  response.Response
// @Router       /api/templates/preview [post]
func (h *TemplateHandler) PreviewTotals(c *gin.Context) {
	var req service.SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	totals, err := h.templateService.PreviewTotals(req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, totals))
}

// UpdateTemplate replaces an existing template with a new payload
// @Summary      Update invoice template
// @Tags         templates
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                       true  "Template ID"
// @Param        payload  body  service.SaveTemplateRequest  true  "Template payload"
// @Success      200  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/templates/{id} [put]
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	var req service.SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	tmpl, err := h.templateService.UpdateTemplate(c.Request.Context(), c.Param("id"), req, c.GetString("userID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, tmpl))
}

// DeleteTemplate removes a saved template (prebuilt templates are protected)
// @Summary      Delete invoice template
// @Tags         templates
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Template ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/templates/{id} [delete]
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	if err := h.templateService.DeleteTemplate(c.Request.Context(), c.Param("id"), c.GetString("userID")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Template deleted successfully"}))
}
