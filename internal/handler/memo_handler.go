package handler

import (
	"net/http"

	"backoffice/internal/middleware"
	"backoffice/internal/model"
	"backoffice/internal/service"
	"backoffice/pkg/response"

	"github.com/gin-gonic/gin"
)

type MemoTemplateHandler struct {
	memoService service.MemoTemplateService
}

func NewMemoTemplateHandler(memoService service.MemoTemplateService) *MemoTemplateHandler {
	return &MemoTemplateHandler{memoService: memoService}
}

func (h *MemoTemplateHandler) RegisterRoutes(router *gin.RouterGroup) {
	memos := router.Group("/api/memo-templates")
	{
		memos.GET("", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.ListMemoTemplates)
		memos.POST("", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.CreateMemoTemplate)
		memos.PUT("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.UpdateMemoTemplate)
		memos.DELETE("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.DeleteMemoTemplate)
	}
}

// ListMemoTemplates returns the memo registry sorted by name
// @Summary      List memo templates
// @Tags         memo-templates
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/memo-templates [get]
func (h *MemoTemplateHandler) ListMemoTemplates(c *gin.Context) {
	memos, err := h.memoService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, memos))
}

// CreateMemoTemplate adds a reusable memo
// @Summary      Create memo template
// @Tags         memo-templates
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateMemoTemplateRequest  true  "Memo payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/memo-templates [post]
func (h *MemoTemplateHandler) CreateMemoTemplate(c *gin.Context) {
	var req service.CreateMemoTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	memo, err := h.memoService.Create(c.Request.Context(), req, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, memo))
}

// UpdateMemoTemplate edits a memo's name, content or category. Drafts that
// already copied the old content are unaffected.
// @Summary      Update memo template
// @Tags         memo-templates
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                             true  "Memo template ID"
// @Param        payload  body  service.UpdateMemoTemplateRequest  true  "Memo payload"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/memo-templates/{id} [put]
func (h *MemoTemplateHandler) UpdateMemoTemplate(c *gin.Context) {
	var req service.UpdateMemoTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	memo, err := h.memoService.Update(c.Request.Context(), c.Param("id"), req, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, memo))
}

// DeleteMemoTemplate removes a memo from the registry
// @Summary      Delete memo template
// @Tags         memo-templates
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Memo template ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/memo-templates/{id} [delete]
func (h *MemoTemplateHandler) DeleteMemoTemplate(c *gin.Context) {
	if err := h.memoService.Delete(c.Request.Context(), c.Param("id"), c.GetString("userID")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Memo template deleted successfully"}))
}
