package handler

import (
	"errors"
	"net/http"

	"backoffice/internal/middleware"
	"backoffice/internal/model"
	"backoffice/internal/service"
	"backoffice/pkg/response"

	"github.com/gin-gonic/gin"
)

// DraftHandler exposes the composing wizard: one session per in-progress
// draft, mutated one operation at a time and discarded or saved at the end.
type DraftHandler struct {
	draftService service.DraftSessionService
	memoService  service.MemoTemplateService
}

func NewDraftHandler(draftService service.DraftSessionService, memoService service.MemoTemplateService) *DraftHandler {
	return &DraftHandler{draftService: draftService, memoService: memoService}
}

func (h *DraftHandler) RegisterRoutes(router *gin.RouterGroup) {
	drafts := router.Group("/api/drafts", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff))
	{
		drafts.POST("", h.StartDraft)
		drafts.GET("/:id", h.GetDraft)
		drafts.DELETE("/:id", h.DiscardDraft)

		drafts.PUT("/:id/basic-info", h.SetBasicInfo)
		drafts.PUT("/:id/memo", h.SetMemo)
		drafts.POST("/:id/memo/from-template", h.ApplyMemoTemplate)

		drafts.POST("/:id/line-items", h.AddLineItem)
		drafts.PUT("/:id/line-items/:itemId", h.UpdateLineItem)
		drafts.DELETE("/:id/line-items/:itemId", h.RemoveLineItem)
		drafts.POST("/:id/line-items/:itemId/increment", h.IncrementLineItem)
		drafts.POST("/:id/line-items/:itemId/decrement", h.DecrementLineItem)

		drafts.PUT("/:id/discount", h.ApplyDiscount)
		drafts.DELETE("/:id/discount", h.RemoveDiscount)
		drafts.PUT("/:id/recurrence", h.SetRecurrence)

		drafts.POST("/:id/advance", h.Advance)
		drafts.POST("/:id/back", h.Back)
		drafts.POST("/:id/source", h.SelectSource)
		drafts.POST("/:id/save", h.SaveDraft)
	}
}

func (h *DraftHandler) writeDraftResult(c *gin.Context, view service.DraftView, err error) {
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, view))
}

// StartDraft opens a new wizard session
// @Summary      Start a draft session
// @Tags         drafts
// @Security     BearerAuth
// @Produce      json
// @Success      201  {object}  response.Response
// @Router       /api/drafts [post]
func (h *DraftHandler) StartDraft(c *gin.Context) {
	view := h.draftService.Start(c.GetString("userID"))
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, view))
}

// GetDraft returns the current wizard state
// @Summary      Get draft session
// @Tags         drafts
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Draft session ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/drafts/{id} [get]
func (h *DraftHandler) GetDraft(c *gin.Context) {
	view, err := h.draftService.Get(c.GetString("userID"), c.Param("id"))
	h.writeDraftResult(c, view, err)
}

// DiscardDraft abandons an in-progress draft
// @Summary      Discard draft session
// @Tags         drafts
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Draft session ID"
// @Success      200  {object}  response.Response
// @Router       /api/drafts/{id} [delete]
func (h *DraftHandler) DiscardDraft(c *gin.Context) {
	if err := h.draftService.Discard(c.GetString("userID"), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Draft discarded"}))
}

// SetBasicInfo updates name, description, category and icon
// @Summary      Set draft basic info
// @Tags         drafts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                    true  "Draft session ID"
// @Param        payload  body  service.BasicInfoRequest  true  "Basic info"
// @Success      200  {object}  response.Response
// @Router       /api/drafts/{id}/basic-info [put]
func (h *DraftHandler) SetBasicInfo(c *gin.Context) {
	var req service.BasicInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	view, err := h.draftService.SetBasicInfo(c.GetString("userID"), c.Param("id"), req)
	h.writeDraftResult(c, view, err)
}

type setMemoRequest struct {
	Memo string `json:"memo"`
}

// SetMemo replaces the draft memo text
// @Summary      Set draft memo
// @Tags         drafts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Draft session ID"
// @Success      200  {object}  response.Response
// @Router       /api/drafts/{id}/memo [put]
func (h *DraftHandler) SetMemo(c *gin.Context) {
	var req setMemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	view, err := h.draftService.SetMemo(c.GetString("userID"), c.Param("id"), req.Memo)
	h.writeDraftResult(c, view, err)
}

type applyMemoTemplateRequest struct {
	MemoTemplateID string `json:"memo_template_id" binding:"required"`
}

// ApplyMemoTemplate copies a memo template's content into the draft. The copy
// is one-way: later edits to the registry never touch this draft.
// @Summary      Apply memo template to draft
// @Tags         drafts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Draft session ID"
// @Success      200  {object}  response.Response
// @Router       /api/drafts/{id}/memo/from-template [post]
func (h *DraftHandler) ApplyMemoTemplate(c *gin.Context) {
	var req applyMemoTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	content, err := h.memoService.GetContent(c.Request.Context(), req.MemoTemplateID)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	view, err := h.draftService.SetMemo(c.GetString("userID"), c.Param("id"), content)
	h.writeDraftResult(c, view, err)
}

// AddLineItem appends a blank or catalog-seeded line item
// @Summary      Add draft line item
// @Tags         drafts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                      true  "Draft session ID"
// @Param        payload  body  service.AddLineItemRequest  true  "Line item source"
// @Success      200  {object}  response.Response
// @Router       /api/drafts/{id}/line-items [post]
func (h *DraftHandler) AddLineItem(c *gin.Context) {
	var req service.AddLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	view, err := h.draftService.AddLineItem(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	h.writeDraftResult(c, view, err)
}

// UpdateLineItem edits a single field of a line item
// @Summary      Update draft line item field
// @Tags         drafts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id      path  string                         true  "Draft session ID"
// @Param        itemId  path  string                         true  "Line item ID"
// @Param        payload body  service.UpdateLineItemRequest  true  "Field and value"
// @Success      200  {object}  response.Response
// @Router       /api/drafts/{id}/line-items/{itemId} [put]
func (h *DraftHandler) UpdateLineItem(c *gin.Context) {
	var req service.UpdateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	view, err := h.draftService.UpdateLineItem(c.GetString("userID"), c.Param("id"), c.Param("itemId"), req)
	h.writeDraftResult(c, view, err)
}

// RemoveLineItem deletes a line item from the draft
// @Summary      Remove draft line item
// @Tags         drafts
// @Security     BearerAuth
// @Produce      json
// @Param        id      path  string  true  "Draft session ID"
// @Param        itemId  path  string  true  "Line item ID"
// @Success      200  {object}  response.Response
// @Router       /api/drafts/{id}/line-items/{itemId} [delete]
func (h *DraftHandler) RemoveLineItem(c *gin.Context) {
	view, err := h.draftService.RemoveLineItem(c.GetString("userID"), c.Param("id"), c.Param("itemId"))
	h.writeDraftResult(c, view, err)
}

// IncrementLineItem steps a numeric field up (floor at zero applies on the way down)
// @Summary      Increment line item field
// @Tags         drafts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "Draft session ID"
// @Param        itemId  path  string  true  "Line item ID"
// @Success      200  {object}  response.Response
// @Router       /api/drafts/{id}/line-items/{itemId}/increment [post]
func (h *DraftHandler) IncrementLineItem(c *gin.Context) {
	h.stepLineItem(c, false)
}

// DecrementLineItem steps a numeric field down, clamping at zero
// @Summary      Decrement line item field
// @Tags         drafts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "Draft session ID"
// @Param        itemId  path  string  true  "Line item ID"
// @Success      200  {object}  response.Response
// @Router       /api/drafts/{id}/line-items/{itemId}/decrement [post]
func (h *DraftHandler) DecrementLineItem(c *gin.Context) {
	h.stepLineItem(c, true)
}

func (h *DraftHandler) stepLineItem(c *gin.Context, decrement bool) {
	var req service.StepLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	view, err := h.draftService.StepLineItem(c.GetString("userID"), c.Param("id"), c.Param("itemId"), req, decrement)
	h.writeDraftResult(c, view, err)
}

// ApplyDiscount sets or replaces the draft discount atomically
// @Summary      Apply draft discount
// @Tags         drafts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                 true  "Draft session ID"
// @Param        payload  body  service.DiscountInput  true  "Discount"
// @Success      200  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/drafts/{id}/discount [put]
func (h *DraftHandler) ApplyDiscount(c *gin.Context) {
	var req service.DiscountInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	view, err := h.draftService.ApplyDiscount(c.GetString("userID"), c.Param("id"), req)
	h.writeDraftResult(c, view, err)
}

// RemoveDiscount clears the draft discount
// @Summary      Remove draft discount
// @Tags         drafts
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Draft session ID"
// @Success      200  {object}  response.Response
// @Router       /api/drafts/{id}/discount [delete]
func (h *DraftHandler) RemoveDiscount(c *gin.Context) {
	view, err := h.draftService.RemoveDiscount(c.GetString("userID"), c.Param("id"))
	h.writeDraftResult(c, view, err)
}

// SetRecurrence configures the recurrence rule (pattern "none" clears it)
// @Summary      Set draft recurrence
// @Tags         drafts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                   true  "Draft session ID"
// @Param        payload  body  service.RecurrenceInput  true  "Recurrence rule"
// @Success      200  {object}  response.Response
// @Router       /api/drafts/{id}/recurrence [put]
func (h *DraftHandler) SetRecurrence(c *gin.Context) {
	var req service.RecurrenceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	view, err := h.draftService.SetRecurrence(c.GetString("userID"), c.Param("id"), req)
	h.writeDraftResult(c, view, err)
}

// Advance moves the wizard forward one step
// @Summary      Advance wizard step
// @Tags         drafts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                  true  "Draft session ID"
// @Param        payload  body  service.AdvanceRequest  true  "Advance options"
// @Success      200  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/drafts/{id}/advance [post]
func (h *DraftHandler) Advance(c *gin.Context) {
	var req service.AdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	view, err := h.draftService.Advance(c.GetString("userID"), c.Param("id"), req)
	h.writeDraftResult(c, view, err)
}

// Back moves the wizard one step back; leaving the line-items step on the
// scratch path resets category and icon to their defaults.
// @Summary      Step wizard back
// @Tags         drafts
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Draft session ID"
// @Success      200  {object}  response.Response
// @Router       /api/drafts/{id}/back [post]
func (h *DraftHandler) Back(c *gin.Context) {
	view, err := h.draftService.Back(c.GetString("userID"), c.Param("id"))
	h.writeDraftResult(c, view, err)
}

// SelectSource copies a saved template's line items into the draft
// @Summary      Select source template
// @Tags         drafts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                       true  "Draft session ID"
// @Param        payload  body  service.SelectSourceRequest  true  "Source template"
// @Success      200  {object}  response.Response
// @Router       /api/drafts/{id}/source [post]
func (h *DraftHandler) SelectSource(c *gin.Context) {
	var req service.SelectSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	view, err := h.draftService.SelectSource(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	h.writeDraftResult(c, view, err)
}

// SaveDraft validates the finished draft and persists it as a template. The
// session is consumed on success and untouched on a validation failure.
// @Summary      Save draft as template
// @Tags         drafts
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Draft session ID"
// @Success      201  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/drafts/{id}/save [post]
func (h *DraftHandler) SaveDraft(c *gin.Context) {
	tmpl, err := h.draftService.Save(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, tmpl))
}
