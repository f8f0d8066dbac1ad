package handler

import (
	"github.com/chaatgpt/till/internal/application/service"
	"github.com/chaatgpt/till/internal/presentation/http/dto/request"
	"github.com/chaatgpt/till/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MenuHandler handles menu HTTP requests
type MenuHandler struct {
	menu *service.MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menu *service.MenuService) *MenuHandler {
	return &MenuHandler{menu: menu}
}

// List returns the items on the menu
func (h *MenuHandler) List(c *gin.Context) {
	response.OK(c, "Menu retrieved successfully", h.menu.List())
}

// Update edits the name and/or price of a menu item
func (h *MenuHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid menu item ID")
		return
	}

	var req request.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	in := service.MenuUpdate{Name: req.Name}
	if req.Price != nil {
		price := req.Price.String()
		in.Price = &price
	}

	item, err := h.menu.Update(c.Request.Context(), id, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Menu item updated successfully", item)
}

// Delete removes a menu item. It needs ?confirm=true.
func (h *MenuHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid menu item ID")
		return
	}

	if err := h.menu.Delete(c.Request.Context(), id, isConfirmed(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Menu item deleted successfully", nil)
}
