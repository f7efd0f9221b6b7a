package handlers

import (
	"net/http"

	"disccount_backend/internal/services"
	"disccount_backend/internal/services/dto"
	"disccount_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// ShoppingListHandler serves lists and the items nested under them.
type ShoppingListHandler struct {
	*BaseHandler
	listService services.ShoppingListService
	itemService services.ShoppingListItemService
}

func NewShoppingListHandler(base *BaseHandler, listService services.ShoppingListService, itemService services.ShoppingListItemService) *ShoppingListHandler {
	return &ShoppingListHandler{
		BaseHandler: base,
		listService: listService,
		itemService: itemService,
	}
}

func (h *ShoppingListHandler) RegisterRoutes(rg *gin.RouterGroup) {
	lists := rg.Group("/shopping-lists")
	lists.Use(h.RequireAuth())
	{
		lists.GET("", h.ListMine)
		lists.POST("", h.Create)
		lists.GET("/public", h.ListPublic)
		lists.GET("/items", h.ListMyItems)
		lists.GET("/:id", h.Get)
		lists.PUT("/:id", h.Update)
		lists.DELETE("/:id", h.Delete)
		lists.POST("/:id/items", h.AddItem)
		lists.PUT("/:id/items/:itemId", h.UpdateItem)
		lists.DELETE("/:id/items/:itemId", h.DeleteItem)
	}
}

// Create godoc
// @Summary      Create a shopping list
// @Tags         shopping-lists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateShoppingListRequest true "List"
// @Success      201 {object} dto.ShoppingListResponse
// @Router       /api/v1/shopping-lists [post]
func (h *ShoppingListHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateShoppingListRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	list, err := h.listService.Create(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

func (h *ShoppingListHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	lists, err := h.listService.ListMine(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, lists)
}

func (h *ShoppingListHandler) ListPublic(c *gin.Context) {
	lists, err := h.listService.ListPublic(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, lists)
}

func (h *ShoppingListHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	id, ok := h.ParseIDParam(c, "id", apperrors.ErrShoppingListNotFound)
	if !ok {
		return
	}

	list, err := h.listService.Get(c.Request.Context(), h.GetDB(c), userID, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ShoppingListHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	id, ok := h.ParseIDParam(c, "id", apperrors.ErrShoppingListNotFound)
	if !ok {
		return
	}

	var req dto.UpdateShoppingListRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	list, err := h.listService.Update(c.Request.Context(), h.GetDB(c), userID, id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ShoppingListHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	id, ok := h.ParseIDParam(c, "id", apperrors.ErrShoppingListNotFound)
	if !ok {
		return
	}

	if err := h.listService.Delete(c.Request.Context(), h.GetDB(c), userID, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Shopping list deleted"})
}

// --- items ---

func (h *ShoppingListHandler) ListMyItems(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	items, err := h.itemService.ListMine(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ShoppingListHandler) AddItem(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	id, ok := h.ParseIDParam(c, "id", apperrors.ErrShoppingListNotFound)
	if !ok {
		return
	}

	var req dto.CreateShoppingListItemRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.itemService.Add(c.Request.Context(), h.GetDB(c), userID, id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *ShoppingListHandler) UpdateItem(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	id, ok := h.ParseIDParam(c, "id", apperrors.ErrShoppingListNotFound)
	if !ok {
		return
	}
	itemID, ok := h.ParseIDParam(c, "itemId", apperrors.ErrShoppingListItemNotFound)
	if !ok {
		return
	}

	var req dto.UpdateShoppingListItemRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.itemService.Update(c.Request.Context(), h.GetDB(c), userID, id, itemID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ShoppingListHandler) DeleteItem(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	id, ok := h.ParseIDParam(c, "id", apperrors.ErrShoppingListNotFound)
	if !ok {
		return
	}
	itemID, ok := h.ParseIDParam(c, "itemId", apperrors.ErrShoppingListItemNotFound)
	if !ok {
		return
	}

	if err := h.itemService.Delete(c.Request.Context(), h.GetDB(c), userID, id, itemID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Item deleted"})
}
