package handlers

import (
	"net/http"

	"disccount_backend/internal/services"
	"disccount_backend/internal/services/dto"
	"disccount_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type WatchlistHandler struct {
	*BaseHandler
	watchlistService services.WatchlistService
}

func NewWatchlistHandler(base *BaseHandler, watchlistService services.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{
		BaseHandler:      base,
		watchlistService: watchlistService,
	}
}

func (h *WatchlistHandler) RegisterRoutes(rg *gin.RouterGroup) {
	watchlist := rg.Group("/watchlist")
	watchlist.Use(h.RequireAuth())
	{
		watchlist.GET("", h.List)
		watchlist.POST("", h.Add)
		watchlist.GET("/product/:productApiId", h.GetByProduct)
		watchlist.PATCH("/:id/notified", h.MarkNotified)
		watchlist.DELETE("/:id", h.Remove)
	}
}

func (h *WatchlistHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	items, err := h.watchlistService.List(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *WatchlistHandler) Add(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AddWatchlistItemRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.watchlistService.Add(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *WatchlistHandler) GetByProduct(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	item, err := h.watchlistService.GetByProduct(c.Request.Context(), h.GetDB(c), userID, c.Param("productApiId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *WatchlistHandler) MarkNotified(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	id, ok := h.ParseIDParam(c, "id", apperrors.ErrWatchlistItemNotFound)
	if !ok {
		return
	}

	if err := h.watchlistService.MarkNotified(c.Request.Context(), h.GetDB(c), userID, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Watchlist item marked as notified"})
}

func (h *WatchlistHandler) Remove(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	id, ok := h.ParseIDParam(c, "id", apperrors.ErrWatchlistItemNotFound)
	if !ok {
		return
	}

	if err := h.watchlistService.Remove(c.Request.Context(), h.GetDB(c), userID, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Removed from watchlist"})
}
