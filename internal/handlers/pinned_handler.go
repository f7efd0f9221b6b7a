package handlers

import (
	"net/http"

	"disccount_backend/internal/services"
	"disccount_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// PinnedHandler serves the caller's pinned stores and pinned places.
type PinnedHandler struct {
	*BaseHandler
	storeService services.PinnedStoreService
	placeService services.PinnedPlaceService
}

func NewPinnedHandler(base *BaseHandler, storeService services.PinnedStoreService, placeService services.PinnedPlaceService) *PinnedHandler {
	return &PinnedHandler{
		BaseHandler:  base,
		storeService: storeService,
		placeService: placeService,
	}
}

func (h *PinnedHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stores := rg.Group("/pinned-stores")
	stores.Use(h.RequireAuth())
	{
		stores.GET("/me", h.ListStores)
		stores.PUT("/bulk", h.ReplaceStores)
	}

	places := rg.Group("/pinned-places")
	places.Use(h.RequireAuth())
	{
		places.GET("/me", h.ListPlaces)
		places.PUT("/bulk", h.ReplacePlaces)
	}
}

func (h *PinnedHandler) ListStores(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	stores, err := h.storeService.List(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stores)
}

// ReplaceStores godoc
// @Summary      Replace the caller's pinned stores
// @Description  The request becomes the whole set. An empty list unpins everything.
// @Tags         pinned
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.BulkPinnedStoresRequest true "Stores"
// @Success      200 {array} dto.PinnedStoreResponse
// @Router       /api/v1/pinned-stores/bulk [put]
func (h *PinnedHandler) ReplaceStores(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.BulkPinnedStoresRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	stores, err := h.storeService.Replace(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stores)
}

func (h *PinnedHandler) ListPlaces(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	places, err := h.placeService.List(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, places)
}

func (h *PinnedHandler) ReplacePlaces(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.BulkPinnedPlacesRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	places, err := h.placeService.Replace(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, places)
}
