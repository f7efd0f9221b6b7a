package handlers

import (
	"net/http"

	"disccount_backend/internal/models"

	"github.com/gin-gonic/gin"
)

type StoreChainHandler struct{}

func NewStoreChainHandler() *StoreChainHandler {
	return &StoreChainHandler{}
}

func (h *StoreChainHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/store-chains", h.List)
}

// List godoc
// @Summary      Known store chain codes
// @Tags         store-chains
// @Produce      json
// @Success      200 {array} string
// @Router       /api/v1/store-chains [get]
func (h *StoreChainHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, models.StoreChains())
}
