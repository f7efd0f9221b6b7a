package handlers

import (
	"net/http"

	"disccount_backend/internal/services"
	"disccount_backend/internal/services/dto"
	"disccount_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type DigitalCardHandler struct {
	*BaseHandler
	cardService services.DigitalCardService
}

func NewDigitalCardHandler(base *BaseHandler, cardService services.DigitalCardService) *DigitalCardHandler {
	return &DigitalCardHandler{
		BaseHandler: base,
		cardService: cardService,
	}
}

func (h *DigitalCardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cards := rg.Group("/digital-cards")
	cards.Use(h.RequireAuth())
	{
		cards.GET("", h.List)
		cards.POST("", h.Create)
		cards.GET("/:id", h.Get)
		cards.PUT("/:id", h.Update)
		cards.DELETE("/:id", h.Delete)
	}
}

func (h *DigitalCardHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	cards, err := h.cardService.List(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

func (h *DigitalCardHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.DigitalCardRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	card, err := h.cardService.Create(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, card)
}

func (h *DigitalCardHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	id, ok := h.ParseIDParam(c, "id", apperrors.ErrCardNotFound)
	if !ok {
		return
	}

	card, err := h.cardService.Get(c.Request.Context(), h.GetDB(c), userID, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *DigitalCardHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	id, ok := h.ParseIDParam(c, "id", apperrors.ErrCardNotFound)
	if !ok {
		return
	}

	var req dto.DigitalCardRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	card, err := h.cardService.Update(c.Request.Context(), h.GetDB(c), userID, id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *DigitalCardHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	id, ok := h.ParseIDParam(c, "id", apperrors.ErrCardNotFound)
	if !ok {
		return
	}

	if err := h.cardService.Delete(c.Request.Context(), h.GetDB(c), userID, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Card deleted"})
}
