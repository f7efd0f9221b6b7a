package handlers

import "github.com/gin-gonic/gin"

// AppHandlers holds every HTTP handler of the API.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	ShoppingListHandler *ShoppingListHandler
	DigitalCardHandler  *DigitalCardHandler
	NotificationHandler *NotificationHandler
	PinnedHandler       *PinnedHandler
	WatchlistHandler    *WatchlistHandler
	StoreChainHandler   *StoreChainHandler
}

// RegisterRoutes mounts every handler under rg.
func (a *AppHandlers) RegisterRoutes(rg *gin.RouterGroup) {
	a.AuthHandler.RegisterRoutes(rg)
	a.UserHandler.RegisterRoutes(rg)
	a.ShoppingListHandler.RegisterRoutes(rg)
	a.DigitalCardHandler.RegisterRoutes(rg)
	a.NotificationHandler.RegisterRoutes(rg)
	a.PinnedHandler.RegisterRoutes(rg)
	a.WatchlistHandler.RegisterRoutes(rg)
	a.StoreChainHandler.RegisterRoutes(rg)
}
