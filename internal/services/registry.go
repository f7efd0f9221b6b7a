package services

import (
	"disccount_backend/internal/auth"
	"disccount_backend/internal/email"
	"disccount_backend/internal/repositories"
)

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService             AuthService
	UserService             UserService
	ShoppingListService     ShoppingListService
	ShoppingListItemService ShoppingListItemService
	DigitalCardService      DigitalCardService
	NotificationService     NotificationService
	PinnedStoreService      PinnedStoreService
	PinnedPlaceService      PinnedPlaceService
	WatchlistService        WatchlistService
}

// Dependencies are the collaborators shared by every service.
type Dependencies struct {
	Tokens TokenGenerator
	Hasher auth.PasswordHasher
	Policy auth.PasswordPolicy
	Mailer email.Sender
}

// NewServiceContainer wires every service onto stateless repositories.
func NewServiceContainer(deps Dependencies) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	refreshTokenRepo := repositories.NewRefreshTokenRepository()
	listRepo := repositories.NewShoppingListRepository()

	userService := NewUserService(userRepo, refreshTokenRepo)

	return &ServiceContainer{
		AuthService:             NewAuthService(userRepo, refreshTokenRepo, deps.Tokens, deps.Hasher, deps.Policy),
		UserService:             userService,
		ShoppingListService:     NewShoppingListService(listRepo, userService),
		ShoppingListItemService: NewShoppingListItemService(listRepo, repositories.NewShoppingListItemRepository()),
		DigitalCardService:      NewDigitalCardService(repositories.NewDigitalCardRepository()),
		NotificationService:     NewNotificationService(repositories.NewNotificationRepository(), userRepo, deps.Mailer),
		PinnedStoreService:      NewPinnedStoreService(repositories.NewPinnedStoreRepository()),
		PinnedPlaceService:      NewPinnedPlaceService(repositories.NewPinnedPlaceRepository()),
		WatchlistService:        NewWatchlistService(repositories.NewWatchlistRepository()),
	}
}
