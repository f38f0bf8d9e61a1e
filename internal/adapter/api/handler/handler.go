package handler

import (
	"github.com/Mattyonemillion/henlo/internal/usecase"
)

var (
	authHandler     *AuthHandler
	userHandler     *UserHandler
	listingHandler  *ListingHandler
	categoryHandler *CategoryHandler
	paymentHandler  *PaymentHandler
	chatHandler     *ChatHandler
	favoriteHandler *FavoriteHandler
	reviewHandler   *ReviewHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	listingUseCase *usecase.ListingUseCase,
	categoryUseCase *usecase.CategoryUseCase,
	paymentUseCase *usecase.PaymentUseCase,
	chatUseCase *usecase.ChatUseCase,
	favoriteUseCase *usecase.FavoriteUseCase,
	reviewUseCase *usecase.ReviewUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	listingHandler = NewListingHandler(listingUseCase)
	categoryHandler = NewCategoryHandler(categoryUseCase)
	paymentHandler = NewPaymentHandler(paymentUseCase)
	chatHandler = NewChatHandler(chatUseCase)
	favoriteHandler = NewFavoriteHandler(favoriteUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetListingHandler() *ListingHandler {
	return listingHandler
}

func GetCategoryHandler() *CategoryHandler {
	return categoryHandler
}

func GetPaymentHandler() *PaymentHandler {
	return paymentHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}

func GetFavoriteHandler() *FavoriteHandler {
	return favoriteHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}
