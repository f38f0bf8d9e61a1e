package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"github.com/Mattyonemillion/henlo/internal/adapter/api"
	"github.com/Mattyonemillion/henlo/internal/adapter/api/handler"
	apimiddleware "github.com/Mattyonemillion/henlo/internal/adapter/api/middleware"
	"github.com/Mattyonemillion/henlo/internal/adapter/api/router"
	"github.com/Mattyonemillion/henlo/internal/adapter/repository"
	"github.com/Mattyonemillion/henlo/internal/domain/service"
	"github.com/Mattyonemillion/henlo/internal/infrastructure/firebase"
	"github.com/Mattyonemillion/henlo/internal/infrastructure/ratelimit"
	"github.com/Mattyonemillion/henlo/internal/infrastructure/storage"
	"github.com/Mattyonemillion/henlo/internal/infrastructure/websocket"
	"github.com/Mattyonemillion/henlo/internal/usecase"
	"github.com/Mattyonemillion/henlo/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption
	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
		serviceAccountPath = ""
	} else if serviceAccountPath != "" {
		opts = append(opts, option.WithCredentialsFile(serviceAccountPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, serviceAccountPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	categoryRepo := repository.NewFirestoreCategoryRepository(firestoreClient)
	listingRepo := repository.NewFirestoreListingRepository(firestoreClient)
	paymentRepo := repository.NewFirestorePaymentRepository(firestoreClient)
	conversationRepo := repository.NewFirestoreConversationRepository(firestoreClient)
	favoriteRepo := repository.NewFirestoreFavoriteRepository(firestoreClient)
	reviewRepo := repository.NewFirestoreReviewRepository(firestoreClient)

	firebaseAuthClient := firebase.NewAuthClient(authClient, cfg.FirebaseApiKey)

	wsManager := websocket.NewManager(conversationRepo)
	wsManager.Start(ctx)

	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	paymentGateway := service.NewMolliePaymentService(cfg.MollieApiKey)

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	userUseCase := usecase.NewUserUseCase(userRepo, listingRepo, reviewRepo, firebaseAuthClient)
	listingUseCase := usecase.NewListingUseCase(listingRepo, categoryRepo, userRepo, storageClient)
	categoryUseCase := usecase.NewCategoryUseCase(categoryRepo)
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, listingRepo, userRepo, paymentGateway, rateLimiter, cfg.BaseURL)
	chatUseCase := usecase.NewChatUseCase(conversationRepo, listingRepo, wsManager, rateLimiter)
	favoriteUseCase := usecase.NewFavoriteUseCase(favoriteRepo, listingRepo)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, listingRepo, paymentRepo, userRepo)

	if err := categoryUseCase.SeedCategories(ctx); err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}

	handler.Setup(
		authUseCase,
		userUseCase,
		listingUseCase,
		categoryUseCase,
		paymentUseCase,
		chatUseCase,
		favoriteUseCase,
		reviewUseCase,
	)
	handler.SetupFileHandler(storageClient, cfg.MaxUploadBytes)
	handler.SetupHealthHandler()

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	wsHandler := handler.NewWebSocketHandler(wsManager, authMiddleware)

	router.Setup(e, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
