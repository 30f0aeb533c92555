package main

import (
	"github.com/gin-gonic/gin"

	"studiobooking/internal/config"
	"studiobooking/internal/database"
	"studiobooking/internal/middleware"
	"studiobooking/internal/modules/auth"
	"studiobooking/internal/modules/availability"
	"studiobooking/internal/modules/booking"
	"studiobooking/internal/modules/catalog"
	"studiobooking/internal/notification"
	jwtsvc "studiobooking/internal/pkg/jwt"
	"studiobooking/internal/pkg/logger"
	"studiobooking/internal/repository"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	if cfg.DatabaseURL == "" {
		logger.Log.Fatal("DATABASE_URL is empty")
	}
	if cfg.JWTSecret == "" {
		logger.Log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Log.WithError(err).Fatal("database connection failed")
	}
	if err := repository.Migrate(db); err != nil {
		logger.Log.WithError(err).Fatal("migration failed")
	}

	userRepo := repository.NewUserRepository(db)
	studioRepo := repository.NewStudioRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(studioRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	availabilityService := availability.NewService(availabilityRepo, studioRepo)
	availabilityHandler := availability.NewHandler(availabilityService)

	bookingService := booking.NewService(bookingRepo, availabilityRepo, studioRepo, notification.NewSender())
	bookingHandler := booking.NewHandler(bookingService)

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		availabilityHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			catalogHandler.RegisterProtectedRoutes(protected)
			availabilityHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
		}
	}

	logger.Log.WithField("port", cfg.Port).Info("starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Log.WithError(err).Fatal("server stopped")
	}
}
