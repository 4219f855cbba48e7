// Package server assembles the HTTP router from the repositories and modules.
package server

import (
	"log/slog"
	"net/http"

	"designmarket/internal/middleware"
	"designmarket/internal/modules/auth"
	"designmarket/internal/modules/booking"
	"designmarket/internal/modules/catalog"
	"designmarket/internal/modules/message"
	"designmarket/internal/modules/notification"
	"designmarket/internal/modules/payment"
	"designmarket/internal/pkg/jwt"
	"designmarket/internal/pkg/response"
	"designmarket/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Options struct {
	DB          *gorm.DB
	JWT         *jwt.Service
	Logger      *slog.Logger
	CORSOrigins []string
}

// NewRouter wires every module onto a fresh gin engine under /api/v1.
func NewRouter(opts Options) *gin.Engine {
	db := opts.DB
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	designRepo := repository.NewDesignRepository(db)
	designerRepo := repository.NewDesignerRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	authHandler := auth.NewHandler(auth.NewService(userRepo, tokenRepo, opts.JWT))
	catalogHandler := catalog.NewHandler(catalog.NewService(designRepo, designerRepo))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, designRepo, userRepo))
	paymentHandler := payment.NewHandler(payment.NewService(paymentRepo, bookingRepo))
	notificationHandler := notification.NewHandler(notification.NewService(notificationRepo))
	messageHandler := message.NewHandler(message.NewService(messageRepo, designRepo, userRepo))

	r := gin.New()
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(opts.CORSOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(opts.JWT, tokenRepo))
		{
			authHandler.RegisterProtectedRoutes(protected)
			catalogHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			paymentHandler.RegisterProtectedRoutes(protected)
			notificationHandler.RegisterRoutes(protected)
			messageHandler.RegisterRoutes(protected)
		}
	}

	return r
}
