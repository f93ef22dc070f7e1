package main

import (
	"os"

	"github.com/paatih-qee/langspeed-motor/config"
	"github.com/paatih-qee/langspeed-motor/internal/delivery"
	"github.com/paatih-qee/langspeed-motor/internal/repository"
	"github.com/paatih-qee/langspeed-motor/internal/usecase"
	"github.com/paatih-qee/langspeed-motor/pkg/db"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.LoadConfig(logger)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s', falling back to info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.Info("Starting workshop service...")

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connection established.")

	// Repository Layer
	productRepo := repository.NewPostgresProductRepository(database, logger)
	serviceRepo := repository.NewPostgresServiceRepository(database, logger)
	orderRepo := repository.NewPostgresOrderRepository(database, logger)
	logger.Info("Repositories initialized.")

	// Usecase Layer
	productUseCase := usecase.NewProductUseCase(productRepo, logger)
	serviceUseCase := usecase.NewServiceUseCase(serviceRepo, logger)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, logger)
	logger.Info("Use cases initialized.")

	productHandler := delivery.NewProductHandler(productUseCase, logger)
	serviceHandler := delivery.NewServiceHandler(serviceUseCase, logger)
	orderHandler := delivery.NewOrderHandler(orderUseCase, logger)
	logger.Info("Handlers initialized.")

	router := gin.Default()
	router.Use(gin.Recovery())

	router.Use(func(c *gin.Context) {
		logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"ip":     c.ClientIP(),
		}).Info("Request received")
		c.Next()
		logger.WithFields(logrus.Fields{
			"status": c.Writer.Status(),
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Info("Request completed")
	})

	productHandler.RegisterRoutes(router)
	serviceHandler.RegisterRoutes(router)
	orderHandler.RegisterRoutes(router)
	logger.Info("API routes registered.")

	logger.Infof("Starting server on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
