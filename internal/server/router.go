// Package server assembles the development backend: a Gin engine serving the
// budget API over GORM, speaking the same routes and wire shapes as the
// reference backend so the budget client can run against it.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"budgetplanner/internal/config"
	"budgetplanner/internal/handlers"
	"budgetplanner/internal/middleware"
	"budgetplanner/internal/services"
	"budgetplanner/internal/validator"

	_ "budgetplanner/internal/docs" // swagger docs
)

// NewRouter wires services and handlers over db and mounts them on the
// configured endpoint templates.
func NewRouter(db *gorm.DB, endpoints config.Endpoints) *gin.Engine {
	validator.Register()

	userService := services.NewUserService(db)
	accountService := services.NewAccountService(db)
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db, accountService, categoryService)
	reportService := services.NewReportService(db, accountService, categoryService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterRoutes(router, endpoints, handlers.Handlers{
		Auth:         handlers.NewAuthHandler(userService),
		Users:        handlers.NewUserHandler(userService),
		Accounts:     handlers.NewAccountHandler(accountService),
		Categories:   handlers.NewCategoryHandler(categoryService),
		Transactions: handlers.NewTransactionHandler(transactionService),
		Reports:      handlers.NewReportHandler(reportService),
	}, middleware.AuthMiddleware())

	return router
}

func cors(c *gin.Context) {
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}

	c.Next()
}
