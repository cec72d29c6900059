package main

import (
	"fmt"
	"os"

	"budgetplanner/internal/config"
	"budgetplanner/internal/database"
	"budgetplanner/internal/logger"
	"budgetplanner/internal/server"
)

// @title           Budget Planner development API
// @version         1.0
// @description     Development backend for the budget planner client: users, finance accounts, categories, transactions and category reports.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Named("devserver")

	serverConfig, err := config.LoadServer()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	router := server.NewRouter(dbManager.DB(), config.LoadEndpoints())

	log.Infof("Starting budget development server on port %s (%s database)", serverConfig.Port, dbConfig.Driver)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", serverConfig.Port)
	return router.Run(":" + serverConfig.Port)
}
