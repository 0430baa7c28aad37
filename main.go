package main

import (
	"go.uber.org/zap"

	"github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/config"
	"github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/database"
	logger "github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/logging"
	"github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/models"
	"github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/router"
)

func main() {
	// Initialize Logger
	log, err := logger.Init(".")
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// Initialize Configuration
	if err := config.Init(".", log); err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Database
	database.Init(log)

	// Load the test catalog and normative tables at startup. The load
	// validates every table; a data-authoring defect stops the server
	// here instead of surfacing mid-scoring.
	catalog, err := models.LoadCatalog(config.Conf.Assets.TestsFile)
	if err != nil {
		log.Fatal("Failed to load test catalog", zap.Error(err))
	}
	log.Info("Test catalog loaded", zap.Int("tests", len(catalog.Tests)))

	// Setup router, passing the logger to it
	r := router.Setup(log, catalog)

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
