// Package wire provides dependency injection for the runcard application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"io"
	"log"
	"os"
	"sync"

	cliadapter "github.com/example/runcard/internal/adapters/cli"
	"github.com/example/runcard/internal/adapters/refdata"
	"github.com/example/runcard/internal/adapters/sqlite"
	"github.com/example/runcard/internal/app"
	"github.com/example/runcard/internal/config"
	"github.com/example/runcard/internal/db"
	"github.com/example/runcard/internal/models"
	"github.com/example/runcard/internal/ports/primary"
)

var (
	referenceData   *models.ReferenceData
	dispatchService primary.DispatchService
	statusService   primary.StatusService
	once            sync.Once
)

// DispatchService returns the singleton DispatchService instance.
func DispatchService() primary.DispatchService {
	once.Do(initServices)
	return dispatchService
}

// StatusService returns the singleton StatusService instance.
func StatusService() primary.StatusService {
	once.Do(initServices)
	return statusService
}

// ReferenceData returns the loaded reference data snapshot.
func ReferenceData() *models.ReferenceData {
	once.Do(initServices)
	return referenceData
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to resolve working directory: %v", err)
	}
	loader := refdata.NewLoader(config.DataFilePath(cwd))
	referenceData, err = loader.Load(context.Background())
	if err != nil {
		log.Fatalf("failed to load reference data: %v", err)
	}

	// Repository adapters (secondary ports) - sqlite adapters with injected DB
	overrideRepo := sqlite.NewOverrideRepository(database)
	settingsRepo := sqlite.NewSettingsRepository(database)
	logWriter := sqlite.NewEditLogWriter(database)

	// Services (primary ports implementation)
	dispatchService = app.NewDispatchService(referenceData, overrideRepo, settingsRepo)
	statusService = app.NewStatusService(referenceData, overrideRepo, settingsRepo, logWriter)
}

// RecommendAdapter returns a new RecommendAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func RecommendAdapter() *cliadapter.RecommendAdapter {
	return RecommendAdapterWithOutput(os.Stdout)
}

// RecommendAdapterWithOutput returns a new RecommendAdapter writing to the
// given output. This variant allows testing or alternate destinations.
func RecommendAdapterWithOutput(out io.Writer) *cliadapter.RecommendAdapter {
	once.Do(initServices)
	return cliadapter.NewRecommendAdapter(dispatchService, out)
}
