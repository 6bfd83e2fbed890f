package main

import (
	"fmt"
	"log/slog"
	"os"

	"stateflow/cmd"
	httpadapter "stateflow/internal/adapters/in/http"
	"stateflow/internal/adapters/out/postgres/auditrepo"
	"stateflow/internal/adapters/out/postgres/itemrepo"
	"stateflow/internal/core/domain/model/item"
	"stateflow/internal/core/domain/validation"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db := openDatabase(configs)
	catalog := loadCatalog(configs.CatalogPath)

	app := cmd.NewCompositionRoot(
		configs,
		db,
		catalog,
		validation.NewPipeline(),
		logger,
	)

	jobManager := app.CreateJobManager(configs.StaleItemsSchedule)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		CatalogPath:        goDotEnvVariable("CATALOG_PATH"),
		StaleItemsSchedule: goDotEnvVariable("STALE_ITEMS_SCHEDULE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(&itemrepo.ItemDTO{}, &itemrepo.TransitionDTO{}, &auditrepo.EntryDTO{})
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func loadCatalog(path string) *item.Catalog {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read catalog file %s: %v", path, err)
	}

	catalog, err := item.ParseCatalog(data)
	if err != nil {
		log.Fatalf("Failed to parse catalog file %s: %v", path, err)
	}

	return catalog
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpadapter.NewServer(
		app.CreateCreateItemCommandHandler(),
		app.CreateAttemptTransitionCommandHandler(),
		app.CreateGetItemQueryHandler(),
		app.CreateGetAuditTrailQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
