package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fleet_tracker/internal/models"
)

var (
	// DB is the globally accessible database handle
	DB *gorm.DB
)

// InitDB initializes the database connection using environment variables,
// enables PostGIS and creates the spatial indexes backing the proximity
// queries.
func InitDB() {
	// Load .env (if present)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	host := GetEnv("DB_HOST", "localhost")
	port := GetEnv("DB_PORT", "5432")
	user := GetEnv("DB_USER", "postgres")
	password := GetEnv("DB_PASSWORD", "password")
	dbname := GetEnv("DB_NAME", "fleet")
	sslmode := GetEnv("DB_SSLMODE", "disable")
	timezone := GetEnv("DB_TIMEZONE", "UTC")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		host, user, password, dbname, port, sslmode, timezone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	db.Exec("CREATE EXTENSION IF NOT EXISTS postgis;")

	err = db.AutoMigrate(&models.Route{}, &models.Stop{}, &models.Bus{}, &models.Driver{})
	if err != nil {
		log.Fatalf("auto-migration failed: %v", err)
	}

	// 2D-sphere indexes over bus positions and route stops. The nearby query
	// uses the identical geography expression so the planner can use them.
	db.Exec("CREATE INDEX IF NOT EXISTS idx_buses_current_location ON buses USING gist ((ST_SetSRID(ST_MakePoint(loc_lng, loc_lat), 4326)::geography));")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_stops_location ON stops USING gist ((ST_SetSRID(ST_MakePoint(lng, lat), 4326)::geography));")

	// Unique indexes scoped to live rows so a soft-deleted busNumber, route
	// name or phone does not block re-creation.
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_buses_bus_number ON buses (bus_number) WHERE deleted_at IS NULL;")
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_routes_route_name ON routes (route_name) WHERE deleted_at IS NULL;")
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_drivers_phone ON drivers (phone) WHERE deleted_at IS NULL;")

	DB = db
}

// GetEnv reads an environment variable or returns the provided default
func GetEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

// GetDB returns the initialized DB handle
func GetDB() *gorm.DB {
	return DB
}
