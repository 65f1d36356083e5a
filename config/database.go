package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"notify-center-api/models"
)

var DB *gorm.DB

func InitDB() {
	var err error

	// DB_DRIVER selects the backend: the embedded sqlite file (default)
	// or an external MySQL server.
	driver := strings.ToLower(os.Getenv("DB_DRIVER"))

	// In production, suppress SQL logs unless explicitly re-enabled via DEBUG_SQL=true.
	environment := strings.ToLower(os.Getenv("ENVIRONMENT"))
	debugSQL := strings.ToLower(os.Getenv("DEBUG_SQL"))
	logLevel := logger.Info
	if environment == "production" && debugSQL != "true" {
		logLevel = logger.Warn
	}

	gormConfig := &gorm.Config{
		Logger: logger.New(
			log.New(LogWriter, "\r\n", log.LstdFlags),
			logger.Config{LogLevel: logLevel},
		),
	}

	switch driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			os.Getenv("DB_USERNAME"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_HOST"),
			os.Getenv("DB_PORT"),
			os.Getenv("DB_DATABASE"),
		)
		DB, err = gorm.Open(mysql.Open(dsn), gormConfig)
	case "sqlite", "":
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "notify-center.db"
		}
		DB, err = gorm.Open(sqlite.Open(path), gormConfig)
	default:
		log.Fatalf("Unsupported DB_DRIVER: %s", driver)
	}

	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := AutoMigrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database connected successfully")
}

// AutoMigrate creates or updates the pipeline tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.NotifierConfig{},
		&models.NotificationRule{},
		&models.NotificationRecipient{},
		&models.TriggerHistory{},
		&models.TriggerVariable{},
		&models.NotificationHistory{},
		&models.AppSetting{},
	)
}
