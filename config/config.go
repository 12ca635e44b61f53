package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the database configured by DB_DRIVER (mysql or sqlite).
// MySQL reads DB_USER/DB_PASS/DB_HOST/DB_PORT/DB_NAME; sqlite reads DB_PATH.
func InitDB() (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	switch getEnv("DB_DRIVER", "sqlite") {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			getEnv("DB_USER", "root"),
			os.Getenv("DB_PASS"),
			getEnv("DB_HOST", "127.0.0.1"),
			getEnv("DB_PORT", "3306"),
			getEnv("DB_NAME", "foodhub"),
		)
		return gorm.Open(mysql.Open(dsn), gormCfg)
	default:
		return gorm.Open(sqlite.Open(getEnv("DB_PATH", "foodhub.db")), gormCfg)
	}
}
