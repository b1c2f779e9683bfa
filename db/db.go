package db

import (
	"fmt"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database. Postgres when DATABASE_URL is set (or the
// discrete DB_* variables), otherwise a local sqlite file so the server
// runs without any infrastructure.
func Connect(log *logrus.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	if dsn := postgresDSN(); dsn != "" {
		log.Info("connecting to postgres")
		return gorm.Open(postgres.Open(dsn), gormCfg)
	}

	path := os.Getenv("SQLITE_PATH")
	if path == "" {
		path = "stakecast.db"
	}
	log.WithField("path", path).Info("no DATABASE_URL set, using sqlite")
	return gorm.Open(sqlite.Open(path), gormCfg)
}

// ConnectTest opens an in-memory sqlite database for tests
func ConnectTest() (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

func postgresDSN() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"))
}
