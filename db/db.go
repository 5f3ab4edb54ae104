package db

import (
	"context"
	"time"

	"blog-app/models"
	"blog-app/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open prepares the GORM handle without requiring the database to be reachable.
// A failed ping or migration is logged; the process keeps serving and requests
// fail individually until the database comes up.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:               utils.GetGormLogger(),
		TranslateError:       true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Ping(ctx, db); err != nil {
		utils.LogError(err, "Error connecting to the database")
		return db, nil
	}
	if err := Migrate(db); err != nil {
		utils.LogError(err, "Error migrating database")
		return db, nil
	}

	utils.LogSuccess("Database connection successful")
	return db, nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Session{},
	)
}
