package db

import (
	"errors"

	"github.com/ikkim/printmoa-backend/internal/app/model"
	"github.com/ikkim/printmoa-backend/pkg/logger"
	"github.com/ikkim/printmoa-backend/pkg/util"
	"gorm.io/gorm"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Product{},
		&model.FlashSale{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed ensures a default admin account exists so the back office is reachable
// on a fresh database.
func Seed() error {
	var admin model.User
	err := DB.Where("role = ?", model.RoleAdmin).First(&admin).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := util.HashPassword("admin1234!")
	if err != nil {
		return err
	}

	admin = model.User{
		Email:        "admin@printmoa.kr",
		PasswordHash: hash,
		Name:         "관리자",
		Role:         model.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	logger.Warn("Seeded default admin account, change the password immediately", map[string]interface{}{
		"email": admin.Email,
	})
	return nil
}
