package database

import (
	"fmt"
	"log"

	"perf_eval_backend/internal/config"
	"perf_eval_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Topic{},
		&model.Indicator{},
		&model.Assignment{},
		&model.Result{},
		&model.Comment{},
		&model.Signature{},
		&model.Attachment{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Seed a default admin so a fresh install is reachable.
	var count int64
	db.Model(&model.User{}).Count(&count)
	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		admin := &model.User{
			Name:     "Administrator",
			Email:    "admin@localhost",
			Password: string(hash),
			Role:     model.Admin,
			IsActive: true,
		}
		db.Create(admin)
		log.Println("Seeded default admin account (admin@localhost)")
	}

	return db, nil
}
