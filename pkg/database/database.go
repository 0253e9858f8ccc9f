package database

import (
	"fmt"
	"log"
	"math_quiz_backend/internal/config"
	"math_quiz_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 建立连接；runMigration 为真时执行 AutoMigrate 并补种默认主题
func InitDB(cfg *config.DatabaseConfig, runMigration bool) (*gorm.DB, error) {
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

	if !runMigration {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.TopicArea{},
		&model.Problem{},
		&model.AnswerOption{},
		&model.UserAnswer{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认的主题领域（对应入学考试四大题型）
	var count int64
	db.Model(&model.TopicArea{}).Count(&count)
	if count == 0 {
		defaultTopics := []model.TopicArea{
			{Name: "Číslo a proměnná", Code: "numbers", Icon: "🔢", OrderIndex: 1, IsActive: true},
			{Name: "Závislosti a vztahy", Code: "dependencies", Icon: "📊", OrderIndex: 2, IsActive: true},
			{Name: "Geometrie v rovině", Code: "geometry", Icon: "📐", OrderIndex: 3, IsActive: true},
			{Name: "Nestandardní úlohy", Code: "applications", Icon: "🧩", OrderIndex: 4, IsActive: true},
		}
		for _, t := range defaultTopics {
			db.Create(&t)
		}
	}

	return db, nil
}
