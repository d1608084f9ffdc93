package repository

import (
	"errors"

	"github.com/ttodoshi/weweather-dashboard/internal/core/domain"
	"github.com/ttodoshi/weweather-dashboard/internal/core/ports"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Открытие базы SQLite и миграция таблицы страниц
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err = db.AutoMigrate(&domain.Page{}); err != nil {
		return nil, err
	}
	return db, nil
}

type pageRepository struct {
	db *gorm.DB
}

func NewPageRepository(db *gorm.DB) ports.PageRepository {
	return &pageRepository{db: db}
}

// Страница чата или nil, если её ещё нет
func (r *pageRepository) FindByChat(chatID int64) (*domain.Page, error) {
	var page domain.Page
	err := r.db.Where("chat_id = ?", chatID).First(&page).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *pageRepository) Save(page *domain.Page) error {
	if page.UUID == "" {
		return r.db.Create(page).Error
	}
	return r.db.Save(page).Error
}

func (r *pageRepository) DeleteByChat(chatID int64) error {
	return r.db.Delete(&domain.Page{}, "chat_id = ?", chatID).Error
}
