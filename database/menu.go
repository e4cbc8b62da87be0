package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Rk-Rk-Rk-Rk/Restor-bot/models"
)

func (s *Store) AddMenuItem(name string, price float64, description, category string) (*models.MenuItem, error) {
	if category == "" {
		category = "main"
	}
	item := models.MenuItem{
		Name:        name,
		Price:       price,
		Description: description,
		Category:    category,
	}
	if err := s.DB.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) DeleteMenuItem(id uint) error {
	return s.DB.Delete(&models.MenuItem{}, id).Error
}

// GetMenuItem mengembalikan nil tanpa error jika item tidak ada
// (tombol basi menunjuk item yang sudah dihapus bukan kondisi fatal).
func (s *Store) GetMenuItem(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.DB.First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// MenuPage mengembalikan satu halaman menu (1-based) plus penanda hasMore.
// hasMore true jika dan hanya jika offset+perPage < total.
func (s *Store) MenuPage(page, perPage int) ([]models.MenuItem, bool, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * perPage

	var items []models.MenuItem
	if err := s.DB.Limit(perPage).Offset(offset).Find(&items).Error; err != nil {
		return nil, false, err
	}

	var total int64
	if err := s.DB.Model(&models.MenuItem{}).Count(&total).Error; err != nil {
		return nil, false, err
	}
	return items, int64(offset+perPage) < total, nil
}

func (s *Store) AllMenuItems() ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := s.DB.Order("category, name").Find(&items).Error
	return items, err
}
