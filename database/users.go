package database

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Rk-Rk-Rk-Rk/Restor-bot/models"
)

// RegisterUser menyimpan profil baru. Insert-if-absent: registrasi ulang
// untuk id yang sama diabaikan diam-diam, nama lama dipertahankan.
func (s *Store) RegisterUser(telegramID int64, username, fullName, phone string) error {
	user := models.User{
		TelegramID:  telegramID,
		Username:    username,
		FullName:    fullName,
		PhoneNumber: phone,
		Role:        models.RoleUser,
	}
	return s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error
}

// GetUser mengembalikan nil tanpa error jika user belum terdaftar.
func (s *Store) GetUser(telegramID int64) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "telegram_id = ?", telegramID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) AllUsers() ([]models.User, error) {
	var users []models.User
	err := s.DB.Find(&users).Error
	return users, err
}

func (s *Store) UpdateUserPhone(telegramID int64, phone string) error {
	return s.DB.Model(&models.User{}).
		Where("telegram_id = ?", telegramID).
		Update("phone_number", phone).Error
}

func (s *Store) SetUserRole(telegramID int64, role string) error {
	return s.DB.Model(&models.User{}).
		Where("telegram_id = ?", telegramID).
		Update("role", role).Error
}

// DeleteUser menghapus user beserta seluruh booking miliknya.
func (s *Store) DeleteUser(telegramID int64) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", telegramID).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		return tx.Where("telegram_id = ?", telegramID).Delete(&models.User{}).Error
	})
}
