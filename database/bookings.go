package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Rk-Rk-Rk-Rk/Restor-bot/models"
)

// CreateBooking menyimpan reservasi baru berstatus active.
// Status meja sengaja tidak disentuh di sini: konflik slot dihitung per
// tanggal dari booking aktif, bukan dari flag free/busy meja.
func (s *Store) CreateBooking(userID int64, tableID uint, date, timeSlot string, people int, preOrderSum float64) (*models.Booking, error) {
	booking := models.Booking{
		UserID:      userID,
		TableID:     tableID,
		BookingDate: date,
		BookingTime: timeSlot,
		PeopleCount: people,
		PreOrderSum: preOrderSum,
		Status:      models.BookingActive,
	}
	if err := s.DB.Create(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// ActiveBooking mengembalikan booking aktif terbaru milik user (id desc)
// beserta nama mejanya, atau nil jika tidak ada.
func (s *Store) ActiveBooking(userID int64) (*models.BookingWithTable, error) {
	var row models.BookingWithTable
	err := s.DB.Model(&models.Booking{}).
		Select("bookings.*, tables.name AS table_name").
		Joins("JOIN tables ON bookings.table_id = tables.id").
		Where("bookings.user_id = ? AND bookings.status = ?", userID, models.BookingActive).
		Order("bookings.id DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// CancelBooking menandai booking aktif terbaru user sebagai cancelled.
// Mengembalikan false jika user tidak punya booking aktif.
func (s *Store) CancelBooking(userID int64) (bool, error) {
	booking, err := s.ActiveBooking(userID)
	if err != nil {
		return false, err
	}
	if booking == nil {
		return false, nil
	}
	err = s.DB.Model(&models.Booking{}).
		Where("id = ?", booking.ID).
		Update("status", models.BookingCancelled).Error
	return err == nil, err
}

// DeleteBooking hard delete untuk admin.
func (s *Store) DeleteBooking(id uint) error {
	return s.DB.Delete(&models.Booking{}, id).Error
}

// AllBookingsFull tampilan denormalisasi untuk staff/admin, terbaru dulu.
func (s *Store) AllBookingsFull() ([]models.BookingFull, error) {
	var rows []models.BookingFull
	err := s.DB.Model(&models.Booking{}).
		Select(`bookings.id, bookings.booking_date, bookings.booking_time,
			bookings.people_count, bookings.pre_order_sum, bookings.status,
			users.full_name AS user_name, users.phone_number, tables.name AS table_name`).
		Joins("LEFT JOIN users ON bookings.user_id = users.telegram_id").
		Joins("LEFT JOIN tables ON bookings.table_id = tables.id").
		Order("bookings.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// TakenSlots mengembalikan slot waktu yang sudah terisi (booking aktif)
// untuk satu meja; dengan tanggal kosong semua tanggal dihitung.
func (s *Store) TakenSlots(tableID uint, date string) ([]string, error) {
	query := s.DB.Model(&models.Booking{}).
		Where("table_id = ? AND status = ?", tableID, models.BookingActive)
	if date != "" {
		query = query.Where("booking_date = ?", date)
	}
	var slots []string
	err := query.Pluck("booking_time", &slots).Error
	return slots, err
}

// BookingHistory riwayat booking user, terbaru dulu.
func (s *Store) BookingHistory(userID int64, limit int) ([]models.BookingWithTable, error) {
	var rows []models.BookingWithTable
	err := s.DB.Model(&models.Booking{}).
		Select("bookings.*, tables.name AS table_name").
		Joins("JOIN tables ON bookings.table_id = tables.id").
		Where("bookings.user_id = ?", userID).
		Order("bookings.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
