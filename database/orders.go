package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Rk-Rk-Rk-Rk/Restor-bot/models"
)

// CreateOrder membuat shared order baru dan langsung mendaftarkan inisiator
// sebagai peserta dalam satu transaksi. Token undangan: 8 karakter pertama
// UUID; tabrakan tidak dicek, mengandalkan keunikan generator.
func (s *Store) CreateOrder(initiatorID int64, bookingID *uint) (*models.Order, error) {
	order := models.Order{
		LinkToken:   uuid.NewString()[:8],
		InitiatorID: initiatorID,
		BookingID:   bookingID,
		Status:      models.OrderOpen,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		participant := models.OrderParticipant{
			OrderID:  order.ID,
			UserID:   initiatorID,
			JoinedAt: time.Now(),
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&participant).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Store) OrderByToken(token string) (*models.Order, error) {
	var order models.Order
	err := s.DB.First(&order, "link_token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Store) OrderByID(id uint) (*models.Order, error) {
	var order models.Order
	err := s.DB.First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// OpenOrderByBooking mencari order open yang terhubung ke satu booking.
func (s *Store) OpenOrderByBooking(bookingID uint) (*models.Order, error) {
	var order models.Order
	err := s.DB.First(&order, "booking_id = ? AND status = ?", bookingID, models.OrderOpen).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// OpenOrderByInitiator mencari order open terbaru yang diinisiasi user.
func (s *Store) OpenOrderByInitiator(userID int64) (*models.Order, error) {
	var order models.Order
	err := s.DB.Where("initiator_id = ? AND status = ?", userID, models.OrderOpen).
		Order("id DESC").First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// JoinOrder mendaftarkan peserta; idempoten lewat unique (order_id, user_id).
func (s *Store) JoinOrder(orderID uint, userID int64) error {
	participant := models.OrderParticipant{
		OrderID:  orderID,
		UserID:   userID,
		JoinedAt: time.Now(),
	}
	return s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&participant).Error
}

// Participants mengembalikan peserta order beserta profilnya.
func (s *Store) Participants(orderID uint) ([]models.Participant, error) {
	var rows []models.Participant
	err := s.DB.Model(&models.OrderParticipant{}).
		Select(`order_participants.order_id, order_participants.user_id,
			order_participants.joined_at, users.full_name, users.username`).
		Joins("JOIN users ON order_participants.user_id = users.telegram_id").
		Where("order_participants.order_id = ?", orderID).
		Scan(&rows).Error
	return rows, err
}

func (s *Store) AddCartItem(orderID uint, userID int64, itemID uint) error {
	return s.DB.Create(&models.CartItem{
		OrderID:  orderID,
		UserID:   userID,
		ItemID:   itemID,
		Quantity: 1,
	}).Error
}

func (s *Store) RemoveCartItem(cartItemID uint) error {
	return s.DB.Delete(&models.CartItem{}, cartItemID).Error
}

// CartItems isi keranjang ter-join dengan nama/harga menu dan nama pemesan.
func (s *Store) CartItems(orderID uint) ([]models.CartRow, error) {
	var rows []models.CartRow
	err := s.DB.Model(&models.CartItem{}).
		Select(`cart_items.id AS cart_id, cart_items.order_id, cart_items.user_id,
			cart_items.item_id, menu_items.name, menu_items.price, users.full_name`).
		Joins("JOIN menu_items ON cart_items.item_id = menu_items.id").
		Joins("LEFT JOIN users ON cart_items.user_id = users.telegram_id").
		Where("cart_items.order_id = ?", orderID).
		Scan(&rows).Error
	return rows, err
}

// OrderTotal jumlah harga seluruh baris keranjang saat ini.
func (s *Store) OrderTotal(orderID uint) (float64, error) {
	rows, err := s.CartItems(orderID)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, row := range rows {
		total += row.Price
	}
	return total, nil
}

// CloseOrder menutup order; satu arah, tidak pernah dibuka kembali.
func (s *Store) CloseOrder(orderID uint) error {
	return s.DB.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", models.OrderClosed).Error
}
