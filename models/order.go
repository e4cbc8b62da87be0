package models

import "time"

const (
	OrderOpen   = "open"
	OrderClosed = "closed"
)

// Order adalah shared order: keranjang bersama yang dibuka satu inisiator
// dan hanya bisa ditutup oleh inisiator itu. LinkToken adalah satu-satunya
// mekanisme discovery untuk bergabung.
type Order struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	LinkToken   string    `gorm:"type:varchar(8);uniqueIndex;not null" json:"link_token"`
	InitiatorID int64     `gorm:"index;not null" json:"initiator_id"`
	BookingID   *uint     `gorm:"index" json:"booking_id,omitempty"`
	Status      string    `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

type OrderParticipant struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	OrderID  uint      `gorm:"uniqueIndex:idx_order_user;not null" json:"order_id"`
	UserID   int64     `gorm:"uniqueIndex:idx_order_user;not null" json:"user_id"`
	JoinedAt time.Time `gorm:"not null" json:"joined_at"`
}

// CartItem: setiap penambahan membuat baris baru (Quantity selalu 1).
type CartItem struct {
	ID       uint  `gorm:"primaryKey" json:"id"`
	OrderID  uint  `gorm:"index;not null" json:"order_id"`
	UserID   int64 `gorm:"not null" json:"user_id"`
	ItemID   uint  `gorm:"not null" json:"item_id"`
	Quantity int   `gorm:"not null;default:1" json:"quantity"`
}

// CartRow adalah isi keranjang yang sudah di-join dengan menu dan pemesan.
type CartRow struct {
	CartID   uint    `json:"cart_id"`
	OrderID  uint    `json:"order_id"`
	UserID   int64   `json:"user_id"`
	ItemID   uint    `json:"item_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	FullName string  `json:"full_name"`
}

// Participant adalah peserta order beserta profilnya.
type Participant struct {
	OrderID  uint      `json:"order_id"`
	UserID   int64     `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
	FullName string    `json:"full_name"`
	Username string    `json:"username"`
}
