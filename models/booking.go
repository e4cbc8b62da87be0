package models

import "time"

const (
	BookingActive    = "active"
	BookingCancelled = "cancelled"
)

// Booking adalah reservasi satu meja pada tanggal + slot jam tertentu.
// BookingTime memakai format slot "H:00 - H+1:00".
type Booking struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      int64     `gorm:"index;not null" json:"user_id"`
	TableID     uint      `gorm:"index;not null" json:"table_id"`
	BookingDate string    `gorm:"type:varchar(10);not null" json:"booking_date"`
	BookingTime string    `gorm:"type:varchar(20);not null" json:"booking_time"`
	PeopleCount int       `gorm:"not null" json:"people_count"`
	PreOrderSum float64   `gorm:"type:decimal(10,2);not null;default:0" json:"pre_order_sum"`
	Status      string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

// BookingFull adalah baris denormalisasi untuk tampilan staff/admin.
type BookingFull struct {
	ID          uint    `json:"id"`
	BookingDate string  `json:"booking_date"`
	BookingTime string  `json:"booking_time"`
	PeopleCount int     `json:"people_count"`
	PreOrderSum float64 `json:"pre_order_sum"`
	Status      string  `json:"status"`
	UserName    string  `json:"user_name"`
	PhoneNumber string  `json:"phone_number"`
	TableName   string  `json:"table_name"`
}

// BookingWithTable adalah booking milik user beserta nama mejanya.
type BookingWithTable struct {
	Booking
	TableName string `json:"table_name"`
}
