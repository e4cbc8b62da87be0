package database

import "github.com/Rk-Rk-Rk-Rk/Restor-bot/models"

// Stats adalah agregat hitungan sederhana untuk panel admin dan ops API.
type Stats struct {
	Users          int64   `json:"users"`
	Tables         int64   `json:"tables"`
	MenuItems      int64   `json:"menu_items"`
	ActiveBookings int64   `json:"active_bookings"`
	TotalBookings  int64   `json:"total_bookings"`
	PreOrderSum    float64 `json:"pre_order_sum"`
	OpenOrders     int64   `json:"open_orders"`
	ClosedOrders   int64   `json:"closed_orders"`
}

func (s *Store) GetStats() (*Stats, error) {
	var stats Stats

	if err := s.DB.Model(&models.User{}).Count(&stats.Users).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Table{}).Count(&stats.Tables).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.MenuItem{}).Count(&stats.MenuItems).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Booking{}).
		Where("status = ?", models.BookingActive).Count(&stats.ActiveBookings).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Booking{}).Count(&stats.TotalBookings).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Order{}).
		Where("status = ?", models.OrderOpen).Count(&stats.OpenOrders).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Order{}).
		Where("status = ?", models.OrderClosed).Count(&stats.ClosedOrders).Error; err != nil {
		return nil, err
	}

	err := s.DB.Model(&models.Booking{}).
		Where("status = ?", models.BookingActive).
		Select("COALESCE(SUM(pre_order_sum), 0)").
		Scan(&stats.PreOrderSum).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
