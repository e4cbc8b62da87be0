package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_IDS", "")

	cfg := Load()
	assert.Equal(t, "123:abc", cfg.BotToken)
	assert.Equal(t, "RE-STOR", cfg.RestaurantName)
	assert.Equal(t, 5, cfg.ItemsPerPage)
	assert.Equal(t, 8, cfg.WorkingHoursStart)
	assert.Equal(t, 22, cfg.WorkingHoursEnd)
	assert.Equal(t, 7, cfg.MaxBookingDays)
	assert.Equal(t, 4, cfg.SharedOrderThreshold)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Empty(t, cfg.AdminIDs)
}

func TestLoadAdminIDs(t *testing.T) {
	t.Setenv("ADMIN_IDS", "42, 99,not-a-number, ,7")

	cfg := Load()
	assert.Equal(t, []int64{42, 99, 7}, cfg.AdminIDs)
	assert.True(t, cfg.IsAdmin(42))
	assert.True(t, cfg.IsAdmin(7))
	assert.False(t, cfg.IsAdmin(100))
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ITEMS_PER_PAGE", "10")
	t.Setenv("SHARED_ORDER_THRESHOLD", "6")
	t.Setenv("RESTAURANT_NAME", "Моя кафешка")

	cfg := Load()
	assert.Equal(t, 10, cfg.ItemsPerPage)
	assert.Equal(t, 6, cfg.SharedOrderThreshold)
	assert.Equal(t, "Моя кафешка", cfg.RestaurantName)
}
