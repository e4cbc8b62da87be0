package config

import (
	"os"
	"strconv"
	"strings"
)

// Config menampung seluruh konstanta runtime bot.
// Semuanya dibaca sekali dari environment dan hanya dibaca (read-only).
type Config struct {
	BotToken       string
	AdminIDs       []int64
	RestaurantName string

	ItemsPerPage      int
	WorkingHoursStart int
	WorkingHoursEnd   int
	MaxBookingDays    int
	// Jumlah tamu di atas angka ini otomatis membuat shared order saat booking.
	SharedOrderThreshold int

	DBDriver string
	DBDSN    string
	OpsPort  string
}

// Load membaca konfigurasi dari environment dengan default yang aman.
func Load() *Config {
	cfg := &Config{
		BotToken:             os.Getenv("BOT_TOKEN"),
		RestaurantName:       getEnv("RESTAURANT_NAME", "RE-STOR"),
		ItemsPerPage:         getEnvInt("ITEMS_PER_PAGE", 5),
		WorkingHoursStart:    getEnvInt("WORKING_HOURS_START", 8),
		WorkingHoursEnd:      getEnvInt("WORKING_HOURS_END", 22),
		MaxBookingDays:       getEnvInt("MAX_BOOKING_DAYS", 7),
		SharedOrderThreshold: getEnvInt("SHARED_ORDER_THRESHOLD", 4),
		DBDriver:             getEnv("DB_DRIVER", "sqlite"),
		DBDSN:                getEnv("DB_DSN", "restaurant.db"),
		OpsPort:              getEnv("OPS_PORT", "8080"),
	}

	for _, part := range strings.Split(os.Getenv("ADMIN_IDS"), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, err := strconv.ParseInt(part, 10, 64); err == nil {
			cfg.AdminIDs = append(cfg.AdminIDs, id)
		}
	}

	return cfg
}

// IsAdmin cek keanggotaan allowlist admin.
// Admin tidak pernah disimpan di database, hanya lewat allowlist.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
