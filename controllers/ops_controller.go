package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rk-Rk-Rk-Rk/Restor-bot/database"
	"github.com/Rk-Rk-Rk-Rk/Restor-bot/models"
	"github.com/Rk-Rk-Rk-Rk/Restor-bot/utils"
)

// OpsController melayani endpoint read-only untuk monitoring/dashboard.
// Semua jalur tulis tetap lewat Telegram.
type OpsController struct {
	Store *database.Store
}

func NewOpsController(store *database.Store) *OpsController {
	return &OpsController{Store: store}
}

func (oc *OpsController) Health(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "ok", nil)
}

// GetStats -> agregat hitungan untuk dashboard.
func (oc *OpsController) GetStats(c *gin.Context) {
	stats, err := oc.Store.GetStats()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Stats", stats)
}

// GetActiveBookings -> daftar booking aktif ter-denormalisasi.
func (oc *OpsController) GetActiveBookings(c *gin.Context) {
	bookings, err := oc.Store.AllBookingsFull()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	active := make([]models.BookingFull, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == models.BookingActive {
			active = append(active, b)
		}
	}
	utils.RespondJSON(c, http.StatusOK, "Active bookings", active)
}
