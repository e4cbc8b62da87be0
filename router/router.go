package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Rk-Rk-Rk-Rk/Restor-bot/controllers"
	"github.com/Rk-Rk-Rk-Rk/Restor-bot/database"
)

// SetupRouter memasang endpoint ops read-only.
func SetupRouter(store *database.Store) *gin.Engine {
	r := gin.Default()

	ops := controllers.NewOpsController(store)

	r.GET("/healthz", ops.Health)

	api := r.Group("/api")
	{
		api.GET("/stats", ops.GetStats)
		api.GET("/bookings/active", ops.GetActiveBookings)
	}

	return r
}
