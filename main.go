package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"github.com/Rk-Rk-Rk-Rk/Restor-bot/bot"
	"github.com/Rk-Rk-Rk-Rk/Restor-bot/config"
	"github.com/Rk-Rk-Rk-Rk/Restor-bot/database"
	"github.com/Rk-Rk-Rk-Rk/Restor-bot/router"
	"github.com/Rk-Rk-Rk-Rk/Restor-bot/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	utils.InitLogger()
	cfg := config.Load()
	if cfg.BotToken == "" {
		utils.ErrorLogger.Fatal("BOT_TOKEN is not set")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	store := database.NewStore(db)

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to authorize bot: %v", err)
	}
	utils.InfoLogger.Printf("Authorized as @%s", api.Self.UserName)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Ops API jalan di goroutine sendiri; bot long-polling di goroutine utama.
	go func() {
		r := router.SetupRouter(store)
		utils.InfoLogger.Printf("Ops API listening on port %s", cfg.OpsPort)
		if err := r.Run(":" + cfg.OpsPort); err != nil {
			utils.ErrorLogger.Fatalf("Ops API stopped: %v", err)
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	b := bot.New(api, store, cfg, api.Self.UserName)
	utils.InfoLogger.Printf("%s bot started", cfg.RestaurantName)
	b.Run(api.GetUpdatesChan(u))
}
