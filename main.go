package main

import (
	"log"
	"time"

	"gallery-backend/config"
	"gallery-backend/database"
	"gallery-backend/internal/api/recommendations"
	routes "gallery-backend/internal/app/http"
	"gallery-backend/internal/domain/recommend"
	"gallery-backend/internal/infra/history"
	"gallery-backend/internal/platform/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadEnv()
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	appLog, err := logger.New(config.APP_ENV)
	if err != nil {
		log.Fatal("❌ logger: ", err)
	}
	defer appLog.Sync()

	database.InitDB()

	engine := recommend.NewEngine(
		historyProvider(appLog),
		recommend.WithHistoryTimeout(config.HISTORY_TIMEOUT),
		recommend.WithLogger(appLog.With("component", "recommend")),
	)

	r := gin.Default()

	// ✅ Add CORS middleware BEFORE registering routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, recommendations.NewHandler(engine, config.RECOMMENDATION_LIMIT))

	appLog.Info("🚀 server starting", "port", config.PORT, "history_source", config.HISTORY_SOURCE)
	if err := r.Run(":" + config.PORT); err != nil {
		appLog.Fatal("server stopped", "error", err)
	}
}

func historyProvider(appLog *logger.Logger) recommend.HistoryProvider {
	if config.HISTORY_SOURCE == config.HistorySourceRemote {
		return history.NewClient(history.ClientConfig{
			BaseURL: config.HISTORY_BASE_URL,
			Timeout: config.HISTORY_TIMEOUT,
			Logger:  appLog.With("component", "history"),
		})
	}
	return history.NewStore(database.DB)
}
