package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/oldPeter616/xiuxianzhuan-go/api"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/gamedata"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/platform/config"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/platform/database"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/platform/shutdown"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/platform/startup"
	"github.com/oldPeter616/xiuxianzhuan-go/pkg/log"
)

func main() {
	// .env仅用于本地开发，不存在时忽略
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.L.Fatal("加载配置失败", zap.Error(err))
	}

	database.InitDB(cfg.Database.Sqlite)
	database.InitRedis(cfg.Database.Redis)

	ref, err := gamedata.Load(cfg.Game.DataDir)
	if err != nil {
		log.L.Fatal("加载游戏数据失败", zap.Error(err))
	}

	if err := startup.InitializeApplication(ref); err != nil {
		log.L.Fatal("应用初始化失败，无法启动", zap.Error(err))
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Admin-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r, cfg)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}
	go func() {
		log.L.Info("服务器已准备就绪", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.L.Fatal("服务器启动失败", zap.Error(err))
		}
	}()

	shutdown.ListenForSignalsAndShutdown(server)
}
