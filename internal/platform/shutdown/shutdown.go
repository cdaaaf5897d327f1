package shutdown

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/oldPeter616/xiuxianzhuan-go/internal/platform/database"
	"github.com/oldPeter616/xiuxianzhuan-go/pkg/log"
)

const httpTimeout = 15 * time.Second

// ListenForSignalsAndShutdown 阻塞等待停机信号，然后按顺序收尾：
// 先关HTTP服务器让在途请求跑完，再断开Redis与SQLite连接。
func ListenForSignalsAndShutdown(server *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.L.Info("收到关闭信号，开始优雅停机...")

	ctx, cancel := context.WithTimeout(context.Background(), httpTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.L.Error("HTTP服务器关闭错误", zap.Error(err))
	}

	if err := database.RDB.Close(); err != nil {
		log.L.Error("关闭Redis连接失败", zap.Error(err))
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.L.Error("关闭SQLite连接失败", zap.Error(err))
		}
	}

	log.L.Info("优雅停机完成")
}
