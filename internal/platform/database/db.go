package database

import (
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oldPeter616/xiuxianzhuan-go/internal/platform/config"
	"github.com/oldPeter616/xiuxianzhuan-go/pkg/log"
)

// DB 是一个全局的GORM数据库实例，供项目其他部分使用
var DB *gorm.DB

// InitDB 初始化与SQLite数据库的连接
func InitDB(cfg config.SqliteConfig) {
	var err error

	// 连接到SQLite数据库
	// 游戏内的数据一致性由各模块的短事务保证，GORM自身的SQL日志保持静默
	DB, err = gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("无法连接到SQLite: " + err.Error())
	}

	// 启用外键约束，和宗门、玩家之间的引用保持一致
	DB.Exec("PRAGMA foreign_keys = ON")

	log.L.Info("SQLite 连接成功", zap.String("path", cfg.Path))
}
