package database

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/oldPeter616/xiuxianzhuan-go/internal/platform/config"
	"github.com/oldPeter616/xiuxianzhuan-go/pkg/log"
)

// RDB 是一个全局的Redis客户端实例，供项目其他部分使用
var RDB *redis.Client

// Ctx 是一个全局的上下文，用于Redis操作
var Ctx = context.Background()

// InitRedis 初始化与Redis数据库的连接
func InitRedis(cfg config.RedisConfig) {
	// 创建一个新的Redis客户端
	// 使用从配置文件加载的参数
	RDB = redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 使用Ping命令来测试连接是否成功
	if _, err := RDB.Ping(Ctx).Result(); err != nil {
		// Redis只承载排行榜缓存，连接失败直接终止启动
		panic("无法连接到Redis: " + err.Error())
	}

	log.L.Info("Redis 连接成功", zap.String("addr", cfg.Address))
}
