package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oldPeter616/xiuxianzhuan-go/internal/combat"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/item"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/leaderboard"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/platform/config"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/player"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/sect"
)

// adminKeyMiddleware 校验后台访问密钥，密钥通过X-Admin-Key请求头携带
func adminKeyMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-Admin-Key") != cfg.Server.AdminKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "无效的访问密钥"})
			return
		}
		c.Next()
	}
}

// SetupRoutes 注册后台管理的只读API路由
func SetupRoutes(router *gin.Engine, cfg *config.Config) {
	api := router.Group("/api")
	api.Use(adminKeyMiddleware(cfg))
	{
		api.GET("/players", player.ListPlayersHandler)
		api.GET("/players/:id", player.GetPlayerHandler)
		api.GET("/sects", sect.ListSectsHandler)
		api.GET("/sects/:id", sect.GetSectHandler)
		api.GET("/items", item.ListItemsHandler)
		api.GET("/logs", combat.ListLogsHandler)
		api.GET("/ranking", leaderboard.GetRankingHandler)
	}
}
