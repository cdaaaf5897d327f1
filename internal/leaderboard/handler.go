package leaderboard

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultTopN = 10

// GetRankingHandler 返回修为排行榜前N名，支持?n=覆盖
func GetRankingHandler(c *gin.Context) {
	n := defaultTopN
	if raw := c.Query("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "n参数无效"})
			return
		}
		n = parsed
	}
	entries, err := Top(n)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询排行榜失败"})
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	c.JSON(http.StatusOK, entries)
}
