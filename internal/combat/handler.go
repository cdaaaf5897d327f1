package combat

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultLogLimit = 50

// LogResponse 是后台接口返回的战斗日志视图
type LogResponse struct {
	LogID         string   `json:"logId"`
	AttackerID    string   `json:"attackerId"`
	DefenderID    string   `json:"defenderId"`
	Result        string   `json:"result"`
	Damage        int      `json:"damage"`
	CurrencyDelta int      `json:"currencyDelta"`
	Timestamp     string   `json:"timestamp"`
	Drops         []string `json:"drops"`
}

// ListLogsHandler 返回最近的战斗日志，支持?limit=与?user=过滤
func ListLogsHandler(c *gin.Context) {
	limit := defaultLogLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit参数无效"})
			return
		}
		limit = parsed
	}

	var logs []CombatLog
	var err error
	if user := c.Query("user"); user != "" {
		logs, err = RecentLogs(user, limit)
	} else {
		logs, err = ListLogs(limit)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询战斗日志失败"})
		return
	}

	responses := make([]LogResponse, 0, len(logs))
	for i := range logs {
		l := &logs[i]
		drops := l.Drops()
		if drops == nil {
			drops = []string{}
		}
		responses = append(responses, LogResponse{
			LogID:         l.LogID,
			AttackerID:    l.AttackerID,
			DefenderID:    l.DefenderID,
			Result:        l.Result,
			Damage:        l.Damage,
			CurrencyDelta: l.CurrencyDelta,
			Timestamp:     l.Timestamp,
			Drops:         drops,
		})
	}
	c.JSON(http.StatusOK, responses)
}
