package combat

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/oldPeter616/xiuxianzhuan-go/internal/platform/database"
	"github.com/oldPeter616/xiuxianzhuan-go/pkg/snowflake"
)

// CombatLog 是一条只追加的战斗记录，写入后不再修改。
// 失败场次的currency_delta为负数。
type CombatLog struct {
	LogID         string `gorm:"column:log_id;primaryKey" json:"log_id"`
	AttackerID    string `gorm:"column:attacker_id" json:"attacker_id"`
	DefenderID    string `gorm:"column:defender_id" json:"defender_id"`
	Result        string `gorm:"column:result" json:"result"`
	Damage        int    `gorm:"column:damage" json:"damage"`
	CurrencyDelta int    `gorm:"column:currency_delta" json:"currency_delta"`
	Timestamp     string `gorm:"column:timestamp" json:"timestamp"`
	DropItems     string `gorm:"column:drop_items" json:"-"`
}

// TableName 指定表名
func (CombatLog) TableName() string {
	return "combat_logs"
}

// Drops 反序列化掉落物品ID列表
func (c *CombatLog) Drops() []string {
	var ids []string
	if c.DropItems != "" {
		_ = json.Unmarshal([]byte(c.DropItems), &ids)
	}
	return ids
}

const timeLayout = "2006-01-02 15:04:05"

// AppendLog 落一条战斗日志
func AppendLog(attackerID, defenderID, result string, damage, currencyDelta int, drops []string, now time.Time) error {
	if drops == nil {
		drops = []string{}
	}
	payload, err := json.Marshal(drops)
	if err != nil {
		return fmt.Errorf("编码掉落列表失败: %w", err)
	}
	entry := CombatLog{
		LogID:         fmt.Sprintf("combat_%d", snowflake.GenLogID()),
		AttackerID:    attackerID,
		DefenderID:    defenderID,
		Result:        result,
		Damage:        damage,
		CurrencyDelta: currencyDelta,
		Timestamp:     now.Format(timeLayout),
		DropItems:     string(payload),
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		return fmt.Errorf("写入战斗日志失败: %w", err)
	}
	return nil
}

// RecentLogs 按时间倒序返回某玩家最近的战斗日志
func RecentLogs(userID string, limit int) ([]CombatLog, error) {
	var logs []CombatLog
	err := database.DB.
		Where("attacker_id = ? OR defender_id = ?", userID, userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("查询战斗日志失败: %w", err)
	}
	return logs, nil
}

// ListLogs 按时间倒序返回全服最近的战斗日志
func ListLogs(limit int) ([]CombatLog, error) {
	var logs []CombatLog
	err := database.DB.Order("timestamp DESC").Limit(limit).Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("查询战斗日志失败: %w", err)
	}
	return logs, nil
}
