package leaderboard

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/oldPeter616/xiuxianzhuan-go/internal/player"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/platform/database"
	"github.com/oldPeter616/xiuxianzhuan-go/pkg/log"
)

// rankingKey 是修为排行榜的Redis ZSet键
const rankingKey = "ranking:cultivation"

// 境界为主、灵气为辅的复合分数。灵气截断在1e6以内，保证境界始终占主导。
const spiritCap = 1e6 - 1

func score(rankIndex, spirit int) float64 {
	s := float64(spirit)
	if s > spiritCap {
		s = spiritCap
	}
	return float64(rankIndex)*1e6 + s
}

// Warmup 从SQLite全量重建排行榜，启动时调用一次
func Warmup() error {
	players, err := player.List()
	if err != nil {
		return err
	}

	pipe := database.RDB.TxPipeline()
	pipe.Del(database.Ctx, rankingKey)
	for i := range players {
		p := &players[i]
		pipe.ZAdd(database.Ctx, rankingKey, redis.Z{
			Score:  score(p.RankIndex, p.Spirit),
			Member: p.UserID,
		})
	}
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("预热排行榜失败: %w", err)
	}
	log.L.Info("排行榜预热完成", zap.Int("players", len(players)))
	return nil
}

// Update 写入单个玩家的最新分数。
// 排行榜是可重建的缓存，失败只记日志，不打断游戏流程。
func Update(p *player.Player) {
	err := database.RDB.ZAdd(database.Ctx, rankingKey, redis.Z{
		Score:  score(p.RankIndex, p.Spirit),
		Member: p.UserID,
	}).Err()
	if err != nil {
		log.L.Warn("更新排行榜失败",
			zap.String("user_id", p.UserID),
			zap.Error(err))
	}
}

// Remove 把玩家从排行榜上摘掉
func Remove(userID string) {
	if err := database.RDB.ZRem(database.Ctx, rankingKey, userID).Err(); err != nil {
		log.L.Warn("移除排行榜成员失败",
			zap.String("user_id", userID),
			zap.Error(err))
	}
}

// Entry 是排行榜上的一行
type Entry struct {
	UserID    string `json:"user_id"`
	RankIndex int    `json:"rank_index"`
	Spirit    int    `json:"spirit"`
}

// Top 返回排行榜前n名，按分数从高到低
func Top(n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}
	members, err := database.RDB.ZRevRangeWithScores(database.Ctx, rankingKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("查询排行榜失败: %w", err)
	}

	entries := make([]Entry, 0, len(members))
	for _, m := range members {
		userID, ok := m.Member.(string)
		if !ok {
			continue
		}
		rankIndex := int(m.Score) / 1000000
		spirit := int(m.Score) % 1000000
		entries = append(entries, Entry{UserID: userID, RankIndex: rankIndex, Spirit: spirit})
	}
	return entries, nil
}
