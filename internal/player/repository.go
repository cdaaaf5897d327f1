package player

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/oldPeter616/xiuxianzhuan-go/internal/platform/database"
)

// ErrPlayerExists 表示创建玩家时user_id已被占用
var ErrPlayerExists = errors.New("玩家已存在")

// GetByID 根据用户ID获取玩家，不存在时返回 (nil, nil)
func GetByID(userID string) (*Player, error) {
	var p Player
	err := database.DB.Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询玩家失败: %w", err)
	}
	return &p, nil
}

// Create 创建新玩家，主键冲突返回ErrPlayerExists
func Create(p *Player) error {
	p.ClampHP()
	err := database.DB.Create(p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrPlayerExists
		}
		return fmt.Errorf("创建玩家失败: %w", err)
	}
	return nil
}

// Update 以整行替换语义更新玩家，调用方提供完整的目标状态
func Update(p *Player) error {
	p.ClampHP()
	err := database.DB.Save(p).Error
	if err != nil {
		return fmt.Errorf("更新玩家失败: %w", err)
	}
	return nil
}

// List 获取所有玩家
func List() ([]Player, error) {
	var players []Player
	if err := database.DB.Find(&players).Error; err != nil {
		return nil, fmt.Errorf("查询玩家列表失败: %w", err)
	}
	return players, nil
}

// ListBySect 获取指定宗门的全部成员
func ListBySect(sectID string) ([]Player, error) {
	var players []Player
	err := database.DB.Where("sect_id = ?", sectID).Find(&players).Error
	if err != nil {
		return nil, fmt.Errorf("查询宗门成员失败: %w", err)
	}
	return players, nil
}

// ListOpponents 获取竞技场候选对手：排除自己，境界不高于maxRank
func ListOpponents(userID string, maxRank int) ([]Player, error) {
	var players []Player
	err := database.DB.
		Where("user_id <> ? AND rank_index <= ?", userID, maxRank).
		Find(&players).Error
	if err != nil {
		return nil, fmt.Errorf("查询竞技场对手失败: %w", err)
	}
	return players, nil
}

// CountBySect 统计宗门成员数量
func CountBySect(sectID string) (int64, error) {
	var count int64
	err := database.DB.Model(&Player{}).Where("sect_id = ?", sectID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计宗门成员失败: %w", err)
	}
	return count, nil
}
