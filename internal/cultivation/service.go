package cultivation

import (
	"errors"
	"math/rand"
	"strings"

	"go.uber.org/zap"

	"github.com/oldPeter616/xiuxianzhuan-go/internal/gamedata"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/inventory"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/item"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/leaderboard"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/player"
	"github.com/oldPeter616/xiuxianzhuan-go/pkg/log"
)

var (
	// ErrTechniqueUnknown 功法不存在
	ErrTechniqueUnknown = errors.New("功法不存在")
	// ErrTechniqueLearned 已修习该功法
	ErrTechniqueLearned = errors.New("已修习该功法")
	// ErrTechniqueLimit 修习的功法数量已达上限
	ErrTechniqueLimit = errors.New("功法数量已达上限")
	// ErrBookMissing 背包中没有对应的功法秘籍
	ErrBookMissing = errors.New("背包中没有该功法秘籍")
)

// 各大境界的闭关灵气倍率
var stageMultipliers = []struct {
	stage      string
	multiplier float64
}{
	{"练气", 1.0},
	{"筑基", 1.2},
	{"金丹", 1.5},
	{"元婴", 1.8},
	{"化神", 2.2},
	{"炼虚", 2.5},
	{"合体", 2.8},
	{"大乘", 3.0},
}

func stageMultiplier(rankName string) float64 {
	for _, m := range stageMultipliers {
		if strings.Contains(rankName, m.stage) {
			return m.multiplier
		}
	}
	return 1.0
}

// MeditateResult 描述一次闭关修炼的收益
type MeditateResult struct {
	SpiritGained    int
	TechniqueBonus  float64
	EquipmentBonus  float64
	SpiritRootBonus float64
}

// Meditate 闭关修炼获取灵气。
// 基础收益随境界倍率成长，功法、装备灵力与灵根再依次提供百分比加成。
func Meditate(p *player.Player, ref *gamedata.Bundle, rng *rand.Rand) (*MeditateResult, error) {
	base := rng.Intn(21) + 10

	multiplier := stageMultiplier(ref.RankName(p.RankIndex))

	techniques, err := item.GetTechniquesByIDs(p.Techniques())
	if err != nil {
		return nil, err
	}
	techniqueBonus := 0.0
	for i := range techniques {
		techniqueBonus += techniques[i].CultivationSpeedBonus
	}

	var equipIDs []string
	for _, id := range p.Equipment() {
		if id != "" {
			equipIDs = append(equipIDs, id)
		}
	}
	equipped, err := item.ListEquipmentsByIDs(equipIDs)
	if err != nil {
		return nil, err
	}
	// 装备每10点灵力折算1%灵气收益
	equipmentBonus := 0.0
	for i := range equipped {
		equipmentBonus += float64(equipped[i].SpiritValue()) * 0.001
	}

	rootBonus := 0.0
	for _, root := range ref.SpiritRoots {
		if root.Name == p.SpiritRoot {
			rootBonus = root.Bonus
			break
		}
	}

	gained := int(float64(base) * multiplier * (1 + techniqueBonus + equipmentBonus) * (1 + rootBonus))
	p.Spirit += gained
	if err := player.Update(p); err != nil {
		return nil, err
	}
	leaderboard.Update(p)
	return &MeditateResult{
		SpiritGained:    gained,
		TechniqueBonus:  techniqueBonus,
		EquipmentBonus:  equipmentBonus,
		SpiritRootBonus: rootBonus,
	}, nil
}

// Breakthrough 尝试突破并持久化结果。
// 未发生状态变化的结果（灵气不足、已达最高境界）不会写库。
func Breakthrough(p *player.Player, ref *gamedata.Bundle, rng *rand.Rand) (*BreakthroughResult, error) {
	result := AttemptBreakthrough(p, ref, rng)
	switch result.Outcome {
	case OutcomeInsufficientSpirit, OutcomeAtMaxRank:
		return result, nil
	}
	if err := player.Update(p); err != nil {
		return nil, err
	}
	leaderboard.Update(p)
	if result.Outcome == OutcomeSuccess {
		log.L.Info("突破成功",
			zap.String("user_id", p.UserID),
			zap.Int("rank_index", p.RankIndex),
			zap.String("rank", ref.RankName(p.RankIndex)))
	}
	return result, nil
}

// LearnTechnique 消耗一本功法秘籍并修习对应功法
func LearnTechnique(p *player.Player, ref *gamedata.Bundle, techniqueID string) (*item.Technique, error) {
	tech, err := item.GetTechnique(techniqueID)
	if err != nil {
		return nil, err
	}
	if tech == nil {
		return nil, ErrTechniqueUnknown
	}

	learned := p.Techniques()
	for _, id := range learned {
		if id == techniqueID {
			return nil, ErrTechniqueLearned
		}
	}
	if len(learned) >= player.MaxTechniques {
		return nil, ErrTechniqueLimit
	}

	// 秘籍物品按约定以功法ID加_book后缀命名，部分配置直接共用功法ID
	removed, err := inventory.Remove(p.UserID, techniqueID+"_book", 1)
	if err != nil {
		return nil, err
	}
	if !removed {
		removed, err = inventory.Remove(p.UserID, techniqueID, 1)
		if err != nil {
			return nil, err
		}
	}
	if !removed {
		return nil, ErrBookMissing
	}

	p.SetTechniques(append(learned, techniqueID))
	if err := player.Update(p); err != nil {
		return nil, err
	}
	return tech, nil
}
