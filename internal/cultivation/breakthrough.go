package cultivation

import (
	"math/rand"

	"github.com/oldPeter616/xiuxianzhuan-go/internal/gamedata"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/player"
)

// 突破概率与惩罚参数
const (
	baseSuccessRate = 0.5
	maxSuccessRate  = 0.95

	// advancedRankCutoff 起进入中境界（炼虚初期），失败惩罚更重
	advancedRankCutoff = 22
	rollbackChance     = 0.3
	advancedSpiritLoss = 0.2
	normalSpiritLoss   = 0.1
)

// BreakthroughOutcome 标识一次突破尝试的去向
type BreakthroughOutcome int

const (
	// OutcomeInsufficientSpirit 灵气不足，未做任何尝试
	OutcomeInsufficientSpirit BreakthroughOutcome = iota
	// OutcomeAtMaxRank 已是最高境界
	OutcomeAtMaxRank
	// OutcomeSuccess 突破成功
	OutcomeSuccess
	// OutcomeFailure 突破失败，损失部分灵气
	OutcomeFailure
	// OutcomeRollback 突破失败且境界跌落
	OutcomeRollback
)

// BreakthroughResult 描述一次突破尝试
type BreakthroughResult struct {
	Outcome     BreakthroughOutcome
	SuccessRate float64
	SpiritLost  int
	// Threshold 是本次突破所需的灵气
	Threshold int
}

// SuccessRate 计算突破成功率。
// 境界越高成功率越低，灵气储备越足成功率越高，上限95%。
func SuccessRate(spirit, nextRank int) float64 {
	rankPenalty := 1.0 - float64(nextRank)*0.15
	if rankPenalty < 0.1 {
		rankPenalty = 0.1
	}
	spiritBonus := float64(spirit) / 500 * 0.2
	if spiritBonus > 0.5 {
		spiritBonus = 0.5
	}
	rate := baseSuccessRate * rankPenalty * (1 + spiritBonus)
	if rate > maxSuccessRate {
		rate = maxSuccessRate
	}
	return rate
}

// AttemptBreakthrough 尝试突破到下一境界，直接修改传入的玩家。
// 灵气不足或已达最高境界时不做任何改动。
func AttemptBreakthrough(p *player.Player, ref *gamedata.Bundle, rng *rand.Rand) *BreakthroughResult {
	if p.RankIndex >= ref.MaxRankIndex() {
		return &BreakthroughResult{Outcome: OutcomeAtMaxRank}
	}
	nextRank := p.RankIndex + 1
	threshold := ref.RankThreshold(nextRank)
	if p.Spirit < threshold {
		return &BreakthroughResult{Outcome: OutcomeInsufficientSpirit, Threshold: threshold}
	}

	rate := SuccessRate(p.Spirit, nextRank)
	result := &BreakthroughResult{SuccessRate: rate, Threshold: threshold}

	if rng.Float64() <= rate {
		p.RankIndex = nextRank
		p.Spirit -= threshold
		p.MaxHP = p.MaxHP * 12 / 10
		p.Attack = p.Attack * 12 / 10
		p.Defense = p.Defense * 12 / 10
		p.Speed = p.Speed * 12 / 10
		p.ClampHP()
		result.Outcome = OutcomeSuccess
		return result
	}

	if nextRank >= advancedRankCutoff {
		if rng.Float64() <= rollbackChance {
			before := p.Spirit
			if p.RankIndex > 0 {
				p.RankIndex--
			}
			p.Spirit = p.Spirit / 2
			result.Outcome = OutcomeRollback
			result.SpiritLost = before - p.Spirit
			return result
		}
		lost := int(float64(p.Spirit) * advancedSpiritLoss)
		p.Spirit -= lost
		result.Outcome = OutcomeFailure
		result.SpiritLost = lost
		return result
	}

	lost := int(float64(p.Spirit) * normalSpiritLoss)
	p.Spirit -= lost
	result.Outcome = OutcomeFailure
	result.SpiritLost = lost
	return result
}
