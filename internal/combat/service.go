package combat

import (
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/oldPeter616/xiuxianzhuan-go/internal/cultivation"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/gamedata"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/inventory"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/leaderboard"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/player"
	"github.com/oldPeter616/xiuxianzhuan-go/pkg/log"
)

var (
	// ErrMonsterNotFound 怪物不存在
	ErrMonsterNotFound = errors.New("怪物不存在")
	// ErrNoOpponent 找不到合适的竞技场对手
	ErrNoOpponent = errors.New("暂时没有合适的对手")
	// ErrPlayerDown 玩家生命值为0，无法战斗
	ErrPlayerDown = errors.New("生命值不足，无法战斗")
)

// 竞技场只匹配境界不高于自身两个小层级的对手
const arenaRankMargin = 2

// HuntResult 描述一次猎妖的结果
type HuntResult struct {
	MonsterName  string
	Combat       Result
	StoneGained  int
	SpiritGained int
	Drops        []string
}

// ChallengeMonster 挑战一只怪物。
// 怪物属性按玩家结算属性的50%生成，并以模板基础值兜底，
// 胜利结算灵石、灵气和独立判定的掉落。
func ChallengeMonster(p *player.Player, ref *gamedata.Bundle, monsterID string, rng *rand.Rand, now time.Time) (*HuntResult, error) {
	tpl, ok := ref.Monsters[monsterID]
	if !ok {
		return nil, ErrMonsterNotFound
	}
	if p.CurrentHP <= 0 {
		return nil, ErrPlayerDown
	}

	stats, err := cultivation.LoadStats(p)
	if err != nil {
		return nil, err
	}

	monster := Snapshot{
		ID:      "monster:" + tpl.ID,
		Name:    tpl.Name,
		HP:      scaled(stats.HP, tpl.MaxHPBase),
		Attack:  scaled(stats.Attack, tpl.AttackBase),
		Defense: scaled(stats.Defense, tpl.DefenseBase),
		Speed:   scaled(stats.Speed, tpl.SpeedBase),
	}
	challenger := Snapshot{
		ID:      p.UserID,
		Name:    p.Name,
		HP:      p.CurrentHP,
		Attack:  stats.Attack,
		Defense: stats.Defense,
		Speed:   stats.Speed,
	}

	result := Resolve(challenger, monster)
	hunt := &HuntResult{MonsterName: tpl.Name, Combat: result}

	p.CurrentHP = result.ChallengerHP
	p.ClampHP()

	if result.Outcome == ChallengerWon {
		hunt.StoneGained = tpl.SpiritStone
		hunt.SpiritGained = monster.HP / 10
		if hunt.SpiritGained < 1 {
			hunt.SpiritGained = 1
		}
		hunt.Drops = cultivation.ResolveLoot(tpl.DropItems, rng)

		p.SpiritStone += hunt.StoneGained
		p.Spirit += hunt.SpiritGained
		for _, itemID := range hunt.Drops {
			if err := inventory.Add(p.UserID, itemID, 1); err != nil {
				return nil, err
			}
		}
	}
	if err := player.Update(p); err != nil {
		return nil, err
	}
	leaderboard.Update(p)

	outcome, damage := "win", result.ChallengerDamage
	if result.Outcome == DefenderWon {
		outcome, damage = "lose", result.DefenderDamage
	}
	if err := AppendLog(p.UserID, monster.ID, outcome, damage, hunt.StoneGained, hunt.Drops, now); err != nil {
		return nil, err
	}

	log.L.Info("猎妖结束",
		zap.String("user_id", p.UserID),
		zap.String("monster_id", tpl.ID),
		zap.String("result", outcome),
		zap.Int("rounds", result.Rounds))
	return hunt, nil
}

func scaled(playerStat, base int) int {
	half := playerStat / 2
	if half < base {
		return base
	}
	return half
}

// ArenaResult 描述一次竞技场对战的结果
type ArenaResult struct {
	OpponentID   string
	OpponentName string
	Combat       Result
	StoneDelta   int
	SpiritGained int
}

// Arena 进入竞技场与随机对手过招。
// 胜者抽取对手四分之一的灵石，败者折损一成灵石。
// 对手的存档不受影响，损益只落在发起方身上。
func Arena(p *player.Player, rng *rand.Rand, now time.Time) (*ArenaResult, error) {
	if p.CurrentHP <= 0 {
		return nil, ErrPlayerDown
	}
	opponents, err := player.ListOpponents(p.UserID, p.RankIndex+arenaRankMargin)
	if err != nil {
		return nil, err
	}
	if len(opponents) == 0 {
		return nil, ErrNoOpponent
	}
	opponent := &opponents[rng.Intn(len(opponents))]

	myStats, err := cultivation.LoadStats(p)
	if err != nil {
		return nil, err
	}
	theirStats, err := cultivation.LoadStats(opponent)
	if err != nil {
		return nil, err
	}

	challenger := Snapshot{
		ID:      p.UserID,
		Name:    p.Name,
		HP:      p.CurrentHP,
		Attack:  myStats.Attack,
		Defense: myStats.Defense,
		Speed:   myStats.Speed,
	}
	defender := Snapshot{
		ID:      opponent.UserID,
		Name:    opponent.Name,
		HP:      opponent.CurrentHP,
		Attack:  theirStats.Attack,
		Defense: theirStats.Defense,
		Speed:   theirStats.Speed,
	}

	result := Resolve(challenger, defender)
	arena := &ArenaResult{
		OpponentID:   opponent.UserID,
		OpponentName: opponent.Name,
		Combat:       result,
	}

	p.CurrentHP = result.ChallengerHP
	p.ClampHP()

	var outcome string
	var damage int
	if result.Outcome == ChallengerWon {
		outcome, damage = "win", result.ChallengerDamage
		arena.StoneDelta = opponent.SpiritStone / 4
		arena.SpiritGained = opponent.MaxHP / 20
		if arena.SpiritGained < 1 {
			arena.SpiritGained = 1
		}
		p.SpiritStone += arena.StoneDelta
		p.Spirit += arena.SpiritGained
	} else {
		outcome, damage = "lose", result.DefenderDamage
		lost := p.SpiritStone / 10
		p.SpiritStone -= lost
		arena.StoneDelta = -lost
	}

	if err := player.Update(p); err != nil {
		return nil, err
	}
	leaderboard.Update(p)

	if err := AppendLog(p.UserID, opponent.UserID, outcome, damage, arena.StoneDelta, nil, now); err != nil {
		return nil, err
	}

	log.L.Info("竞技场结束",
		zap.String("user_id", p.UserID),
		zap.String("opponent_id", opponent.UserID),
		zap.String("result", outcome),
		zap.Int("rounds", result.Rounds))
	return arena, nil
}
