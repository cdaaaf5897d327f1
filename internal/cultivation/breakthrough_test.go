package cultivation

import (
	"math"
	"math/rand"
	"testing"

	"github.com/oldPeter616/xiuxianzhuan-go/internal/gamedata"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/player"
)

func testRanks() *gamedata.Bundle {
	ref, _ := gamedata.Load("")
	return ref
}

func newPlayer(rankIndex, spirit int) *player.Player {
	return &player.Player{
		UserID:    "u1",
		RankIndex: rankIndex,
		MaxHP:     100,
		CurrentHP: 100,
		Attack:    10,
		Defense:   5,
		Speed:     0,
		Spirit:    spirit,
	}
}

// findSeed 返回第一个首次Float64抽样满足条件的随机种子
func findSeed(t *testing.T, accept func(float64) bool) int64 {
	t.Helper()
	for seed := int64(0); seed < 100000; seed++ {
		if accept(rand.New(rand.NewSource(seed)).Float64()) {
			return seed
		}
	}
	t.Fatal("找不到满足条件的随机种子")
	return 0
}

// 灵气不足时不允许产生任何状态变化
func TestBreakthroughInsufficientSpiritNoMutation(t *testing.T) {
	ref := testRanks()
	p := newPlayer(0, ref.RankThreshold(1)-1)
	before := *p

	result := AttemptBreakthrough(p, ref, rand.New(rand.NewSource(1)))

	if result.Outcome != OutcomeInsufficientSpirit {
		t.Fatalf("Outcome = %v, 期望灵气不足", result.Outcome)
	}
	if *p != before {
		t.Errorf("玩家状态被修改: %+v -> %+v", before, *p)
	}
}

// 已达最高境界时永远失败且无状态变化
func TestBreakthroughAtMaxRankNoMutation(t *testing.T) {
	ref := testRanks()
	p := newPlayer(ref.MaxRankIndex(), math.MaxInt32)
	before := *p

	result := AttemptBreakthrough(p, ref, rand.New(rand.NewSource(1)))

	if result.Outcome != OutcomeAtMaxRank {
		t.Fatalf("Outcome = %v, 期望已达最高境界", result.Outcome)
	}
	if *p != before {
		t.Errorf("玩家状态被修改: %+v -> %+v", before, *p)
	}
}

// 新玩家灌满1000灵气后突破：境界+1，灵气扣除门槛值，四项属性各涨20%（向下取整）
func TestBreakthroughSuccessScenario(t *testing.T) {
	ref := testRanks()
	rate := SuccessRate(1000, 1)
	seed := findSeed(t, func(draw float64) bool { return draw <= rate })

	p := newPlayer(0, 1000)
	threshold := ref.RankThreshold(1)

	result := AttemptBreakthrough(p, ref, rand.New(rand.NewSource(seed)))

	if result.Outcome != OutcomeSuccess {
		t.Fatalf("Outcome = %v, 期望成功", result.Outcome)
	}
	if p.RankIndex != 1 {
		t.Errorf("RankIndex = %d, 期望 1", p.RankIndex)
	}
	if p.Spirit != 1000-threshold {
		t.Errorf("Spirit = %d, 期望 %d", p.Spirit, 1000-threshold)
	}
	if p.MaxHP != 120 || p.Attack != 12 || p.Defense != 6 || p.Speed != 0 {
		t.Errorf("属性 = (%d, %d, %d, %d), 期望 (120, 12, 6, 0)",
			p.MaxHP, p.Attack, p.Defense, p.Speed)
	}
}

// 低境界失败只损失10%灵气，境界不变
func TestBreakthroughNormalFailure(t *testing.T) {
	ref := testRanks()
	rate := SuccessRate(1000, 1)
	seed := findSeed(t, func(draw float64) bool { return draw > rate })

	p := newPlayer(0, 1000)
	result := AttemptBreakthrough(p, ref, rand.New(rand.NewSource(seed)))

	if result.Outcome != OutcomeFailure {
		t.Fatalf("Outcome = %v, 期望失败", result.Outcome)
	}
	if p.RankIndex != 0 {
		t.Errorf("RankIndex = %d, 失败不应改变境界", p.RankIndex)
	}
	if p.Spirit != 900 {
		t.Errorf("Spirit = %d, 期望损失10%%后为900", p.Spirit)
	}
	if result.SpiritLost != 100 {
		t.Errorf("SpiritLost = %d, 期望 100", result.SpiritLost)
	}
}

// 中境界失败走重惩罚：第二次抽样未触发跌落时损失20%灵气
func TestBreakthroughAdvancedFailureHeavyLoss(t *testing.T) {
	ref := testRanks()
	rank := advancedRankCutoff - 1
	spirit := ref.RankThreshold(rank + 1)
	rate := SuccessRate(spirit, rank+1)

	// 第一次抽样失败，第二次抽样未触发跌落
	seed := findSeed(t, func(draw float64) bool { return draw > rate })
	rng := rand.New(rand.NewSource(seed))
	probe := rand.New(rand.NewSource(seed))
	probe.Float64()
	if probe.Float64() <= rollbackChance {
		t.Skip("该种子触发跌落分支，由跌落用例覆盖")
	}

	p := newPlayer(rank, spirit)
	result := AttemptBreakthrough(p, ref, rng)

	if result.Outcome != OutcomeFailure {
		t.Fatalf("Outcome = %v, 期望失败", result.Outcome)
	}
	if p.RankIndex != rank {
		t.Errorf("RankIndex = %d, 期望 %d", p.RankIndex, rank)
	}
	wantLost := int(float64(spirit) * advancedSpiritLoss)
	if result.SpiritLost != wantLost {
		t.Errorf("SpiritLost = %d, 期望 %d", result.SpiritLost, wantLost)
	}
}

// 中境界失败触发天道惩罚：境界跌落一级，灵气减半
func TestBreakthroughRollback(t *testing.T) {
	ref := testRanks()
	rank := advancedRankCutoff - 1
	spirit := ref.RankThreshold(rank + 1)
	rate := SuccessRate(spirit, rank+1)

	var seed int64 = -1
	for s := int64(0); s < 100000; s++ {
		probe := rand.New(rand.NewSource(s))
		if probe.Float64() > rate && probe.Float64() <= rollbackChance {
			seed = s
			break
		}
	}
	if seed < 0 {
		t.Fatal("找不到触发跌落的随机种子")
	}

	p := newPlayer(rank, spirit)
	result := AttemptBreakthrough(p, ref, rand.New(rand.NewSource(seed)))

	if result.Outcome != OutcomeRollback {
		t.Fatalf("Outcome = %v, 期望境界跌落", result.Outcome)
	}
	if p.RankIndex != rank-1 {
		t.Errorf("RankIndex = %d, 期望跌落到 %d", p.RankIndex, rank-1)
	}
	if p.Spirit != spirit/2 {
		t.Errorf("Spirit = %d, 期望减半为 %d", p.Spirit, spirit/2)
	}
}

func TestSuccessRateBounds(t *testing.T) {
	tests := []struct {
		name     string
		spirit   int
		nextRank int
		want     float64
	}{
		{"低境界低灵气", 0, 1, 0.5 * 0.85},
		{"灵气加成封顶", 10000, 1, 0.5 * 0.85 * 1.5},
		{"境界惩罚保底", 0, 30, 0.5 * 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuccessRate(tt.spirit, tt.nextRank)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SuccessRate(%d, %d) = %v, 期望 %v", tt.spirit, tt.nextRank, got, tt.want)
			}
			if got > maxSuccessRate {
				t.Errorf("成功率超过上限: %v", got)
			}
		})
	}
}
