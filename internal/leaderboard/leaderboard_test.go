package leaderboard

import "testing"

// 境界永远优先于灵气：低境界高灵气不可能反超高境界
func TestScoreRankDominatesSpirit(t *testing.T) {
	lowRankRichSpirit := score(3, 1<<30)
	highRankPoorSpirit := score(4, 0)
	if lowRankRichSpirit >= highRankPoorSpirit {
		t.Errorf("score(3, 很多灵气) = %v 不应 >= score(4, 0) = %v",
			lowRankRichSpirit, highRankPoorSpirit)
	}
}

func TestScoreSpiritBreaksTies(t *testing.T) {
	if score(2, 100) <= score(2, 50) {
		t.Error("同境界下灵气多者分数应更高")
	}
}

func TestScoreSpiritCapped(t *testing.T) {
	if score(2, 1<<40) != score(2, 1000000) {
		t.Error("超过封顶的灵气不应继续增加分数")
	}
}
