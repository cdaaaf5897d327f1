package combat

import (
	"reflect"
	"testing"
)

// 手工推演的对局：A速度占优先手，每回合A打15、B打10，
// 第三回合A的第5次出手将B打穿，B在该回合不再出手。
func TestResolveManualRecomputation(t *testing.T) {
	a := Snapshot{ID: "A", HP: 50, Attack: 20, Defense: 5, Speed: 10}
	b := Snapshot{ID: "B", HP: 40, Attack: 15, Defense: 5, Speed: 5}

	result := Resolve(a, b)

	if result.Outcome != ChallengerWon {
		t.Fatalf("Outcome = %v, 期望挑战方获胜", result.Outcome)
	}
	want := []Event{
		{ActorID: "A", Damage: 15, RemainingHP: 25},
		{ActorID: "B", Damage: 10, RemainingHP: 40},
		{ActorID: "A", Damage: 15, RemainingHP: 10},
		{ActorID: "B", Damage: 10, RemainingHP: 30},
		{ActorID: "A", Damage: 15, RemainingHP: -5},
	}
	if !reflect.DeepEqual(result.Events, want) {
		t.Errorf("Events = %+v\n期望 %+v", result.Events, want)
	}
	if result.Rounds != 3 {
		t.Errorf("Rounds = %d, 期望 3", result.Rounds)
	}
	if result.ChallengerHP != 30 || result.DefenderHP != -5 {
		t.Errorf("终局血量 = (%d, %d), 期望 (30, -5)", result.ChallengerHP, result.DefenderHP)
	}
	if result.ChallengerDamage != 45 || result.DefenderDamage != 20 {
		t.Errorf("伤害合计 = (%d, %d), 期望 (45, 20)", result.ChallengerDamage, result.DefenderDamage)
	}
}

// 相同输入必须产生逐字节相同的事件序列
func TestResolveDeterministic(t *testing.T) {
	a := Snapshot{ID: "A", HP: 200, Attack: 17, Defense: 9, Speed: 3}
	b := Snapshot{ID: "B", HP: 180, Attack: 21, Defense: 12, Speed: 3}

	first := Resolve(a, b)
	second := Resolve(a, b)
	if !reflect.DeepEqual(first, second) {
		t.Error("相同输入产生了不同的战斗结果")
	}
}

// 平速时挑战方先手，这是固定规则而不是随机
func TestResolveTieBreakFavorsChallenger(t *testing.T) {
	a := Snapshot{ID: "A", HP: 10, Attack: 100, Defense: 0, Speed: 5}
	b := Snapshot{ID: "B", HP: 10, Attack: 100, Defense: 0, Speed: 5}

	result := Resolve(a, b)
	if result.Outcome != ChallengerWon {
		t.Fatal("平速对局应由挑战方先手并获胜")
	}
	if len(result.Events) != 1 || result.Events[0].ActorID != "A" {
		t.Errorf("首个事件 = %+v, 期望挑战方出手", result.Events)
	}
}

// 防御高于攻击时伤害保底为1，战斗依然能打完
func TestResolveDamageFloor(t *testing.T) {
	a := Snapshot{ID: "A", HP: 3, Attack: 1, Defense: 100, Speed: 9}
	b := Snapshot{ID: "B", HP: 2, Attack: 1, Defense: 100, Speed: 1}

	result := Resolve(a, b)
	if result.Outcome != ChallengerWon {
		t.Fatalf("Outcome = %v, 期望挑战方获胜", result.Outcome)
	}
	for _, e := range result.Events {
		if e.Damage != 1 {
			t.Errorf("伤害 = %d, 期望保底1", e.Damage)
		}
	}
	if result.Rounds != 2 {
		t.Errorf("Rounds = %d, 期望 2", result.Rounds)
	}
}

// 速度更快的应战方先手
func TestResolveFasterDefenderStrikesFirst(t *testing.T) {
	a := Snapshot{ID: "A", HP: 10, Attack: 100, Defense: 0, Speed: 1}
	b := Snapshot{ID: "B", HP: 10, Attack: 100, Defense: 0, Speed: 2}

	result := Resolve(a, b)
	if result.Outcome != DefenderWon {
		t.Fatal("应战方先手秒杀时应由应战方获胜")
	}
	if len(result.Events) != 1 || result.Events[0].ActorID != "B" {
		t.Errorf("首个事件 = %+v, 期望应战方出手", result.Events)
	}
}
