package combat

// Snapshot 是一名参战者的属性快照，装备与功法加成已在结算前叠加完毕
type Snapshot struct {
	ID      string
	Name    string
	HP      int
	Attack  int
	Defense int
	Speed   int
}

// Outcome 标识战斗的终局
type Outcome int

const (
	// ChallengerWon 挑战方获胜
	ChallengerWon Outcome = iota
	// DefenderWon 应战方获胜
	DefenderWon
)

// Event 是一次出手的记录
type Event struct {
	ActorID     string
	Damage      int
	RemainingHP int
}

// Result 汇总整场战斗，调用方凭它结算奖励并落库，无需重放
type Result struct {
	Outcome          Outcome
	Events           []Event
	ChallengerHP     int
	DefenderHP       int
	ChallengerDamage int
	DefenderDamage   int
	Rounds           int
}

func damageTo(attacker, defender *Snapshot) int {
	dmg := attacker.Attack - defender.Defense
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// Resolve 跑完一整场回合制战斗。
// 速度高者先手，平速时挑战方先手。每回合先手方先结算，
// 目标血量归零立即终局，后手方在该回合不再出手。
// 伤害下限为1，血量有限，战斗必然在有限回合内分出胜负。
func Resolve(challenger, defender Snapshot) Result {
	result := Result{
		ChallengerHP: challenger.HP,
		DefenderHP:   defender.HP,
	}

	first, second := &challenger, &defender
	firstHP, secondHP := &result.ChallengerHP, &result.DefenderHP
	if defender.Speed > challenger.Speed {
		first, second = &defender, &challenger
		firstHP, secondHP = &result.DefenderHP, &result.ChallengerHP
	}

	for {
		result.Rounds++

		dmg := damageTo(first, second)
		*secondHP -= dmg
		result.Events = append(result.Events, Event{ActorID: first.ID, Damage: dmg, RemainingHP: *secondHP})
		if *secondHP <= 0 {
			break
		}

		dmg = damageTo(second, first)
		*firstHP -= dmg
		result.Events = append(result.Events, Event{ActorID: second.ID, Damage: dmg, RemainingHP: *firstHP})
		if *firstHP <= 0 {
			break
		}
	}

	if result.DefenderHP <= 0 {
		result.Outcome = ChallengerWon
	} else {
		result.Outcome = DefenderWon
	}
	result.ChallengerDamage = defender.HP - result.DefenderHP
	result.DefenderDamage = challenger.HP - result.ChallengerHP
	return result
}
