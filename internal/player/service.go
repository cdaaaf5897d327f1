package player

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/oldPeter616/xiuxianzhuan-go/internal/gamedata"
)

const timeLayout = "2006-01-02 15:04:05"

// 新玩家的初始属性
const (
	startMaxHP       = 100
	startAttack      = 10
	startDefense     = 5
	startSpeed       = 0
	startSpirit      = 5
	startSpiritStone = 100
)

// signInRewards 是七日循环的签到奖励表，第七天奖励最多
var signInRewards = []struct {
	SpiritStone int
	Spirit      int
}{
	{10, 2}, {20, 4}, {30, 6}, {40, 8}, {50, 10}, {60, 12}, {100, 20},
}

// Register 创建新玩家并随机分配灵根。
// user_id已注册时返回ErrPlayerExists，不产生任何变更。
func Register(userID, name string, ref *gamedata.Bundle, rng *rand.Rand) (*Player, error) {
	existing, err := GetByID(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPlayerExists
	}

	if name == "" {
		suffix := userID
		if len(suffix) > 4 {
			suffix = suffix[len(suffix)-4:]
		}
		name = "修仙者" + suffix
	}

	now := time.Now().Format(timeLayout)
	p := &Player{
		UserID:      userID,
		Name:        name,
		RankIndex:   0,
		SpiritRoot:  rollSpiritRoot(ref.SpiritRoots, rng),
		MaxHP:       startMaxHP,
		CurrentHP:   startMaxHP,
		Attack:      startAttack,
		Defense:     startDefense,
		Speed:       startSpeed,
		Spirit:      startSpirit,
		SpiritStone: startSpiritStone,
		CreateTime:  now,
		UpdateTime:  now,
	}
	p.SetTechniques(nil)
	p.SetEquipment(map[string]string{})

	if err := Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// rollSpiritRoot 按配置概率累积采样一种灵根
func rollSpiritRoot(roots []gamedata.SpiritRoot, rng *rand.Rand) string {
	if len(roots) == 0 {
		return "未知"
	}
	r := rng.Float64()
	cumulative := 0.0
	for _, root := range roots {
		cumulative += root.Probability
		if r <= cumulative {
			return root.Name
		}
	}
	// 概率表没有覆盖到1时落到最后一档
	return roots[len(roots)-1].Name
}

// SignInResult 是一次签到的结算结果
type SignInResult struct {
	AlreadySigned bool
	SpiritStone   int
	Spirit        int
	Streak        int
}

// SignIn 执行每日签到：同一天重复签到不发奖励；
// 与上次签到日期连续时累计连签天数，否则从头开始
func SignIn(p *Player, now time.Time) (*SignInResult, error) {
	today := now.Format("2006-01-02")
	if p.LastSignIn == today {
		return &SignInResult{AlreadySigned: true, Streak: p.SignInStreak}, nil
	}

	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")
	if p.LastSignIn == yesterday {
		p.SignInStreak++
	} else {
		p.SignInStreak = 1
	}

	reward := signInRewards[(p.SignInStreak-1)%len(signInRewards)]
	p.SpiritStone += reward.SpiritStone
	p.Spirit += reward.Spirit
	p.LastSignIn = today
	p.UpdateTime = now.Format(timeLayout)

	if err := Update(p); err != nil {
		return nil, fmt.Errorf("保存签到结果失败: %w", err)
	}
	return &SignInResult{
		SpiritStone: reward.SpiritStone,
		Spirit:      reward.Spirit,
		Streak:      p.SignInStreak,
	}, nil
}
