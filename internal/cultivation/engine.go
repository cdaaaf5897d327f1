package cultivation

import (
	"github.com/oldPeter616/xiuxianzhuan-go/internal/item"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/player"
)

// Stats 是结算后的战斗属性快照，已包含装备与功法的全部加成
type Stats struct {
	HP      int
	Attack  int
	Defense int
	Speed   int
	Spirit  int
}

// DeriveStats 从玩家基础属性出发叠加装备与功法加成。
// 纯加法结算，装备与功法的遍历顺序不影响结果。
func DeriveStats(p *player.Player, equipped []item.Equipment, techniques []item.Technique) Stats {
	stats := Stats{
		HP:      p.MaxHP,
		Attack:  p.Attack,
		Defense: p.Defense,
		Speed:   p.Speed,
		Spirit:  p.Spirit,
	}
	for i := range equipped {
		e := &equipped[i]
		stats.HP += e.HPValue()
		stats.Attack += e.AttackValue()
		stats.Defense += e.DefenseValue()
		stats.Speed += e.SpeedValue()
		stats.Spirit += e.SpiritValue()
	}
	for i := range techniques {
		t := &techniques[i]
		stats.HP += t.HPBonus
		stats.Attack += t.AttackBonus
		stats.Defense += t.DefenseBonus
		stats.Speed += t.SpeedBonus
	}
	return stats
}

// LoadStats 读取玩家当前穿戴的装备与修习的功法并结算属性
func LoadStats(p *player.Player) (Stats, error) {
	var equipIDs []string
	for _, id := range p.Equipment() {
		if id != "" {
			equipIDs = append(equipIDs, id)
		}
	}
	equipped, err := item.ListEquipmentsByIDs(equipIDs)
	if err != nil {
		return Stats{}, err
	}
	techniques, err := item.GetTechniquesByIDs(p.Techniques())
	if err != nil {
		return Stats{}, err
	}
	return DeriveStats(p, equipped, techniques), nil
}
