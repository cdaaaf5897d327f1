package item

import (
	"errors"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/oldPeter616/xiuxianzhuan-go/internal/gamedata"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/inventory"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/player"
	"github.com/oldPeter616/xiuxianzhuan-go/pkg/log"
)

var (
	// ErrItemNotFound 指定的物品模板不存在
	ErrItemNotFound = errors.New("物品不存在")
	// ErrNotEquipment 指定的物品不是装备
	ErrNotEquipment = errors.New("该物品不是装备")
	// ErrNotInInventory 背包中没有足够的该物品
	ErrNotInInventory = errors.New("背包中没有足够的该物品")
	// ErrAlreadyEquipped 该装备已在穿戴中
	ErrAlreadyEquipped = errors.New("该装备已在穿戴中")
	// ErrNotEquipped 该装备没有被穿戴
	ErrNotEquipped = errors.New("该装备没有被穿戴")
	// ErrMaxUpgradeLevel 已达到最高强化等级
	ErrMaxUpgradeLevel = errors.New("已达到最高强化等级")
	// ErrRankTooLow 境界不足以穿戴该装备
	ErrRankTooLow = errors.New("境界不足")
	// ErrSlotMismatch 替换的两件装备槽位不同
	ErrSlotMismatch = errors.New("装备槽位不一致")
	// ErrInsufficientStones 灵石不足
	ErrInsufficientStones = errors.New("灵石不足")
	// ErrNotConsumable 该物品无法直接使用
	ErrNotConsumable = errors.New("该物品无法直接使用")
)

// Equip 把背包中的一件装备穿到对应槽位上。
// 槽位上已有的旧装备会退回背包，保证装备要么在槽位上要么在背包里。
func Equip(p *player.Player, equipmentID string) (*Equipment, error) {
	equip, err := GetEquipment(equipmentID)
	if err != nil {
		return nil, err
	}
	if equip == nil {
		return nil, ErrNotEquipment
	}
	if p.RankIndex < equip.RequiredRank {
		return nil, ErrRankTooLow
	}
	if p.EquippedIn(equipmentID) != "" {
		return nil, ErrAlreadyEquipped
	}

	removed, err := inventory.Remove(p.UserID, equipmentID, 1)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, ErrNotInInventory
	}

	slots := p.Equipment()
	if old := slots[equip.Slot]; old != "" {
		if err := inventory.Add(p.UserID, old, 1); err != nil {
			return nil, err
		}
	}
	slots[equip.Slot] = equipmentID
	p.SetEquipment(slots)

	if err := player.Update(p); err != nil {
		return nil, err
	}
	return equip, nil
}

// Unequip 把指定槽位上的装备取下放回背包
func Unequip(p *player.Player, slot string) (*Equipment, error) {
	slots := p.Equipment()
	id := slots[slot]
	if id == "" {
		return nil, ErrNotEquipped
	}
	equip, err := GetEquipment(id)
	if err != nil {
		return nil, err
	}

	slots[slot] = ""
	p.SetEquipment(slots)
	if err := inventory.Add(p.UserID, id, 1); err != nil {
		return nil, err
	}
	if err := player.Update(p); err != nil {
		return nil, err
	}
	return equip, nil
}

// UpgradeResult 描述一次强化尝试的结果
type UpgradeResult struct {
	Success     bool
	Level       int
	SuccessRate int
}

// Upgrade 尝试强化一件已穿戴的装备。
// 成功率从100%起每级递减20%，最低1%；失败时等级不变。
func Upgrade(p *player.Player, equipmentID string, rng *rand.Rand) (*UpgradeResult, error) {
	if p.EquippedIn(equipmentID) == "" {
		return nil, ErrNotEquipped
	}
	equip, err := GetEquipment(equipmentID)
	if err != nil {
		return nil, err
	}
	if equip == nil {
		return nil, ErrNotEquipment
	}
	if equip.UpgradeLevel >= MaxUpgradeLevel {
		return nil, ErrMaxUpgradeLevel
	}

	rate := 100 - equip.UpgradeLevel*20
	if rate < 1 {
		rate = 1
	}
	result := &UpgradeResult{SuccessRate: rate, Level: equip.UpgradeLevel}
	if rng.Intn(100)+1 <= rate {
		equip.UpgradeLevel++
		if err := SaveEquipment(equip); err != nil {
			return nil, err
		}
		result.Success = true
		result.Level = equip.UpgradeLevel
		log.L.Info("装备强化成功",
			zap.String("user_id", p.UserID),
			zap.String("equipment_id", equipmentID),
			zap.Int("level", equip.UpgradeLevel))
	}
	return result, nil
}

// Replace 用背包中的新装备替换一件已穿戴的同槽位装备，强化等级随之转移。
// 旧装备回到背包时等级清零，保证强化等级不会被复制。
func Replace(p *player.Player, oldID, newID string) (*Equipment, error) {
	slot := p.EquippedIn(oldID)
	if slot == "" {
		return nil, ErrNotEquipped
	}
	oldEquip, err := GetEquipment(oldID)
	if err != nil {
		return nil, err
	}
	if oldEquip == nil {
		return nil, ErrNotEquipment
	}
	newEquip, err := GetEquipment(newID)
	if err != nil {
		return nil, err
	}
	if newEquip == nil {
		return nil, ErrNotEquipment
	}
	if newEquip.Slot != slot {
		return nil, ErrSlotMismatch
	}
	if p.RankIndex < newEquip.RequiredRank {
		return nil, ErrRankTooLow
	}

	removed, err := inventory.Remove(p.UserID, newID, 1)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, ErrNotInInventory
	}

	newEquip.UpgradeLevel = oldEquip.UpgradeLevel
	oldEquip.UpgradeLevel = 0
	if err := SaveEquipment(newEquip); err != nil {
		return nil, err
	}
	if err := SaveEquipment(oldEquip); err != nil {
		return nil, err
	}

	slots := p.Equipment()
	slots[slot] = newID
	p.SetEquipment(slots)
	if err := inventory.Add(p.UserID, oldID, 1); err != nil {
		return nil, err
	}
	if err := player.Update(p); err != nil {
		return nil, err
	}
	return newEquip, nil
}

// Buy 从商店购买物品，扣除灵石并入库
func Buy(p *player.Player, ref *gamedata.Bundle, itemID string, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, inventory.ErrInvalidQuantity
	}
	tpl, err := GetTemplate(ref, itemID)
	if err != nil {
		return 0, err
	}
	if tpl == nil {
		return 0, ErrItemNotFound
	}

	total := tpl.Price() * quantity
	if p.SpiritStone < total {
		return 0, ErrInsufficientStones
	}
	p.SpiritStone -= total
	if err := inventory.Add(p.UserID, itemID, quantity); err != nil {
		return 0, err
	}
	if err := player.Update(p); err != nil {
		return 0, err
	}
	return total, nil
}

// UseResult 描述一次使用丹药后实际生效的属性变化
type UseResult struct {
	Name    string
	Applied map[string]int
}

// Use 使用背包中的丹药并结算效果。
// 生命恢复不会超过最大生命值，灵力不会降到0以下。
func Use(p *player.Player, ref *gamedata.Bundle, itemID string, quantity int) (*UseResult, error) {
	if quantity <= 0 {
		return nil, inventory.ErrInvalidQuantity
	}
	tpl, err := GetTemplate(ref, itemID)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, ErrItemNotFound
	}
	if tpl.Kind != KindConsumable {
		return nil, ErrNotConsumable
	}
	// 效果载荷先整体校验，物品被扣掉之后不允许再失败
	for effect := range tpl.Effects {
		switch effect {
		case "hp", "spirit", "max_hp":
		default:
			return nil, fmt.Errorf("未知的丹药效果: %s", effect)
		}
	}

	removed, err := inventory.Remove(p.UserID, itemID, quantity)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, ErrNotInInventory
	}

	result := &UseResult{Name: tpl.Name(), Applied: map[string]int{}}
	for effect, value := range tpl.Effects {
		amount := value * quantity
		switch effect {
		case "hp":
			before := p.CurrentHP
			p.CurrentHP += amount
			p.ClampHP()
			result.Applied["hp"] = p.CurrentHP - before
		case "spirit":
			before := p.Spirit
			p.Spirit += amount
			if p.Spirit < 0 {
				p.Spirit = 0
			}
			result.Applied["spirit"] = p.Spirit - before
		case "max_hp":
			p.MaxHP += amount
			p.CurrentHP += amount
			p.ClampHP()
			result.Applied["max_hp"] = amount
		}
	}

	if err := player.Update(p); err != nil {
		return nil, err
	}
	return result, nil
}
