package player

import (
	"encoding/json"
)

// 装备槽位是固定集合，空槽位保存空字符串而不是缺少键
const (
	SlotWeapon    = "weapon"
	SlotArmor     = "armor"
	SlotShoes     = "shoes"
	SlotAccessory = "accessory"
)

// Slots 按固定顺序列出全部装备槽位
var Slots = []string{SlotWeapon, SlotArmor, SlotShoes, SlotAccessory}

// MaxTechniques 是玩家可同时修习的功法数量上限
const MaxTechniques = 5

// Player 定义了玩家在SQLite数据库中的持久化模型。
// 功法列表和装备槽位映射以JSON文本列保存。
type Player struct {
	UserID       string  `gorm:"column:user_id;primaryKey" json:"user_id"`
	Name         string  `gorm:"column:name" json:"name"`
	RankIndex    int     `gorm:"column:rank_index" json:"rank_index"`
	SpiritRoot   string  `gorm:"column:spirit_root" json:"spirit_root"`
	MaxHP        int     `gorm:"column:max_hp" json:"max_hp"`
	CurrentHP    int     `gorm:"column:current_hp" json:"current_hp"`
	Attack       int     `gorm:"column:attack" json:"attack"`
	Defense      int     `gorm:"column:defense" json:"defense"`
	Speed        int     `gorm:"column:speed" json:"speed"`
	Spirit       int     `gorm:"column:spirit" json:"spirit"`
	SpiritStone  int     `gorm:"column:spirit_stone" json:"spirit_stone"`
	LastSignIn   string  `gorm:"column:last_sign_in" json:"last_sign_in"`
	SignInStreak int     `gorm:"column:sign_in_streak" json:"sign_in_streak"`
	CreateTime   string  `gorm:"column:create_time" json:"create_time"`
	UpdateTime   string  `gorm:"column:update_time" json:"update_time"`
	SectID       *string `gorm:"column:sect_id" json:"sect_id"`
	SectRole     string  `gorm:"column:sect_role" json:"sect_role"`

	// TechniqueIDs 是有序功法ID列表的JSON序列化
	TechniqueIDs string `gorm:"column:technique_ids" json:"-"`
	// EquipmentIDs 是槽位到装备ID映射的JSON序列化
	EquipmentIDs string `gorm:"column:equipment_ids" json:"-"`
}

// TableName 指定表名
func (Player) TableName() string {
	return "players"
}

// Techniques 反序列化已修习的功法ID列表
func (p *Player) Techniques() []string {
	if p.TechniqueIDs == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(p.TechniqueIDs), &ids); err != nil {
		return nil
	}
	return ids
}

// SetTechniques 序列化并写回功法ID列表
func (p *Player) SetTechniques(ids []string) {
	if ids == nil {
		ids = []string{}
	}
	data, _ := json.Marshal(ids)
	p.TechniqueIDs = string(data)
}

// Equipment 反序列化装备槽位映射。
// 缺失的槽位补空字符串，固定槽位集合之外的键被丢弃。
func (p *Player) Equipment() map[string]string {
	raw := map[string]string{}
	if p.EquipmentIDs != "" {
		_ = json.Unmarshal([]byte(p.EquipmentIDs), &raw)
	}
	slots := map[string]string{}
	for _, slot := range Slots {
		slots[slot] = raw[slot]
	}
	return slots
}

// SetEquipment 序列化并写回装备槽位映射
func (p *Player) SetEquipment(slots map[string]string) {
	full := map[string]string{}
	for _, slot := range Slots {
		full[slot] = slots[slot]
	}
	data, _ := json.Marshal(full)
	p.EquipmentIDs = string(data)
}

// EquippedIn 返回装备所在的槽位，未穿戴时返回空字符串
func (p *Player) EquippedIn(equipmentID string) string {
	if equipmentID == "" {
		return ""
	}
	for slot, id := range p.Equipment() {
		if id == equipmentID {
			return slot
		}
	}
	return ""
}

// ClampHP 将当前生命值约束到 [0, max_hp] 区间
func (p *Player) ClampHP() {
	if p.CurrentHP < 0 {
		p.CurrentHP = 0
	}
	if p.CurrentHP > p.MaxHP {
		p.CurrentHP = p.MaxHP
	}
}
