package item

import "encoding/json"

// MaxUpgradeLevel 是装备强化等级上限
const MaxUpgradeLevel = 99

// Item 定义了通用物品模板在SQLite数据库中的持久化模型。
// 丹药的效果在收敛进consumable_effects表之后，这里的effect字段保持为空。
type Item struct {
	ItemID            string `gorm:"column:item_id;primaryKey" json:"item_id"`
	Name              string `gorm:"column:name" json:"name"`
	Description       string `gorm:"column:description" json:"description"`
	ItemType          string `gorm:"column:item_type" json:"item_type"`
	Category          string `gorm:"column:category" json:"category"`
	Quality           string `gorm:"column:quality" json:"quality"`
	Effect            string `gorm:"column:effect" json:"-"`
	Price             int    `gorm:"column:price" json:"price"`
	MaxStack          int    `gorm:"column:max_stack" json:"max_stack"`
	UsageRequirements string `gorm:"column:usage_requirements" json:"-"`
	UpgradeLevel      int    `gorm:"column:upgrade_level" json:"upgrade_level"`
	BaseAttack        int    `gorm:"column:base_attack" json:"base_attack"`
	BaseDefense       int    `gorm:"column:base_defense" json:"base_defense"`
	BaseSpeed         int    `gorm:"column:base_speed" json:"base_speed"`
	BaseHP            int    `gorm:"column:base_hp" json:"base_hp"`
	BaseSpirit        int    `gorm:"column:base_spirit" json:"base_spirit"`
}

// TableName 指定表名
func (Item) TableName() string {
	return "items"
}

// Equipment 定义了装备模板的持久化模型，强化等级是随实例变化的动态状态
type Equipment struct {
	ID           string `gorm:"column:id;primaryKey" json:"id"`
	Name         string `gorm:"column:name" json:"name"`
	Description  string `gorm:"column:description" json:"description"`
	Slot         string `gorm:"column:slot" json:"slot"`
	BaseAttack   int    `gorm:"column:base_attack" json:"base_attack"`
	BaseDefense  int    `gorm:"column:base_defense" json:"base_defense"`
	BaseSpeed    int    `gorm:"column:base_speed" json:"base_speed"`
	BaseHP       int    `gorm:"column:base_hp" json:"base_hp"`
	BaseSpirit   int    `gorm:"column:base_spirit" json:"base_spirit"`
	UpgradeLevel int    `gorm:"column:upgrade_level" json:"upgrade_level"`
	Quality      string `gorm:"column:quality" json:"quality"`
	Price        int    `gorm:"column:price" json:"price"`
	RequiredRank int    `gorm:"column:required_rank" json:"required_rank"`
}

// TableName 指定表名
func (Equipment) TableName() string {
	return "equipments"
}

// 强化每级为主属性提供10%基础值加成，灵力属性为1%，向下取整
func scaledBonus(base, level, divisor int) int {
	return base + base*level/divisor
}

// AttackValue 返回含强化加成的攻击力
func (e *Equipment) AttackValue() int { return scaledBonus(e.BaseAttack, e.UpgradeLevel, 10) }

// DefenseValue 返回含强化加成的防御力
func (e *Equipment) DefenseValue() int { return scaledBonus(e.BaseDefense, e.UpgradeLevel, 10) }

// SpeedValue 返回含强化加成的速度
func (e *Equipment) SpeedValue() int { return scaledBonus(e.BaseSpeed, e.UpgradeLevel, 10) }

// HPValue 返回含强化加成的生命值
func (e *Equipment) HPValue() int { return scaledBonus(e.BaseHP, e.UpgradeLevel, 10) }

// SpiritValue 返回含强化加成的灵力
func (e *Equipment) SpiritValue() int { return scaledBonus(e.BaseSpirit, e.UpgradeLevel, 100) }

// Technique 定义了功法模板的持久化模型
type Technique struct {
	ID                    string  `gorm:"column:id;primaryKey" json:"id"`
	Name                  string  `gorm:"column:name" json:"name"`
	UpgradeExp            int     `gorm:"column:upgrade_exp" json:"upgrade_exp"`
	AttackBonus           int     `gorm:"column:attack_bonus" json:"attack_bonus"`
	HPBonus               int     `gorm:"column:hp_bonus" json:"hp_bonus"`
	DefenseBonus          int     `gorm:"column:defense_bonus" json:"defense_bonus"`
	SpeedBonus            int     `gorm:"column:speed_bonus" json:"speed_bonus"`
	CultivationSpeedBonus float64 `gorm:"column:cultivation_speed_bonus" json:"cultivation_speed_bonus"`
}

// TableName 指定表名
func (Technique) TableName() string {
	return "techniques"
}

// ConsumableEffect 定义了丹药效果的持久化模型，效果载荷以JSON文本保存
type ConsumableEffect struct {
	ID     string `gorm:"column:id;primaryKey" json:"id"`
	Name   string `gorm:"column:name" json:"name"`
	Effect string `gorm:"column:effect" json:"-"`
}

// TableName 指定表名
func (ConsumableEffect) TableName() string {
	return "consumable_effects"
}

// Effects 反序列化效果载荷
func (c *ConsumableEffect) Effects() map[string]int {
	effects := map[string]int{}
	if c.Effect != "" {
		_ = json.Unmarshal([]byte(c.Effect), &effects)
	}
	return effects
}
