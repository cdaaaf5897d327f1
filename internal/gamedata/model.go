package gamedata

// Rank 定义境界表中的一个境界：名称与突破到该境界所需的灵气
type Rank struct {
	Name   string `json:"name"`
	Spirit int    `json:"spirit"`
}

// SpiritRoot 定义一种灵根及其出现概率、修炼加成
type SpiritRoot struct {
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
	Bonus       float64 `json:"bonus"`
}

// ItemTemplate 是通用物品的静态模板（丹药、材料、功法秘籍等）
type ItemTemplate struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Type        string         `json:"type"` // consumable / equipment / gongfa / material
	Quality     string         `json:"quality"`
	Price       int            `json:"price"`
	MaxStack    int            `json:"max_stack"`
	Effects     map[string]int `json:"effects"`
}

// EquipmentTemplate 是装备的静态模板，基础属性会随强化等级成长
type EquipmentTemplate struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Slot         string `json:"slot"` // weapon / armor / shoes / accessory
	BaseAttack   int    `json:"base_attack"`
	BaseDefense  int    `json:"base_defense"`
	BaseSpeed    int    `json:"base_speed"`
	BaseHP       int    `json:"base_hp"`
	BaseSpirit   int    `json:"base_spirit"`
	Quality      string `json:"quality"`
	Price        int    `json:"price"`
	RequiredRank int    `json:"required_rank"`
}

// TechniqueTemplate 是功法的静态模板，提供固定属性加成
type TechniqueTemplate struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	UpgradeExp            int     `json:"upgrade_exp"`
	AttackBonus           int     `json:"attack_bonus"`
	HPBonus               int     `json:"hp_bonus"`
	DefenseBonus          int     `json:"defense_bonus"`
	SpeedBonus            int     `json:"speed_bonus"`
	CultivationSpeedBonus float64 `json:"cultivation_speed_bonus"`
}

// DropEntry 是怪物掉落表中的一项，各项独立判定
type DropEntry struct {
	ItemID      string  `json:"item_id"`
	Probability float64 `json:"probability"`
}

// MonsterTemplate 是怪物的静态模板，实际战斗属性会按玩家属性缩放
type MonsterTemplate struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Level       int         `json:"level"`
	MaxHPBase   int         `json:"max_hp_base"`
	AttackBase  int         `json:"attack_base"`
	DefenseBase int         `json:"defense_base"`
	SpeedBase   int         `json:"speed_base"`
	SpiritStone int         `json:"spirit_stone"`
	DropItems   []DropEntry `json:"drop_items"`
}

// SectSeed 是随游戏内容预置的宗门定义
type SectSeed struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	RequiredRank int    `json:"required_rank"`
}

// Bundle 汇总全部只读静态数据，启动时加载一次后不再变化
type Bundle struct {
	Ranks       []Rank
	SpiritRoots []SpiritRoot
	Items       map[string]ItemTemplate
	Equipments  map[string]EquipmentTemplate
	Techniques  map[string]TechniqueTemplate
	Monsters    map[string]MonsterTemplate
	Sects       map[string]SectSeed
}

// MaxRankIndex 返回境界表的最高索引
func (b *Bundle) MaxRankIndex() int {
	return len(b.Ranks) - 1
}

// RankThreshold 返回突破到指定境界所需的灵气，索引越界时取最高境界
func (b *Bundle) RankThreshold(rankIndex int) int {
	if rankIndex < 0 {
		rankIndex = 0
	}
	if rankIndex > b.MaxRankIndex() {
		rankIndex = b.MaxRankIndex()
	}
	return b.Ranks[rankIndex].Spirit
}

// RankName 返回指定境界的名称，索引越界时取最高境界
func (b *Bundle) RankName(rankIndex int) string {
	if rankIndex < 0 {
		rankIndex = 0
	}
	if rankIndex > b.MaxRankIndex() {
		rankIndex = b.MaxRankIndex()
	}
	return b.Ranks[rankIndex].Name
}
