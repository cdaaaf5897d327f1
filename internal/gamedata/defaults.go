package gamedata

// defaultRanks 是内置的境界表，和存量数据库中的境界索引一一对应，
// 顺序不可调整，新增境界只能追加在末尾
func defaultRanks() []Rank {
	return []Rank{
		{Name: "练气一层", Spirit: 0},
		{Name: "练气二层", Spirit: 50},
		{Name: "练气三层", Spirit: 100},
		{Name: "练气四层", Spirit: 200},
		{Name: "练气五层", Spirit: 350},
		{Name: "练气六层", Spirit: 500},
		{Name: "练气七层", Spirit: 700},
		{Name: "练气八层", Spirit: 1000},
		{Name: "练气九层", Spirit: 1400},
		{Name: "练气十层", Spirit: 2000},
		{Name: "筑基初期", Spirit: 3000},
		{Name: "筑基中期", Spirit: 4500},
		{Name: "筑基后期", Spirit: 6500},
		{Name: "金丹初期", Spirit: 9000},
		{Name: "金丹中期", Spirit: 12000},
		{Name: "金丹后期", Spirit: 16000},
		{Name: "元婴初期", Spirit: 21000},
		{Name: "元婴中期", Spirit: 27000},
		{Name: "元婴后期", Spirit: 35000},
		{Name: "化神初期", Spirit: 45000},
		{Name: "化神中期", Spirit: 57000},
		{Name: "化神后期", Spirit: 72000},
		{Name: "炼虚初期", Spirit: 90000},
		{Name: "炼虚中期", Spirit: 110000},
		{Name: "炼虚后期", Spirit: 135000},
		{Name: "合体初期", Spirit: 165000},
		{Name: "合体中期", Spirit: 200000},
		{Name: "合体后期", Spirit: 240000},
		{Name: "大乘初期", Spirit: 285000},
		{Name: "大乘中期", Spirit: 335000},
		{Name: "大乘后期", Spirit: 400000},
	}
}

// defaultSpiritRoots 是内置灵根表，概率合计为1
func defaultSpiritRoots() []SpiritRoot {
	return []SpiritRoot{
		{Name: "天灵根", Probability: 0.02, Bonus: 0.3},
		{Name: "变异灵根", Probability: 0.03, Bonus: 0.25},
		{Name: "上品灵根", Probability: 0.08, Bonus: 0.2},
		{Name: "中品灵根", Probability: 0.15, Bonus: 0.15},
		{Name: "下品灵根", Probability: 0.35, Bonus: 0.1},
		{Name: "伪灵根", Probability: 0.37, Bonus: 0.05},
	}
}

func defaultItems() map[string]ItemTemplate {
	return map[string]ItemTemplate{
		"hp_potion": {
			ID: "hp_potion", Name: "气血丹", Description: "恢复50点生命值",
			Type: "consumable", Quality: "common", Price: 50, MaxStack: 99,
			Effects: map[string]int{"hp": 50},
		},
		"spirit_potion": {
			ID: "spirit_potion", Name: "灵力丹", Description: "恢复20点灵力",
			Type: "consumable", Quality: "common", Price: 80, MaxStack: 99,
			Effects: map[string]int{"spirit": 20},
		},
		"foundation_pill": {
			ID: "foundation_pill", Name: "筑基丹", Description: "永久增加20点最大生命值",
			Type: "consumable", Quality: "rare", Price: 500, MaxStack: 9,
			Effects: map[string]int{"max_hp": 20},
		},
		"changchun_gong_book": {
			ID: "changchun_gong_book", Name: "长春功", Description: "功法秘籍《长春功》",
			Type: "gongfa", Quality: "rare", Price: 1200, MaxStack: 1,
		},
	}
}

func defaultEquipments() map[string]EquipmentTemplate {
	return map[string]EquipmentTemplate{
		"beginner_sword": {
			ID: "beginner_sword", Name: "新手剑", Description: "基础的修仙者武器",
			Slot: "weapon", BaseAttack: 10, Quality: "黄", Price: 100,
		},
		"beginner_robe": {
			ID: "beginner_robe", Name: "新手袍", Description: "基础的修仙者护甲",
			Slot: "armor", BaseDefense: 10, Quality: "黄", Price: 100,
		},
		"beginner_boots": {
			ID: "beginner_boots", Name: "新手靴", Description: "基础的修仙者鞋子",
			Slot: "shoes", BaseSpeed: 10, Quality: "黄", Price: 100,
		},
		"beginner_amulet": {
			ID: "beginner_amulet", Name: "新手护符", Description: "基础的修仙者饰品",
			Slot: "accessory", BaseSpirit: 1, Quality: "黄", Price: 100,
		},
	}
}

func defaultTechniques() map[string]TechniqueTemplate {
	return map[string]TechniqueTemplate{
		"changchun_gong": {
			ID: "changchun_gong", Name: "长春功", UpgradeExp: 1000,
			HPBonus: 100, CultivationSpeedBonus: 0.05,
		},
	}
}

func defaultMonsters() map[string]MonsterTemplate {
	return map[string]MonsterTemplate{
		"goblin": {
			ID: "goblin", Name: "小妖精", Level: 0,
			MaxHPBase: 50, AttackBase: 8, DefenseBase: 2, SpeedBase: 3, SpiritStone: 10,
			DropItems: []DropEntry{{ItemID: "hp_potion", Probability: 0.3}},
		},
		"wolf": {
			ID: "wolf", Name: "野狼", Level: 1,
			MaxHPBase: 80, AttackBase: 12, DefenseBase: 4, SpeedBase: 5, SpiritStone: 20,
			DropItems: []DropEntry{{ItemID: "hp_potion", Probability: 0.5}},
		},
		"demon_lord": {
			ID: "demon_lord", Name: "魔王", Level: 5,
			MaxHPBase: 500, AttackBase: 50, DefenseBase: 20, SpeedBase: 15, SpiritStone: 500,
			DropItems: []DropEntry{{ItemID: "beginner_sword", Probability: 1.0}},
		},
	}
}

func defaultSects() map[string]SectSeed {
	return map[string]SectSeed{
		"qingyun": {
			ID: "qingyun", Name: "青云门", Description: "正道第一大派，擅长剑术", RequiredRank: 2,
		},
		"hehuan": {
			ID: "hehuan", Name: "合欢宗", Description: "修炼男女双修之法的门派", RequiredRank: 2,
		},
	}
}
