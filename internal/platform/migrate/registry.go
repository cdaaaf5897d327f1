package migrate

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/oldPeter616/xiuxianzhuan-go/internal/gamedata"
)

// Registry 返回完整的迁移注册表。
// 步骤按版本号升序排列，v1是历史上的初始表结构，
// 只有从存量数据库升级时才会被回放；全新安装直接建出最新结构。
func Registry() []Migration {
	return []Migration{
		{Version: 1, Name: "初始表结构", Run: upgradeV1},
		{Version: 2, Name: "玩家速度属性", Run: upgradeV2},
		{Version: 3, Name: "功法表与多功法支持", Run: upgradeV3},
		{Version: 4, Name: "装备表", Run: upgradeV4},
		{Version: 5, Name: "物品分类", Run: upgradeV5},
		{Version: 6, Name: "功法模板入库", Run: upgradeV6},
		{Version: 7, Name: "丹药效果表", Run: upgradeV7},
		{Version: 8, Name: "清理已迁移的物品效果", Run: upgradeV8},
		{Version: 9, Name: "宗门表", Run: upgradeV9},
		{Version: 10, Name: "连续签到计数", Run: upgradeV10},
	}
}

// upgradeV1 建出v1时代的表结构：玩家还没有速度属性，功法字段是单值
func upgradeV1(tx *gorm.DB, ref *gamedata.Bundle) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS players (
			user_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			rank_index INTEGER NOT NULL,
			spirit_root TEXT NOT NULL,
			max_hp INTEGER NOT NULL,
			current_hp INTEGER NOT NULL,
			attack INTEGER NOT NULL,
			defense INTEGER NOT NULL,
			spirit INTEGER NOT NULL,
			spirit_stone INTEGER NOT NULL,
			last_sign_in TEXT NOT NULL,
			create_time TEXT NOT NULL,
			update_time TEXT NOT NULL,
			sect_id TEXT,
			sect_role TEXT NOT NULL DEFAULT '',
			technique_id TEXT,
			equipment_ids TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS inventory (
			user_id TEXT NOT NULL,
			item_id TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			PRIMARY KEY (user_id, item_id)
		)`,
		`CREATE TABLE IF NOT EXISTS combat_logs (
			log_id TEXT PRIMARY KEY,
			attacker_id TEXT NOT NULL,
			defender_id TEXT NOT NULL,
			result TEXT NOT NULL,
			damage INTEGER NOT NULL,
			currency_delta INTEGER NOT NULL,
			timestamp TEXT NOT NULL,
			drop_items TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			item_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			item_type TEXT NOT NULL,
			quality TEXT NOT NULL,
			effect TEXT NOT NULL,
			price INTEGER NOT NULL,
			max_stack INTEGER NOT NULL,
			usage_requirements TEXT NOT NULL,
			upgrade_level INTEGER NOT NULL DEFAULT 0,
			base_attack INTEGER NOT NULL DEFAULT 0,
			base_defense INTEGER NOT NULL DEFAULT 0,
			base_speed INTEGER NOT NULL DEFAULT 0,
			base_hp INTEGER NOT NULL DEFAULT 0,
			base_spirit INTEGER NOT NULL DEFAULT 0
		)`,
	}
	for _, stmt := range ddl {
		if err := tx.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return seedItemsV1(tx, ref)
}

// seedItemsV1 按v1时代的表结构灌入物品：还没有category列，效果留在effect字段里
func seedItemsV1(tx *gorm.DB, ref *gamedata.Bundle) error {
	if ref == nil {
		return nil
	}
	for _, item := range ref.Items {
		effect, err := json.Marshal(item.Effects)
		if err != nil {
			return err
		}
		maxStack := item.MaxStack
		if maxStack == 0 {
			maxStack = 99
		}
		err = tx.Exec(`INSERT OR IGNORE INTO items
			(item_id, name, description, item_type, quality, effect, price, max_stack, usage_requirements)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID, item.Name, item.Description, item.Type,
			item.Quality, string(effect), item.Price, maxStack, "[]",
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func upgradeV2(tx *gorm.DB, _ *gamedata.Bundle) error {
	return tx.Exec(`ALTER TABLE players ADD COLUMN speed INTEGER NOT NULL DEFAULT 0`).Error
}

// upgradeV3 引入功法表，并把玩家的单功法字段迁移为有序ID列表
func upgradeV3(tx *gorm.DB, _ *gamedata.Bundle) error {
	err := tx.Exec(`CREATE TABLE IF NOT EXISTS techniques (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		upgrade_exp INTEGER NOT NULL DEFAULT 0,
		attack_bonus INTEGER NOT NULL DEFAULT 0,
		hp_bonus INTEGER NOT NULL DEFAULT 0,
		defense_bonus INTEGER NOT NULL DEFAULT 0,
		speed_bonus INTEGER NOT NULL DEFAULT 0,
		cultivation_speed_bonus REAL NOT NULL DEFAULT 0.0
	)`).Error
	if err != nil {
		return err
	}

	if err := tx.Exec(`ALTER TABLE players ADD COLUMN technique_ids TEXT NOT NULL DEFAULT '[]'`).Error; err != nil {
		return err
	}

	// 把旧的单功法ID转换为单元素JSON数组
	type row struct {
		UserID      string
		TechniqueID *string
	}
	var rows []row
	if err := tx.Raw(`SELECT user_id, technique_id FROM players WHERE technique_id IS NOT NULL`).Scan(&rows).Error; err != nil {
		return err
	}
	for _, r := range rows {
		if r.TechniqueID == nil || *r.TechniqueID == "" {
			continue
		}
		list, err := json.Marshal([]string{*r.TechniqueID})
		if err != nil {
			return err
		}
		if err := tx.Exec(`UPDATE players SET technique_ids = ? WHERE user_id = ?`, string(list), r.UserID).Error; err != nil {
			return err
		}
	}

	// 旧字段迁移完成后移除，保持与全新安装一致的表结构
	return tx.Exec(`ALTER TABLE players DROP COLUMN technique_id`).Error
}

func upgradeV4(tx *gorm.DB, ref *gamedata.Bundle) error {
	err := tx.Exec(`CREATE TABLE IF NOT EXISTS equipments (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		slot TEXT NOT NULL,
		base_attack INTEGER NOT NULL DEFAULT 0,
		base_defense INTEGER NOT NULL DEFAULT 0,
		base_speed INTEGER NOT NULL DEFAULT 0,
		base_hp INTEGER NOT NULL DEFAULT 0,
		base_spirit INTEGER NOT NULL DEFAULT 0,
		upgrade_level INTEGER NOT NULL DEFAULT 0,
		quality TEXT NOT NULL,
		price INTEGER NOT NULL,
		required_rank INTEGER NOT NULL DEFAULT 0
	)`).Error
	if err != nil {
		return err
	}
	return seedEquipments(tx, ref)
}

// upgradeV5 为物品表补充展示分类并按模板回填
func upgradeV5(tx *gorm.DB, ref *gamedata.Bundle) error {
	if err := tx.Exec(`ALTER TABLE items ADD COLUMN category TEXT NOT NULL DEFAULT ''`).Error; err != nil {
		return err
	}
	if ref == nil {
		return nil
	}
	for _, item := range ref.Items {
		err := tx.Exec(`UPDATE items SET category = ? WHERE item_id = ?`,
			itemCategory(item.Type), item.ID).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func upgradeV6(tx *gorm.DB, ref *gamedata.Bundle) error {
	if ref == nil {
		return nil
	}
	return seedTechniques(tx, ref)
}

func upgradeV7(tx *gorm.DB, ref *gamedata.Bundle) error {
	err := tx.Exec(`CREATE TABLE IF NOT EXISTS consumable_effects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		effect TEXT NOT NULL
	)`).Error
	if err != nil {
		return err
	}
	return seedConsumableEffects(tx, ref)
}

// upgradeV8 将效果已收敛到consumable_effects表的丹药在items表中的effect字段清空
func upgradeV8(tx *gorm.DB, _ *gamedata.Bundle) error {
	return tx.Exec(`UPDATE items SET effect = ''
		WHERE item_type = 'consumable'
		  AND item_id IN (SELECT id FROM consumable_effects)`).Error
}

func upgradeV9(tx *gorm.DB, ref *gamedata.Bundle) error {
	err := tx.Exec(`CREATE TABLE IF NOT EXISTS sects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		leader_id TEXT,
		level INTEGER NOT NULL DEFAULT 1,
		experience INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`).Error
	if err != nil {
		return err
	}
	if ref == nil {
		return nil
	}
	return seedSects(tx, ref)
}

func upgradeV10(tx *gorm.DB, _ *gamedata.Bundle) error {
	return tx.Exec(`ALTER TABLE players ADD COLUMN sign_in_streak INTEGER NOT NULL DEFAULT 0`).Error
}
