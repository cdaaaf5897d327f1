package migrate

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/oldPeter616/xiuxianzhuan-go/internal/gamedata"
)

// createLatestSchema 一次性建出最新版本的全部表结构，仅用于全新安装。
// 所有DDL都使用 IF NOT EXISTS，重复执行不会破坏已有数据。
func createLatestSchema(tx *gorm.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`,
		`CREATE TABLE IF NOT EXISTS players (
			user_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			rank_index INTEGER NOT NULL,
			spirit_root TEXT NOT NULL,
			max_hp INTEGER NOT NULL,
			current_hp INTEGER NOT NULL,
			attack INTEGER NOT NULL,
			defense INTEGER NOT NULL,
			speed INTEGER NOT NULL DEFAULT 0,
			spirit INTEGER NOT NULL,
			spirit_stone INTEGER NOT NULL,
			last_sign_in TEXT NOT NULL,
			sign_in_streak INTEGER NOT NULL DEFAULT 0,
			create_time TEXT NOT NULL,
			update_time TEXT NOT NULL,
			sect_id TEXT,
			sect_role TEXT NOT NULL DEFAULT '',
			technique_ids TEXT NOT NULL DEFAULT '[]',
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
			category TEXT NOT NULL DEFAULT '',
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
		`CREATE TABLE IF NOT EXISTS equipments (
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
		)`,
		`CREATE TABLE IF NOT EXISTS techniques (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			upgrade_exp INTEGER NOT NULL DEFAULT 0,
			attack_bonus INTEGER NOT NULL DEFAULT 0,
			hp_bonus INTEGER NOT NULL DEFAULT 0,
			defense_bonus INTEGER NOT NULL DEFAULT 0,
			speed_bonus INTEGER NOT NULL DEFAULT 0,
			cultivation_speed_bonus REAL NOT NULL DEFAULT 0.0
		)`,
		`CREATE TABLE IF NOT EXISTS consumable_effects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			effect TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			leader_id TEXT,
			level INTEGER NOT NULL DEFAULT 1,
			experience INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range ddl {
		if err := tx.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// seedReferenceData 将静态模板灌入各模板表。
// 全部使用 INSERT OR IGNORE：已存在的行（可能带有强化等级等动态状态）不被覆盖。
func seedReferenceData(tx *gorm.DB, ref *gamedata.Bundle) error {
	if ref == nil {
		return nil
	}
	if err := seedItems(tx, ref); err != nil {
		return err
	}
	if err := seedEquipments(tx, ref); err != nil {
		return err
	}
	if err := seedTechniques(tx, ref); err != nil {
		return err
	}
	if err := seedConsumableEffects(tx, ref); err != nil {
		return err
	}
	// 丹药效果以consumable_effects表为准，items表中的冗余副本保持清空，
	// 与存量数据库走完迁移链后的状态一致
	err := tx.Exec(`UPDATE items SET effect = ''
		WHERE item_type = 'consumable'
		  AND item_id IN (SELECT id FROM consumable_effects)`).Error
	if err != nil {
		return err
	}
	return seedSects(tx, ref)
}

func seedItems(tx *gorm.DB, ref *gamedata.Bundle) error {
	for _, item := range ref.Items {
		category := itemCategory(item.Type)
		effect, err := json.Marshal(item.Effects)
		if err != nil {
			return err
		}
		maxStack := item.MaxStack
		if maxStack == 0 {
			maxStack = 99
		}
		err = tx.Exec(`INSERT OR IGNORE INTO items
			(item_id, name, description, item_type, category, quality, effect, price, max_stack, usage_requirements)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID, item.Name, item.Description, item.Type, category,
			item.Quality, string(effect), item.Price, maxStack, "[]",
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func seedEquipments(tx *gorm.DB, ref *gamedata.Bundle) error {
	for _, eq := range ref.Equipments {
		err := tx.Exec(`INSERT OR IGNORE INTO equipments
			(id, name, description, slot, base_attack, base_defense, base_speed, base_hp, base_spirit, quality, price, required_rank)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			eq.ID, eq.Name, eq.Description, eq.Slot, eq.BaseAttack, eq.BaseDefense,
			eq.BaseSpeed, eq.BaseHP, eq.BaseSpirit, eq.Quality, eq.Price, eq.RequiredRank,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func seedTechniques(tx *gorm.DB, ref *gamedata.Bundle) error {
	for _, t := range ref.Techniques {
		err := tx.Exec(`INSERT OR IGNORE INTO techniques
			(id, name, upgrade_exp, attack_bonus, hp_bonus, defense_bonus, speed_bonus, cultivation_speed_bonus)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Name, t.UpgradeExp, t.AttackBonus, t.HPBonus,
			t.DefenseBonus, t.SpeedBonus, t.CultivationSpeedBonus,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func seedConsumableEffects(tx *gorm.DB, ref *gamedata.Bundle) error {
	for _, item := range ref.Items {
		if item.Type != "consumable" {
			continue
		}
		effect, err := json.Marshal(item.Effects)
		if err != nil {
			return err
		}
		err = tx.Exec(`INSERT OR IGNORE INTO consumable_effects (id, name, effect) VALUES (?, ?, ?)`,
			item.ID, item.Name, string(effect),
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func seedSects(tx *gorm.DB, ref *gamedata.Bundle) error {
	for _, s := range ref.Sects {
		// 宗主在玩家创建宗门时才会设置
		err := tx.Exec(`INSERT OR IGNORE INTO sects (id, name, leader_id, level, experience, created_at)
			VALUES (?, ?, NULL, 1, 0, CURRENT_TIMESTAMP)`,
			s.ID, s.Name,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// itemCategory 按物品类型映射展示分类
func itemCategory(itemType string) string {
	switch itemType {
	case "consumable":
		return "丹药"
	case "equipment":
		return "装备"
	case "gongfa":
		return "功法"
	default:
		return "材料"
	}
}
