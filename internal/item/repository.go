package item

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oldPeter616/xiuxianzhuan-go/internal/gamedata"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/platform/database"
)

// Kind 标识物品模板的具体种类
type Kind int

const (
	// KindEquipment 装备
	KindEquipment Kind = iota
	// KindConsumable 丹药
	KindConsumable
	// KindTechnique 功法（书籍）
	KindTechnique
	// KindOther 材料等其他物品
	KindOther
)

// Template 是一次模板查询的归一化结果。
// Kind决定哪个分支字段有效：装备看Equipment，丹药看Item与Effects，其余只看Item。
type Template struct {
	Kind      Kind
	Item      *Item
	Equipment *Equipment
	Effects   map[string]int
}

// ID 返回模板的主键
func (t *Template) ID() string {
	if t.Kind == KindEquipment {
		return t.Equipment.ID
	}
	return t.Item.ItemID
}

// Name 返回模板的显示名
func (t *Template) Name() string {
	if t.Kind == KindEquipment {
		return t.Equipment.Name
	}
	return t.Item.Name
}

// Price 返回模板的价格
func (t *Template) Price() int {
	if t.Kind == KindEquipment {
		return t.Equipment.Price
	}
	return t.Item.Price
}

// classify 依据参考数据判定ID属于哪类模板，避免逐表探测
func classify(ref *gamedata.Bundle, id string) (Kind, bool) {
	if _, ok := ref.Equipments[id]; ok {
		return KindEquipment, true
	}
	tpl, ok := ref.Items[id]
	if !ok {
		return KindOther, false
	}
	switch tpl.Type {
	case "consumable":
		return KindConsumable, true
	case "gongfa":
		return KindTechnique, true
	default:
		return KindOther, true
	}
}

// GetTemplate 按ID查找物品模板。种类由参考数据判定后再查对应的表，
// 丹药的效果从consumable_effects表补齐。未找到时返回 (nil, nil)。
func GetTemplate(ref *gamedata.Bundle, id string) (*Template, error) {
	kind, ok := classify(ref, id)
	if !ok {
		return nil, nil
	}

	if kind == KindEquipment {
		equip, err := GetEquipment(id)
		if err != nil || equip == nil {
			return nil, err
		}
		return &Template{Kind: KindEquipment, Equipment: equip}, nil
	}

	var it Item
	err := database.DB.Where("item_id = ?", id).First(&it).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询物品模板失败: %w", err)
	}

	tpl := &Template{Kind: kind, Item: &it}
	if kind == KindConsumable {
		tpl.Effects = map[string]int{}
		var effect ConsumableEffect
		err = database.DB.Where("id = ?", id).First(&effect).Error
		if err == nil {
			tpl.Effects = effect.Effects()
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("查询丹药效果失败: %w", err)
		}
	}
	return tpl, nil
}

// GetEquipment 按ID查找装备模板，未找到时返回 (nil, nil)
func GetEquipment(id string) (*Equipment, error) {
	var equip Equipment
	err := database.DB.Where("id = ?", id).First(&equip).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询装备模板失败: %w", err)
	}
	return &equip, nil
}

// GetTechnique 按ID查找功法模板，未找到时返回 (nil, nil)
func GetTechnique(id string) (*Technique, error) {
	var tech Technique
	err := database.DB.Where("id = ?", id).First(&tech).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询功法模板失败: %w", err)
	}
	return &tech, nil
}

// GetTechniquesByIDs 批量查找功法模板，缺失的ID被静默跳过
func GetTechniquesByIDs(ids []string) ([]Technique, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var techs []Technique
	if err := database.DB.Where("id IN ?", ids).Find(&techs).Error; err != nil {
		return nil, fmt.Errorf("批量查询功法失败: %w", err)
	}
	return techs, nil
}

// ListEquipmentsByIDs 批量查找装备模板，缺失的ID被静默跳过
func ListEquipmentsByIDs(ids []string) ([]Equipment, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var equips []Equipment
	if err := database.DB.Where("id IN ?", ids).Find(&equips).Error; err != nil {
		return nil, fmt.Errorf("批量查询装备失败: %w", err)
	}
	return equips, nil
}

// SaveEquipment 写回装备的动态状态（强化等级）
func SaveEquipment(equip *Equipment) error {
	if err := database.DB.Save(equip).Error; err != nil {
		return fmt.Errorf("保存装备失败: %w", err)
	}
	return nil
}

// Sync 把参考数据中新增的模板补进数据库。
// 已存在的行保持不变，装备的强化等级等动态状态不会被重置。
func Sync(ref *gamedata.Bundle) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		for _, tpl := range ref.Items {
			maxStack := tpl.MaxStack
			if maxStack == 0 {
				maxStack = 99
			}
			row := Item{
				ItemID:      tpl.ID,
				Name:        tpl.Name,
				Description: tpl.Description,
				ItemType:    tpl.Type,
				Category:    CategoryFor(tpl.Type),
				Quality:     tpl.Quality,
				Price:       tpl.Price,
				MaxStack:    maxStack,
			}
			if err := tx.Clauses(insertIgnore()).Create(&row).Error; err != nil {
				return fmt.Errorf("同步物品 %s 失败: %w", tpl.ID, err)
			}
			if tpl.Type == "consumable" && len(tpl.Effects) > 0 {
				payload, err := json.Marshal(tpl.Effects)
				if err != nil {
					return fmt.Errorf("编码丹药效果 %s 失败: %w", tpl.ID, err)
				}
				eff := ConsumableEffect{ID: tpl.ID, Name: tpl.Name, Effect: string(payload)}
				if err := tx.Clauses(insertIgnore()).Create(&eff).Error; err != nil {
					return fmt.Errorf("同步丹药效果 %s 失败: %w", tpl.ID, err)
				}
			}
		}
		for _, tpl := range ref.Equipments {
			row := Equipment{
				ID:           tpl.ID,
				Name:         tpl.Name,
				Description:  tpl.Description,
				Slot:         tpl.Slot,
				BaseAttack:   tpl.BaseAttack,
				BaseDefense:  tpl.BaseDefense,
				BaseSpeed:    tpl.BaseSpeed,
				BaseHP:       tpl.BaseHP,
				BaseSpirit:   tpl.BaseSpirit,
				Quality:      tpl.Quality,
				Price:        tpl.Price,
				RequiredRank: tpl.RequiredRank,
			}
			if err := tx.Clauses(insertIgnore()).Create(&row).Error; err != nil {
				return fmt.Errorf("同步装备 %s 失败: %w", tpl.ID, err)
			}
		}
		for _, tpl := range ref.Techniques {
			row := Technique{
				ID:                    tpl.ID,
				Name:                  tpl.Name,
				UpgradeExp:            tpl.UpgradeExp,
				AttackBonus:           tpl.AttackBonus,
				HPBonus:               tpl.HPBonus,
				DefenseBonus:          tpl.DefenseBonus,
				SpeedBonus:            tpl.SpeedBonus,
				CultivationSpeedBonus: tpl.CultivationSpeedBonus,
			}
			if err := tx.Clauses(insertIgnore()).Create(&row).Error; err != nil {
				return fmt.Errorf("同步功法 %s 失败: %w", tpl.ID, err)
			}
		}
		return nil
	})
}

// insertIgnore 让已存在的行保持原样，等价于 INSERT OR IGNORE
func insertIgnore() clause.OnConflict {
	return clause.OnConflict{DoNothing: true}
}

// CategoryFor 把物品类型映射到展示用分类名
func CategoryFor(itemType string) string {
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
