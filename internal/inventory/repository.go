package inventory

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/oldPeter616/xiuxianzhuan-go/internal/platform/database"
)

// ErrInvalidQuantity 表示操作数量不是正数
var ErrInvalidQuantity = errors.New("物品数量必须大于0")

// List 获取玩家背包中的全部物品
func List(userID string) ([]Item, error) {
	var items []Item
	err := database.DB.Where("user_id = ?", userID).Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("查询背包失败: %w", err)
	}
	return items, nil
}

// Count 返回玩家持有某物品的数量，没有记录时为0
func Count(userID, itemID string) (int, error) {
	var item Item
	err := database.DB.
		Where("user_id = ? AND item_id = ?", userID, itemID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("查询物品数量失败: %w", err)
	}
	return item.Quantity, nil
}

// Add 添加物品到背包：已有记录累加数量，否则插入新记录
func Add(userID, itemID string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var item Item
		err := tx.Where("user_id = ? AND item_id = ?", userID, itemID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&Item{UserID: userID, ItemID: itemID, Quantity: quantity}).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&Item{}).
			Where("user_id = ? AND item_id = ?", userID, itemID).
			Update("quantity", gorm.Expr("quantity + ?", quantity)).Error
	})
}

// Remove 从背包移除物品。数量不足时返回false且不做任何变更；
// 恰好减到0时删除整条记录，否则扣减数量
func Remove(userID, itemID string, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, ErrInvalidQuantity
	}
	removed := false
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var item Item
		err := tx.Where("user_id = ? AND item_id = ?", userID, itemID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if item.Quantity < quantity {
			return nil
		}
		if item.Quantity == quantity {
			if err := tx.Where("user_id = ? AND item_id = ?", userID, itemID).
				Delete(&Item{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Model(&Item{}).
				Where("user_id = ? AND item_id = ?", userID, itemID).
				Update("quantity", gorm.Expr("quantity - ?", quantity)).Error; err != nil {
				return err
			}
		}
		removed = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("移除物品失败: %w", err)
	}
	return removed, nil
}
