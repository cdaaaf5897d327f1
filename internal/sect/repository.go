package sect

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/oldPeter616/xiuxianzhuan-go/internal/platform/database"
)

// ErrSectExists 表示创建宗门时名称已被占用
var ErrSectExists = errors.New("宗门名称已存在")

// GetByID 按ID查找宗门，未找到时返回 (nil, nil)
func GetByID(id string) (*Sect, error) {
	var s Sect
	err := database.DB.Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询宗门失败: %w", err)
	}
	return &s, nil
}

// GetByName 按名称查找宗门，未找到时返回 (nil, nil)
func GetByName(name string) (*Sect, error) {
	var s Sect
	err := database.DB.Where("name = ?", name).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询宗门失败: %w", err)
	}
	return &s, nil
}

// Create 创建新宗门，名称冲突返回ErrSectExists
func Create(s *Sect) error {
	existing, err := GetByName(s.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrSectExists
	}
	err = database.DB.Create(s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrSectExists
		}
		return fmt.Errorf("创建宗门失败: %w", err)
	}
	return nil
}

// Update 全量写回宗门
func Update(s *Sect) error {
	if err := database.DB.Save(s).Error; err != nil {
		return fmt.Errorf("更新宗门失败: %w", err)
	}
	return nil
}

// Delete 删除宗门
func Delete(id string) error {
	if err := database.DB.Where("id = ?", id).Delete(&Sect{}).Error; err != nil {
		return fmt.Errorf("删除宗门失败: %w", err)
	}
	return nil
}

// List 返回全部宗门
func List() ([]Sect, error) {
	var sects []Sect
	if err := database.DB.Order("level DESC, experience DESC").Find(&sects).Error; err != nil {
		return nil, fmt.Errorf("查询宗门列表失败: %w", err)
	}
	return sects, nil
}
