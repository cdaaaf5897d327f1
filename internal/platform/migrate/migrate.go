package migrate

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/oldPeter616/xiuxianzhuan-go/internal/gamedata"
	"github.com/oldPeter616/xiuxianzhuan-go/pkg/log"
)

// LatestVersion 是当前代码要求的数据库版本号
const LatestVersion = 10

// Migration 是一次数据库升级：版本号、名称与在事务内执行的变换函数。
// 注册表在启动时静态构造后传入Apply，不存在全局可变注册状态。
type Migration struct {
	Version int
	Name    string
	Run     func(tx *gorm.DB, ref *gamedata.Bundle) error
}

// Apply 将数据库升级到最新版本：
//   - 不存在版本标记时视为全新安装，在单个事务内直接建出最新表结构、
//     灌入静态数据并写入最新版本号，不回放历史步骤；
//   - 否则按版本号严格升序执行所有高于当前版本的步骤，每个步骤独立事务，
//     成功即推进版本号提交；任一步骤失败则回滚该步骤并中止整个流程，
//     数据库停留在最后一个成功提交的版本上。
func Apply(db *gorm.DB, ref *gamedata.Bundle, steps []Migration) error {
	sorted := make([]Migration, len(steps))
	copy(sorted, steps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Version < sorted[j].Version })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Version == sorted[i-1].Version {
			return fmt.Errorf("迁移注册表版本号重复: v%d", sorted[i].Version)
		}
	}

	hasMarker, err := markerExists(db)
	if err != nil {
		return fmt.Errorf("无法检测版本标记表: %w", err)
	}

	if !hasMarker {
		log.L.Info("未检测到数据库版本，将进行全新安装")
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := createLatestSchema(tx); err != nil {
				return err
			}
			if err := seedReferenceData(tx, ref); err != nil {
				return err
			}
			return tx.Exec("INSERT INTO schema_version (version) VALUES (?)", LatestVersion).Error
		})
		if err != nil {
			return fmt.Errorf("全新安装失败: %w", err)
		}
		log.L.Info("数据库已初始化到最新版本", zap.Int("version", LatestVersion))
		return nil
	}

	current, err := currentVersion(db)
	if err != nil {
		return fmt.Errorf("无法读取数据库版本: %w", err)
	}
	log.L.Info("数据库版本检查", zap.Int("current", current), zap.Int("latest", LatestVersion))

	if current >= LatestVersion {
		log.L.Info("数据库结构已是最新")
		return nil
	}

	for _, step := range sorted {
		if step.Version <= current {
			continue
		}
		log.L.Info("正在执行数据库升级",
			zap.Int("from", current), zap.Int("to", step.Version), zap.String("name", step.Name))

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := step.Run(tx, ref); err != nil {
				return err
			}
			return stampVersion(tx, step.Version)
		})
		if err != nil {
			// 已提交的步骤保持提交，数据库停留在 current 版本
			return fmt.Errorf("数据库 v%d -> v%d 升级失败，已回滚: %w", current, step.Version, err)
		}
		current = step.Version
	}

	log.L.Info("数据库升级完成", zap.Int("version", current))
	return nil
}

// stampVersion 写入版本标记。标记表可能存在但还没有记录（版本0的存量库），
// 此时UPDATE影响不到任何行，需要补一条INSERT。
func stampVersion(tx *gorm.DB, version int) error {
	res := tx.Exec("UPDATE schema_version SET version = ?", version)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version).Error
	}
	return nil
}

// markerExists 检查版本标记表是否存在
func markerExists(db *gorm.DB) (bool, error) {
	var count int64
	err := db.Raw(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&count).Error
	return count > 0, err
}

// currentVersion 读取版本标记，标记表存在但无记录时视为版本0
func currentVersion(db *gorm.DB) (int, error) {
	var versions []int
	if err := db.Raw("SELECT version FROM schema_version").Scan(&versions).Error; err != nil {
		return 0, err
	}
	if len(versions) == 0 {
		return 0, nil
	}
	return versions[0], nil
}
