package migrate

import (
	"errors"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oldPeter616/xiuxianzhuan-go/internal/gamedata"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	return db
}

func testBundle(t *testing.T) *gamedata.Bundle {
	t.Helper()
	ref, err := gamedata.Load("")
	if err != nil {
		t.Fatalf("加载默认数据失败: %v", err)
	}
	return ref
}

func tableNames(t *testing.T, db *gorm.DB) []string {
	t.Helper()
	var names []string
	err := db.Raw(
		"SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name",
	).Scan(&names).Error
	if err != nil {
		t.Fatalf("读取表名失败: %v", err)
	}
	return names
}

func columnNames(t *testing.T, db *gorm.DB, table string) []string {
	t.Helper()
	var names []string
	err := db.Raw("SELECT name FROM pragma_table_info(?) ORDER BY name", table).Scan(&names).Error
	if err != nil {
		t.Fatalf("读取表 %s 的列失败: %v", table, err)
	}
	return names
}

func schemaVersion(t *testing.T, db *gorm.DB) int {
	t.Helper()
	var version int
	if err := db.Raw("SELECT version FROM schema_version").Scan(&version).Error; err != nil {
		t.Fatalf("读取版本号失败: %v", err)
	}
	return version
}

func rowCount(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var count int64
	if err := db.Raw("SELECT COUNT(*) FROM " + table).Scan(&count).Error; err != nil {
		t.Fatalf("统计表 %s 失败: %v", table, err)
	}
	return count
}

// 全新安装与从版本0逐步升级必须落在完全相同的表结构和静态数据上
func TestFreshInstallMatchesSequentialUpgrade(t *testing.T) {
	ref := testBundle(t)

	fresh := openTestDB(t)
	if err := Apply(fresh, ref, Registry()); err != nil {
		t.Fatalf("全新安装失败: %v", err)
	}

	upgraded := openTestDB(t)
	// 预置一张空的版本标记表，模拟一个停留在版本0的存量数据库
	if err := upgraded.Exec("CREATE TABLE schema_version (version INTEGER)").Error; err != nil {
		t.Fatalf("创建版本标记表失败: %v", err)
	}
	if err := Apply(upgraded, ref, Registry()); err != nil {
		t.Fatalf("逐步升级失败: %v", err)
	}

	freshTables := tableNames(t, fresh)
	upgradedTables := tableNames(t, upgraded)
	if !reflect.DeepEqual(freshTables, upgradedTables) {
		t.Fatalf("表集合不一致:\n全新安装: %v\n逐步升级: %v", freshTables, upgradedTables)
	}

	for _, table := range freshTables {
		freshCols := columnNames(t, fresh, table)
		upgradedCols := columnNames(t, upgraded, table)
		if !reflect.DeepEqual(freshCols, upgradedCols) {
			t.Errorf("表 %s 的列不一致:\n全新安装: %v\n逐步升级: %v", table, freshCols, upgradedCols)
		}
		if fc, uc := rowCount(t, fresh, table), rowCount(t, upgraded, table); fc != uc {
			t.Errorf("表 %s 的行数不一致: 全新安装 %d, 逐步升级 %d", table, fc, uc)
		}
	}

	if v := schemaVersion(t, fresh); v != LatestVersion {
		t.Errorf("全新安装版本号 = %d, 期望 %d", v, LatestVersion)
	}
	if v := schemaVersion(t, upgraded); v != LatestVersion {
		t.Errorf("逐步升级版本号 = %d, 期望 %d", v, LatestVersion)
	}
}

// 丹药效果收敛到consumable_effects表后，items表中的effect字段必须为空
func TestConsumableEffectsReconciled(t *testing.T) {
	ref := testBundle(t)
	db := openTestDB(t)
	if err := Apply(db, ref, Registry()); err != nil {
		t.Fatalf("全新安装失败: %v", err)
	}

	var stale int64
	err := db.Raw(`SELECT COUNT(*) FROM items
		WHERE item_type = 'consumable'
		  AND effect != ''
		  AND item_id IN (SELECT id FROM consumable_effects)`).Scan(&stale).Error
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if stale != 0 {
		t.Errorf("有 %d 个丹药的effect字段未清空", stale)
	}
}

func TestApplyIsIdempotentAtLatest(t *testing.T) {
	ref := testBundle(t)
	db := openTestDB(t)
	if err := Apply(db, ref, Registry()); err != nil {
		t.Fatalf("首次安装失败: %v", err)
	}
	before := rowCount(t, db, "items")

	if err := Apply(db, ref, Registry()); err != nil {
		t.Fatalf("重复执行失败: %v", err)
	}
	if after := rowCount(t, db, "items"); after != before {
		t.Errorf("重复执行改变了物品行数: %d -> %d", before, after)
	}
}

// 升级链中途失败时，数据库必须停留在最后一个成功提交的版本
func TestFailedStepKeepsLastCommittedVersion(t *testing.T) {
	ref := testBundle(t)
	db := openTestDB(t)
	if err := db.Exec("CREATE TABLE schema_version (version INTEGER)").Error; err != nil {
		t.Fatalf("创建版本标记表失败: %v", err)
	}

	steps := []Migration{
		{Version: 1, Name: "建表", Run: func(tx *gorm.DB, _ *gamedata.Bundle) error {
			return tx.Exec("CREATE TABLE probe (id TEXT PRIMARY KEY)").Error
		}},
		{Version: 2, Name: "必然失败", Run: func(tx *gorm.DB, _ *gamedata.Bundle) error {
			if err := tx.Exec("INSERT INTO probe (id) VALUES ('x')").Error; err != nil {
				return err
			}
			return errors.New("制造失败")
		}},
	}

	if err := Apply(db, ref, steps); err == nil {
		t.Fatal("期望升级链失败")
	}
	if v := schemaVersion(t, db); v != 1 {
		t.Errorf("版本号 = %d, 期望停留在1", v)
	}
	// v2事务内的写入必须随失败一起回滚
	if n := rowCount(t, db, "probe"); n != 0 {
		t.Errorf("回滚后probe表仍有 %d 行", n)
	}
}

func TestDuplicateVersionRejected(t *testing.T) {
	ref := testBundle(t)
	db := openTestDB(t)

	noop := func(tx *gorm.DB, _ *gamedata.Bundle) error { return nil }
	steps := []Migration{
		{Version: 1, Name: "a", Run: noop},
		{Version: 1, Name: "b", Run: noop},
	}
	if err := Apply(db, ref, steps); err == nil {
		t.Fatal("期望重复版本号被拒绝")
	}
}

// 注册表必须覆盖到LatestVersion且版本号连续
func TestRegistryCoversLatestVersion(t *testing.T) {
	steps := Registry()
	versions := make([]int, 0, len(steps))
	for _, s := range steps {
		versions = append(versions, s.Version)
	}
	sort.Ints(versions)
	for i, v := range versions {
		if v != i+1 {
			t.Fatalf("版本号不连续: %v", versions)
		}
	}
	if versions[len(versions)-1] != LatestVersion {
		t.Errorf("注册表最高版本 = %d, 期望 %d", versions[len(versions)-1], LatestVersion)
	}
}
