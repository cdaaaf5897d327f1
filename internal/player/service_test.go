package player

import (
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oldPeter616/xiuxianzhuan-go/internal/gamedata"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/platform/database"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/platform/migrate"
)

func setupTestDB(t *testing.T) *gamedata.Bundle {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	ref, err := gamedata.Load("")
	if err != nil {
		t.Fatalf("加载默认数据失败: %v", err)
	}
	if err := migrate.Apply(db, ref, migrate.Registry()); err != nil {
		t.Fatalf("初始化数据库失败: %v", err)
	}
	database.DB = db
	return ref
}

func TestRegisterNewPlayer(t *testing.T) {
	ref := setupTestDB(t)

	p, err := Register("u1", "张三", ref, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if p.RankIndex != 0 || p.MaxHP != 100 || p.CurrentHP != 100 ||
		p.Attack != 10 || p.Defense != 5 || p.Spirit != 5 || p.SpiritStone != 100 {
		t.Errorf("初始属性不符: %+v", p)
	}
	if p.SpiritRoot == "" {
		t.Error("灵根未分配")
	}

	// 四个装备槽位全部存在且为空
	slots := p.Equipment()
	if len(slots) != len(Slots) {
		t.Errorf("槽位数 = %d, 期望 %d", len(slots), len(Slots))
	}
	for slot, id := range slots {
		if id != "" {
			t.Errorf("槽位 %s 初始不为空: %q", slot, id)
		}
	}
}

func TestRegisterDuplicateFails(t *testing.T) {
	ref := setupTestDB(t)
	rng := rand.New(rand.NewSource(1))

	if _, err := Register("u1", "张三", ref, rng); err != nil {
		t.Fatalf("首次注册失败: %v", err)
	}
	if _, err := Register("u1", "李四", ref, rng); err != ErrPlayerExists {
		t.Errorf("重复注册应返回ErrPlayerExists, 得到 %v", err)
	}

	// 原玩家不受影响
	p, err := GetByID("u1")
	if err != nil || p == nil {
		t.Fatalf("查询失败: %v", err)
	}
	if p.Name != "张三" {
		t.Errorf("Name = %q, 重复注册不应覆盖", p.Name)
	}
}

func TestGetByIDAbsentReturnsNil(t *testing.T) {
	setupTestDB(t)

	p, err := GetByID("ghost")
	if err != nil {
		t.Fatalf("查询缺失玩家不应报错: %v", err)
	}
	if p != nil {
		t.Errorf("期望nil, 得到 %+v", p)
	}
}

func TestSignInStreak(t *testing.T) {
	ref := setupTestDB(t)
	p, err := Register("u1", "", ref, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	day1 := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	result, err := SignIn(p, day1)
	if err != nil {
		t.Fatalf("签到失败: %v", err)
	}
	if result.AlreadySigned || result.Streak != 1 {
		t.Errorf("首签 = %+v, 期望连签1天", result)
	}

	// 同一天重复签到不发奖励
	stones := p.SpiritStone
	result, err = SignIn(p, day1.Add(5*time.Hour))
	if err != nil {
		t.Fatalf("重复签到失败: %v", err)
	}
	if !result.AlreadySigned {
		t.Error("同日重复签到应被拒绝")
	}
	if p.SpiritStone != stones {
		t.Error("重复签到不应发放奖励")
	}

	// 连续第二天
	result, err = SignIn(p, day1.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("次日签到失败: %v", err)
	}
	if result.Streak != 2 {
		t.Errorf("Streak = %d, 期望 2", result.Streak)
	}

	// 断签后从头计数
	result, err = SignIn(p, day1.AddDate(0, 0, 5))
	if err != nil {
		t.Fatalf("断签后签到失败: %v", err)
	}
	if result.Streak != 1 {
		t.Errorf("Streak = %d, 断签后应重置为1", result.Streak)
	}
}

func TestSignInRewardCycle(t *testing.T) {
	ref := setupTestDB(t)
	p, err := Register("u1", "", ref, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	day := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	var lastReward int
	for i := 0; i < 7; i++ {
		result, err := SignIn(p, day.AddDate(0, 0, i))
		if err != nil {
			t.Fatalf("第%d天签到失败: %v", i+1, err)
		}
		lastReward = result.SpiritStone
	}
	// 第七天是奖励最高的一档
	if lastReward != 100 {
		t.Errorf("第七天灵石奖励 = %d, 期望 100", lastReward)
	}

	// 第八天回到第一档
	result, err := SignIn(p, day.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("第八天签到失败: %v", err)
	}
	if result.SpiritStone != 10 {
		t.Errorf("第八天灵石奖励 = %d, 期望回到 10", result.SpiritStone)
	}
	if result.Streak != 8 {
		t.Errorf("Streak = %d, 期望 8", result.Streak)
	}
}
