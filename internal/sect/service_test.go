package sect

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
	"github.com/oldPeter616/xiuxianzhuan-go/internal/player"
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

func registerPlayer(t *testing.T, ref *gamedata.Bundle, userID string) *player.Player {
	t.Helper()
	p, err := player.Register(userID, "", ref, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("注册玩家 %s 失败: %v", userID, err)
	}
	return p
}

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

// 创建者同时成为宗主和成员
func TestCreateSectLeaderIsMember(t *testing.T) {
	ref := setupTestDB(t)
	p := registerPlayer(t, ref, "u1")

	s, err := CreateSect(p, "天剑宗", testNow)
	if err != nil {
		t.Fatalf("创建宗门失败: %v", err)
	}
	if s.LeaderID == nil || *s.LeaderID != "u1" {
		t.Errorf("LeaderID = %v, 期望 u1", s.LeaderID)
	}
	if p.SectID == nil || *p.SectID != s.ID || p.SectRole != RoleLeader {
		t.Errorf("创建者状态 = (%v, %q), 期望宗主身份", p.SectID, p.SectRole)
	}

	members, err := Members(s.ID)
	if err != nil {
		t.Fatalf("查询成员失败: %v", err)
	}
	if len(members) != 1 || members[0].UserID != "u1" {
		t.Errorf("成员 = %+v, 宗主必须同时是成员", members)
	}
}

func TestCreateSectDuplicateNameRejected(t *testing.T) {
	ref := setupTestDB(t)
	p1 := registerPlayer(t, ref, "u1")
	p2 := registerPlayer(t, ref, "u2")

	if _, err := CreateSect(p1, "天剑宗", testNow); err != nil {
		t.Fatalf("创建宗门失败: %v", err)
	}
	if _, err := CreateSect(p2, "天剑宗", testNow); err != ErrSectExists {
		t.Errorf("重名创建应返回ErrSectExists, 得到 %v", err)
	}
}

func TestJoinSeededSectRequiresRank(t *testing.T) {
	ref := setupTestDB(t)
	p := registerPlayer(t, ref, "u1")

	// 预置宗门青云门要求境界2，新玩家境界0
	if _, err := Join(p, ref, "青云门"); err != ErrRankTooLow {
		t.Fatalf("境界不足应被拒绝, 得到 %v", err)
	}
	if p.SectID != nil {
		t.Error("加入失败不应改变玩家状态")
	}

	p.RankIndex = 2
	s, err := Join(p, ref, "青云门")
	if err != nil {
		t.Fatalf("加入宗门失败: %v", err)
	}
	if p.SectID == nil || *p.SectID != s.ID || p.SectRole != RoleMember {
		t.Errorf("成员状态 = (%v, %q), 期望普通成员", p.SectID, p.SectRole)
	}

	// 已有宗门时不能重复加入
	if _, err := Join(p, ref, "合欢宗"); err != ErrAlreadyInSect {
		t.Errorf("重复加入应返回ErrAlreadyInSect, 得到 %v", err)
	}
}

func TestLeaveAsMember(t *testing.T) {
	ref := setupTestDB(t)
	leader := registerPlayer(t, ref, "u1")
	member := registerPlayer(t, ref, "u2")

	s, err := CreateSect(leader, "天剑宗", testNow)
	if err != nil {
		t.Fatalf("创建宗门失败: %v", err)
	}
	if _, err := Join(member, ref, "天剑宗"); err != nil {
		t.Fatalf("加入宗门失败: %v", err)
	}

	result, err := Leave(member)
	if err != nil {
		t.Fatalf("退出宗门失败: %v", err)
	}
	if result.Dissolved {
		t.Error("普通成员退出不应解散宗门")
	}
	if member.SectID != nil {
		t.Error("退出后成员状态未清理")
	}

	remaining, err := GetByID(s.ID)
	if err != nil || remaining == nil {
		t.Fatalf("宗门应仍然存在: %v, %v", remaining, err)
	}
}

// 宗主退出时宗门解散，全部成员被遣散
func TestLeaveAsLeaderDissolvesSect(t *testing.T) {
	ref := setupTestDB(t)
	leader := registerPlayer(t, ref, "u1")
	member := registerPlayer(t, ref, "u2")

	s, err := CreateSect(leader, "天剑宗", testNow)
	if err != nil {
		t.Fatalf("创建宗门失败: %v", err)
	}
	if _, err := Join(member, ref, "天剑宗"); err != nil {
		t.Fatalf("加入宗门失败: %v", err)
	}

	result, err := Leave(leader)
	if err != nil {
		t.Fatalf("宗主退出失败: %v", err)
	}
	if !result.Dissolved {
		t.Fatal("宗主退出应解散宗门")
	}

	gone, err := GetByID(s.ID)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if gone != nil {
		t.Error("解散后宗门仍然存在")
	}

	// 所有成员的归属都被清理
	for _, userID := range []string{"u1", "u2"} {
		p, err := player.GetByID(userID)
		if err != nil || p == nil {
			t.Fatalf("查询玩家失败: %v", err)
		}
		if p.SectID != nil || p.SectRole != "" {
			t.Errorf("玩家 %s 的宗门归属未清理: (%v, %q)", userID, p.SectID, p.SectRole)
		}
	}
}

// 解散中途失败时，已遣散的成员必须随失败一起回滚
func TestLeaveAsLeaderIsAtomic(t *testing.T) {
	ref := setupTestDB(t)
	leader := registerPlayer(t, ref, "u1")
	member := registerPlayer(t, ref, "u2")

	if _, err := CreateSect(leader, "天剑宗", testNow); err != nil {
		t.Fatalf("创建宗门失败: %v", err)
	}
	if _, err := Join(member, ref, "天剑宗"); err != nil {
		t.Fatalf("加入宗门失败: %v", err)
	}

	// 让宗门删除在成员遣散之后失败
	err := database.DB.Exec(`CREATE TRIGGER block_sect_delete BEFORE DELETE ON sects
		BEGIN SELECT RAISE(ABORT, '删除被阻止'); END`).Error
	if err != nil {
		t.Fatalf("创建触发器失败: %v", err)
	}

	if _, err := Leave(leader); err == nil {
		t.Fatal("期望解散失败")
	}

	for _, userID := range []string{"u1", "u2"} {
		p, err := player.GetByID(userID)
		if err != nil || p == nil {
			t.Fatalf("查询玩家失败: %v", err)
		}
		if p.SectID == nil || p.SectRole == "" {
			t.Errorf("玩家 %s 在解散失败后不应被遣散: (%v, %q)", userID, p.SectID, p.SectRole)
		}
	}
}

func TestLeaveWithoutSect(t *testing.T) {
	ref := setupTestDB(t)
	p := registerPlayer(t, ref, "u1")

	if _, err := Leave(p); err != ErrNotInSect {
		t.Errorf("未加入宗门时退出应返回ErrNotInSect, 得到 %v", err)
	}
}

func TestAddExperienceLevelsUp(t *testing.T) {
	ref := setupTestDB(t)
	p := registerPlayer(t, ref, "u1")
	s, err := CreateSect(p, "天剑宗", testNow)
	if err != nil {
		t.Fatalf("创建宗门失败: %v", err)
	}

	if err := AddExperience(s, 1500); err != nil {
		t.Fatalf("累积经验失败: %v", err)
	}
	if s.Level != 2 || s.Experience != 500 {
		t.Errorf("(Level, Experience) = (%d, %d), 期望 (2, 500)", s.Level, s.Experience)
	}
}
