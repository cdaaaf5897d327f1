package sect

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/oldPeter616/xiuxianzhuan-go/internal/gamedata"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/platform/database"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/player"
	"github.com/oldPeter616/xiuxianzhuan-go/pkg/log"
	"github.com/oldPeter616/xiuxianzhuan-go/pkg/snowflake"
)

var (
	// ErrAlreadyInSect 玩家已加入宗门
	ErrAlreadyInSect = errors.New("已加入宗门")
	// ErrNotInSect 玩家未加入任何宗门
	ErrNotInSect = errors.New("尚未加入宗门")
	// ErrSectNotFound 宗门不存在
	ErrSectNotFound = errors.New("宗门不存在")
	// ErrRankTooLow 境界不满足宗门的入门要求
	ErrRankTooLow = errors.New("境界不足")
)

const timeLayout = "2006-01-02 15:04:05"

// CreateSect 自立门户：创建宗门并让创建者成为宗主。
// 宗主同时也是成员，二者绑在同一次状态变更里。
func CreateSect(p *player.Player, name string, now time.Time) (*Sect, error) {
	if p.SectID != nil {
		return nil, ErrAlreadyInSect
	}

	s := &Sect{
		ID:        fmt.Sprintf("sect_%d", snowflake.GenLogID()),
		Name:      name,
		LeaderID:  &p.UserID,
		Level:     1,
		CreatedAt: now.Format(timeLayout),
	}
	if err := Create(s); err != nil {
		return nil, err
	}

	p.SectID = &s.ID
	p.SectRole = RoleLeader
	if err := player.Update(p); err != nil {
		return nil, err
	}
	log.L.Info("创建宗门",
		zap.String("sect_id", s.ID),
		zap.String("name", name),
		zap.String("leader_id", p.UserID))
	return s, nil
}

// Join 按名称加入宗门。预置宗门有入门境界要求。
func Join(p *player.Player, ref *gamedata.Bundle, name string) (*Sect, error) {
	if p.SectID != nil {
		return nil, ErrAlreadyInSect
	}
	s, err := GetByName(name)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrSectNotFound
	}
	if seed, ok := ref.Sects[s.ID]; ok && p.RankIndex < seed.RequiredRank {
		return nil, ErrRankTooLow
	}

	p.SectID = &s.ID
	p.SectRole = RoleMember
	if err := player.Update(p); err != nil {
		return nil, err
	}
	return s, nil
}

// LeaveResult 描述一次退出宗门的结果
type LeaveResult struct {
	Sect      *Sect
	Dissolved bool
}

// Leave 退出宗门。宗主退出时宗门解散，所有成员被遣散。
func Leave(p *player.Player) (*LeaveResult, error) {
	if p.SectID == nil {
		return nil, ErrNotInSect
	}
	s, err := GetByID(*p.SectID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		// 悬挂的sect_id，直接清理
		clearMembership(p)
		return &LeaveResult{}, player.Update(p)
	}

	if s.LeaderID != nil && *s.LeaderID == p.UserID {
		members, err := player.ListBySect(s.ID)
		if err != nil {
			return nil, err
		}
		// 遣散成员和删除宗门绑在同一个事务里，不存在半解散状态
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			for i := range members {
				clearMembership(&members[i])
				if err := tx.Save(&members[i]).Error; err != nil {
					return err
				}
			}
			return tx.Where("id = ?", s.ID).Delete(&Sect{}).Error
		})
		if err != nil {
			return nil, fmt.Errorf("解散宗门失败: %w", err)
		}
		// 成员行已逐个写回，这里只同步调用方手里的内存副本
		clearMembership(p)
		log.L.Info("宗门解散",
			zap.String("sect_id", s.ID),
			zap.Int("members", len(members)))
		return &LeaveResult{Sect: s, Dissolved: true}, nil
	}

	clearMembership(p)
	if err := player.Update(p); err != nil {
		return nil, err
	}
	return &LeaveResult{Sect: s}, nil
}

func clearMembership(p *player.Player) {
	p.SectID = nil
	p.SectRole = ""
}

// Members 返回宗门的全部成员
func Members(sectID string) ([]player.Player, error) {
	return player.ListBySect(sectID)
}

// AddExperience 为宗门累积经验，每1000点经验提升1级
func AddExperience(s *Sect, amount int) error {
	if amount <= 0 {
		return nil
	}
	s.Experience += amount
	for s.Experience >= s.Level*1000 {
		s.Experience -= s.Level * 1000
		s.Level++
	}
	return Update(s)
}
