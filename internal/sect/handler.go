package sect

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oldPeter616/xiuxianzhuan-go/internal/player"
)

// SectResponse 是后台接口返回的宗门视图
type SectResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	LeaderID    *string `json:"leaderId"`
	Level       int     `json:"level"`
	Experience  int     `json:"experience"`
	CreatedAt   string  `json:"createdAt"`
	MemberCount int64   `json:"memberCount"`
}

// ListSectsHandler 返回全部宗门及各自的成员数
func ListSectsHandler(c *gin.Context) {
	sects, err := List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询宗门列表失败"})
		return
	}
	responses := make([]SectResponse, 0, len(sects))
	for i := range sects {
		s := &sects[i]
		count, err := player.CountBySect(s.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "统计宗门成员失败"})
			return
		}
		responses = append(responses, SectResponse{
			ID:          s.ID,
			Name:        s.Name,
			LeaderID:    s.LeaderID,
			Level:       s.Level,
			Experience:  s.Experience,
			CreatedAt:   s.CreatedAt,
			MemberCount: count,
		})
	}
	c.JSON(http.StatusOK, responses)
}

// GetSectHandler 按ID返回宗门与成员列表
func GetSectHandler(c *gin.Context) {
	s, err := GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询宗门失败"})
		return
	}
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "宗门不存在"})
		return
	}
	members, err := Members(s.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询宗门成员失败"})
		return
	}
	memberIDs := make([]string, 0, len(members))
	for i := range members {
		memberIDs = append(memberIDs, members[i].UserID)
	}
	c.JSON(http.StatusOK, gin.H{
		"sect": SectResponse{
			ID:          s.ID,
			Name:        s.Name,
			LeaderID:    s.LeaderID,
			Level:       s.Level,
			Experience:  s.Experience,
			CreatedAt:   s.CreatedAt,
			MemberCount: int64(len(members)),
		},
		"members": memberIDs,
	})
}
