package player

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PlayerResponse 是后台接口返回的玩家视图
type PlayerResponse struct {
	UserID      string            `json:"userId"`
	Name        string            `json:"name"`
	RankIndex   int               `json:"rankIndex"`
	SpiritRoot  string            `json:"spiritRoot"`
	MaxHP       int               `json:"maxHp"`
	CurrentHP   int               `json:"currentHp"`
	Attack      int               `json:"attack"`
	Defense     int               `json:"defense"`
	Speed       int               `json:"speed"`
	Spirit      int               `json:"spirit"`
	SpiritStone int               `json:"spiritStone"`
	SectID      *string           `json:"sectId"`
	SectRole    string            `json:"sectRole"`
	Techniques  []string          `json:"techniques"`
	Equipment   map[string]string `json:"equipment"`
}

func toResponse(p *Player) PlayerResponse {
	techniques := p.Techniques()
	if techniques == nil {
		techniques = []string{}
	}
	return PlayerResponse{
		UserID:      p.UserID,
		Name:        p.Name,
		RankIndex:   p.RankIndex,
		SpiritRoot:  p.SpiritRoot,
		MaxHP:       p.MaxHP,
		CurrentHP:   p.CurrentHP,
		Attack:      p.Attack,
		Defense:     p.Defense,
		Speed:       p.Speed,
		Spirit:      p.Spirit,
		SpiritStone: p.SpiritStone,
		SectID:      p.SectID,
		SectRole:    p.SectRole,
		Techniques:  techniques,
		Equipment:   p.Equipment(),
	}
}

// ListPlayersHandler 返回全部玩家
func ListPlayersHandler(c *gin.Context) {
	players, err := List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询玩家列表失败"})
		return
	}
	responses := make([]PlayerResponse, 0, len(players))
	for i := range players {
		responses = append(responses, toResponse(&players[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// GetPlayerHandler 按user_id返回单个玩家
func GetPlayerHandler(c *gin.Context) {
	p, err := GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询玩家失败"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "玩家不存在"})
		return
	}
	c.JSON(http.StatusOK, toResponse(p))
}
