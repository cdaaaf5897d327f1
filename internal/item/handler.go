package item

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oldPeter616/xiuxianzhuan-go/internal/platform/database"
)

// ListItemsHandler 返回全部物品模板，装备带强化等级一并返回
func ListItemsHandler(c *gin.Context) {
	var items []Item
	if err := database.DB.Order("item_id").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询物品列表失败"})
		return
	}
	var equipments []Equipment
	if err := database.DB.Order("id").Find(&equipments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询装备列表失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"equipments": equipments,
	})
}
