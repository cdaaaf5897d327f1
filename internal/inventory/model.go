package inventory

// Item 是背包中的一条持有记录，(user_id, item_id) 为复合主键。
// 数量为0的记录不会保留，行被直接删除。
type Item struct {
	UserID   string `gorm:"column:user_id;primaryKey" json:"user_id"`
	ItemID   string `gorm:"column:item_id;primaryKey" json:"item_id"`
	Quantity int    `gorm:"column:quantity" json:"quantity"`
}

// TableName 指定表名
func (Item) TableName() string {
	return "inventory"
}
