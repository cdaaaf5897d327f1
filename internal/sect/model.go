package sect

// 宗门内的角色
const (
	RoleLeader = "leader"
	RoleMember = "member"
)

// Sect 定义了宗门在SQLite数据库中的持久化模型
type Sect struct {
	ID         string  `gorm:"column:id;primaryKey" json:"id"`
	Name       string  `gorm:"column:name" json:"name"`
	LeaderID   *string `gorm:"column:leader_id" json:"leader_id"`
	Level      int     `gorm:"column:level" json:"level"`
	Experience int     `gorm:"column:experience" json:"experience"`
	CreatedAt  string  `gorm:"column:created_at" json:"created_at"`
}

// TableName 指定表名
func (Sect) TableName() string {
	return "sects"
}
