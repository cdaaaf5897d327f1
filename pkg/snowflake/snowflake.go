package snowflake

import "github.com/bwmarrin/snowflake"

var node *snowflake.Node

func init() {
	node, _ = snowflake.NewNode(1)
}

// GenLogID 生成战斗日志等记录使用的全局唯一ID
func GenLogID() int64 {
	return node.Generate().Int64()
}
