package startup

import (
	"github.com/oldPeter616/xiuxianzhuan-go/internal/gamedata"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/item"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/leaderboard"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/platform/database"
	"github.com/oldPeter616/xiuxianzhuan-go/internal/platform/migrate"
	"github.com/oldPeter616/xiuxianzhuan-go/pkg/log"
)

// InitializeApplication 是应用首次启动时执行的总入口。
// 先把数据库迁移到最新版本，再补齐参考数据，最后预热Redis排行榜。
func InitializeApplication(ref *gamedata.Bundle) error {
	log.L.Info("开始应用初始化...")

	if err := migrate.Apply(database.DB, ref, migrate.Registry()); err != nil {
		return err
	}
	if err := item.Sync(ref); err != nil {
		return err
	}
	if err := leaderboard.Warmup(); err != nil {
		return err
	}

	log.L.Info("应用初始化完成")
	return nil
}
