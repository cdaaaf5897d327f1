package cultivation

import (
	"math/rand"

	"github.com/oldPeter616/xiuxianzhuan-go/internal/gamedata"
)

// ResolveLoot 结算掉落表。
// 每一项独立判定，互不排斥，可能一次全掉也可能一件不掉。
func ResolveLoot(drops []gamedata.DropEntry, rng *rand.Rand) []string {
	var items []string
	for _, entry := range drops {
		if rng.Float64() < entry.Probability {
			items = append(items, entry.ItemID)
		}
	}
	return items
}
