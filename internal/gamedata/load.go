package gamedata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/oldPeter616/xiuxianzhuan-go/pkg/log"
)

// Load 构建静态数据包：先装入内置默认数据，再用dataDir下的JSON文件逐项覆盖。
// 文件不存在不算错误，文件内容非法会中止加载。
func Load(dataDir string) (*Bundle, error) {
	b := &Bundle{
		Ranks:       defaultRanks(),
		SpiritRoots: defaultSpiritRoots(),
		Items:       defaultItems(),
		Equipments:  defaultEquipments(),
		Techniques:  defaultTechniques(),
		Monsters:    defaultMonsters(),
		Sects:       defaultSects(),
	}

	if dataDir == "" {
		return b, nil
	}

	// 境界表是顶层JSON数组，其余文件是以ID为键的JSON对象
	if err := loadFile(dataDir, "level_config.json", &b.Ranks); err != nil {
		return nil, err
	}
	if err := loadFile(dataDir, "items.json", &b.Items); err != nil {
		return nil, err
	}
	if err := loadFile(dataDir, "equipments.json", &b.Equipments); err != nil {
		return nil, err
	}
	if err := loadFile(dataDir, "gongfas.json", &b.Techniques); err != nil {
		return nil, err
	}
	if err := loadFile(dataDir, "monsters.json", &b.Monsters); err != nil {
		return nil, err
	}
	if err := loadFile(dataDir, "sects.json", &b.Sects); err != nil {
		return nil, err
	}

	// 模板键与模板自带的ID保持一致
	fillIDs(b)

	return b, nil
}

// loadFile 读取并解析单个数据文件，文件缺失时保留默认值
func loadFile(dir, name string, out interface{}) error {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("无法读取数据文件 %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("解析数据文件 %s 失败: %w", name, err)
	}
	log.L.Info("已加载数据文件", zap.String("file", name))
	return nil
}

func fillIDs(b *Bundle) {
	for id, t := range b.Items {
		if t.ID == "" {
			t.ID = id
			b.Items[id] = t
		}
	}
	for id, t := range b.Equipments {
		if t.ID == "" {
			t.ID = id
			b.Equipments[id] = t
		}
	}
	for id, t := range b.Techniques {
		if t.ID == "" {
			t.ID = id
			b.Techniques[id] = t
		}
	}
	for id, t := range b.Monsters {
		if t.ID == "" {
			t.ID = id
			b.Monsters[id] = t
		}
	}
	for id, t := range b.Sects {
		if t.ID == "" {
			t.ID = id
			b.Sects[id] = t
		}
	}
}
