package provider

import (
	"fmt"
	"strings"
)

// 本工具只有两种元数据读取方式；注册表只接受这两个名字。
var knownNames = map[string]bool{
	"native":   true,
	"exiftool": true,
}

// Registry 持有已注册的元数据读取方式（native / exiftool），按小写 name 索引。
// 查找与回退顺序都从这里出：registry 是读取链路的唯一事实来源。
type Registry struct {
	byName map[string]Provider
}

// NewRegistry 注册 providers 并校验名字。
// 名字必须是 native/exiftool 之一，且不允许重复注册。
func NewRegistry(providers ...Provider) (Registry, error) {
	byName := make(map[string]Provider, len(providers))
	for _, p := range providers {
		if p == nil {
			return Registry{}, fmt.Errorf("provider 不能为空")
		}
		name := strings.ToLower(strings.TrimSpace(p.Name()))
		if !knownNames[name] {
			return Registry{}, fmt.Errorf("未知的 provider：%q（只支持 native/exiftool）", p.Name())
		}
		if _, ok := byName[name]; ok {
			return Registry{}, fmt.Errorf("重复的 provider：%q", name)
		}
		byName[name] = p
	}
	return Registry{byName: byName}, nil
}

func (r Registry) Get(name string) (Provider, bool) {
	if r.byName == nil {
		return nil, false
	}
	p, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Fallback 给出固定的读取顺序：先 requested，后另一个。
// 两种方式读的是同一份内嵌文本，回退只为容错
// （例如 exiftool 未安装，或 native 解析不了损坏的容器结构）。
func (r Registry) Fallback(requested string) ([]string, error) {
	switch strings.ToLower(strings.TrimSpace(requested)) {
	case "native":
		return []string{"native", "exiftool"}, nil
	case "exiftool":
		return []string{"exiftool", "native"}, nil
	default:
		return nil, fmt.Errorf("provider 只能是 native 或 exiftool，实际是 %q", requested)
	}
}
