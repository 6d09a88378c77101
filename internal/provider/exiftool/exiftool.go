package exiftool

import (
	"context"
	"fmt"
	"strings"
	"sync"

	exiftool "github.com/barasher/go-exiftool"
)

// 可能承载生成参数文本的字段（按优先级）。
// PNG 的 tEXt parameters 会被 exiftool 暴露为 "Parameters"。
var textFields = []string{
	"Parameters",
	"UserComment",
	"ImageDescription",
	"Comment",
	"XPComment",
}

// Provider 通过 exiftool 外部进程读取元数据（stay-open 模式，进程复用）。
//
// 约束：
// - exiftool 句柄不是并发安全的：Read 内部用互斥锁串行化
// - 句柄按需创建：exiftool 未安装只在真正选用该 provider 时才失败，
//   默认的 native 路径不要求系统装有 exiftool
type Provider struct {
	mu sync.Mutex
	et *exiftool.Exiftool
}

func New() *Provider { return &Provider{} }

func (p *Provider) Name() string { return "exiftool" }

func (p *Provider) Read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.et == nil {
		et, err := exiftool.NewExiftool()
		if err != nil {
			return "", fmt.Errorf("初始化 exiftool 失败（是否已安装？）：%w", err)
		}
		p.et = et
	}

	fms := p.et.ExtractMetadata(path)
	if len(fms) == 0 {
		return "", fmt.Errorf("exiftool 未返回任何结果：%q", path)
	}
	fm := fms[0]
	if fm.Err != nil {
		return "", fm.Err
	}

	var parts []string
	for _, key := range textFields {
		v, err := fm.GetString(key)
		if err != nil {
			continue // 字段缺失是常态
		}
		if s := strings.TrimSpace(v); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n"), nil
}

// Close 结束 stay-open 的 exiftool 进程。未初始化时为 no-op。
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.et == nil {
		return nil
	}
	err := p.et.Close()
	p.et = nil
	return err
}
