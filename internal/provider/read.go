package provider

import (
	"context"
	"fmt"
	"strings"
)

// Attempt 记录一次 provider 尝试（用于解释 fallback/降级原因）。
// 注意：这是内部执行轨迹，不直接写入 report（由上层决定如何呈现）。
type Attempt struct {
	Provider string // provider name（小写）
	Stage    string // "read" / "ok"
	Err      error  // nil when Stage=="ok"
}

// Error 是 provider 阶段的可追溯错误。
type Error struct {
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s 读取失败：%v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ReadText 按“requested -> fallback”顺序尝试读取参数文本块。
//
// 返回值：
// - text：读到的参数文本（可能为空串——文件可读但没有内嵌文本）
// - providerUsed：最终成功的 provider name
func ReadText(ctx context.Context, reg Registry, providerRequested string, path string) (text string, providerUsed string, err error) {
	text, providerUsed, _, err = ReadTextTrace(ctx, reg, providerRequested, path)
	return text, providerUsed, err
}

// ReadTextTrace 与 ReadText 相同，但额外返回尝试链路（用于解释回退原因）。
func ReadTextTrace(ctx context.Context, reg Registry, providerRequested string, path string) (text string, providerUsed string, attempts []Attempt, err error) {
	providerRequested = strings.ToLower(strings.TrimSpace(providerRequested))
	if providerRequested == "" {
		return "", "", nil, fmt.Errorf("provider_requested 不能为空")
	}
	if strings.TrimSpace(path) == "" {
		return "", "", nil, fmt.Errorf("path 不能为空")
	}

	order, err := reg.Fallback(providerRequested)
	if err != nil {
		return "", "", nil, err
	}

	var lastErr error
	for _, name := range order {
		p, ok := reg.Get(name)
		if !ok {
			lastErr = fmt.Errorf("provider 未注册：%q", name)
			attempts = append(attempts, Attempt{Provider: name, Stage: "read", Err: lastErr})
			continue
		}

		t, rerr := p.Read(ctx, path)
		if rerr != nil {
			lastErr = &Error{Provider: name, Err: rerr}
			attempts = append(attempts, Attempt{Provider: name, Stage: "read", Err: rerr})
			continue
		}

		attempts = append(attempts, Attempt{Provider: name, Stage: "ok", Err: nil})
		return t, name, attempts, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("无可用 provider")
	}
	return "", "", attempts, lastErr
}
