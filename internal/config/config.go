package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// ErrCodeInvalid 表示配置文件无法读取/解析，或字段不合法。
	ErrCodeInvalid = "config_invalid"
)

const (
	// DefaultProvider 是元数据读取方式的最终默认值（当 CLI 与配置文件都未指定时）。
	// native 不依赖外部二进制，开箱即用。
	DefaultProvider = "native"
	// DefaultConcurrency 是提取并发的内置默认值（当配置未指定时）。
	DefaultConcurrency = 4
	// DefaultTimeout 是单文件读取超时的内置默认值。
	// 超时按“该文件无种子”处理，不中断整次运行。
	DefaultTimeout = 10 * time.Second
)

// CLIArgs 只包含 CLI 暴露的入口，并保留“是否显式指定”的信息。
// 这能保证覆盖优先级可实现：例如 --copy=false 必须能覆盖 config.copy=true。
type CLIArgs struct {
	Path string

	Provider    string
	ProviderSet bool

	Copy    bool
	CopySet bool
}

// FileConfig 对应 seedcollect.json 的解析结构。
type FileConfig struct {
	Path        string   `json:"path"`
	Provider    string   `json:"provider"`
	Copy        *bool    `json:"copy"`
	Concurrency int      `json:"concurrency"`
	TimeoutMS   int      `json:"timeout_ms"`
	Notify      string   `json:"notify"`
	ExcludeDirs []string `json:"exclude_dirs"`
}

// EffectiveConfig 是合并并做最小规范化后的最终配置
// （实现层直接消费，不再做二次默认/优先级判断）。
type EffectiveConfig struct {
	// Path 为空表示尚未确定目标目录：运行层会走交互式目录选择。
	Path string

	Provider string
	Copy     bool

	Concurrency int
	Timeout     time.Duration
	Notify      string
	ExcludeDirs []string
}

// Error 是配置阶段的结构化错误（带 error_code）。
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s：配置文件 %q 无效：%v", e.Code, e.Path, e.Err)
	}
	return fmt.Sprintf("%s：配置文件 %q 无效", e.Code, e.Path)
}

func (e *Error) Unwrap() error { return e.Err }

// Code 从 error 中提取 error_code；若不是 *Error 则返回空串。
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// LoadEffective 按约定发现并读取配置文件，然后与 CLI 参数合并为最终配置。
//
// 发现规则（固定）：
// 1) CLI 提供 path：尝试读取 <path>/seedcollect.json（可选）
// 2) CLI 未提供 path：尝试读取 <cwd>/seedcollect.json（可选，其中的 path 字段可补全目标目录）
// 3) 两处都没有 path：EffectiveConfig.Path 为空，由运行层弹出目录选择
//
// 覆盖优先级（固定）：
// - path：CLI path > config path >（交互选择）
// - provider：CLI > config > 默认 native
// - copy：CLI --copy/--copy=false > config > 默认 true
// - 其他字段：仅由 config 控制（CLI 不暴露）
func LoadEffective(cwd string, cli CLIArgs) (EffectiveConfig, error) {
	cwdAbs, err := filepath.Abs(cwd)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cwd, Err: err}
	}

	if strings.TrimSpace(cli.Path) != "" {
		// CLI 给了 path：配置文件可选，位置固定在 <path>/seedcollect.json。
		absPath := absCleanFrom(cwdAbs, cli.Path)
		cfgPath := filepath.Join(absPath, "seedcollect.json")

		fc, _, err := readFileConfig(cfgPath)
		if err != nil {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
		}
		return merge(absPath, cli, fc, cfgPath)
	}

	// CLI 没给 path：<cwd>/seedcollect.json 同样可选。
	cfgPath := filepath.Join(cwdAbs, "seedcollect.json")
	fc, exists, err := readFileConfig(cfgPath)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}

	absPath := ""
	if exists && strings.TrimSpace(fc.Path) != "" {
		absPath = absCleanFrom(cwdAbs, fc.Path)
	}
	return merge(absPath, cli, fc, cfgPath)
}

func merge(absPath string, cli CLIArgs, fc FileConfig, cfgPath string) (EffectiveConfig, error) {
	// provider：CLI > config > 默认
	provider := DefaultProvider
	if cli.ProviderSet {
		provider = cli.Provider
	} else if strings.TrimSpace(fc.Provider) != "" {
		provider = fc.Provider
	}
	if err := validateProvider(provider); err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}

	// copy：CLI > config > 默认 true（写剪贴板是这个工具存在的意义）
	copyOut := true
	if cli.CopySet {
		copyOut = cli.Copy
	} else if fc.Copy != nil {
		copyOut = *fc.Copy
	}

	concurrency := fc.Concurrency
	if concurrency == 0 {
		concurrency = DefaultConcurrency
	}
	// 范围建议 [1, 32]；超出截断。
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > 32 {
		concurrency = 32
	}

	timeout := DefaultTimeout
	if fc.TimeoutMS != 0 {
		if fc.TimeoutMS < 0 {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("timeout_ms 不能为负数：%d", fc.TimeoutMS)}
		}
		timeout = time.Duration(fc.TimeoutMS) * time.Millisecond
	}

	notify := strings.TrimSpace(fc.Notify)
	if notify == "" {
		notify = "auto"
	}
	switch notify {
	case "auto", "dialog", "stderr":
		// ok
	default:
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("notify 只能是 auto/dialog/stderr，实际是 %q", notify)}
	}

	return EffectiveConfig{
		Path:        absPath,
		Provider:    strings.ToLower(strings.TrimSpace(provider)),
		Copy:        copyOut,
		Concurrency: concurrency,
		Timeout:     timeout,
		Notify:      notify,
		ExcludeDirs: append([]string(nil), fc.ExcludeDirs...),
	}, nil
}

func validateProvider(p string) error {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "native", "exiftool":
		return nil
	case "":
		return fmt.Errorf("provider 不能为空")
	default:
		return fmt.Errorf("provider 只能是 native 或 exiftool，实际是 %q", p)
	}
}

// absCleanFrom 以 base 为基准，把 p 变为 clean + absolute。
// - p 若已是绝对路径：直接 Clean
// - p 若是相对路径：Join(base, p) 后 Clean
func absCleanFrom(base, p string) string {
	p = filepath.Clean(strings.TrimSpace(p))
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(filepath.Join(base, p))
}

// readFileConfig 读取并解析 JSON 配置文件。
// 返回值 exists 表示该文件是否存在（不存在不算错误——配置整体可选）。
func readFileConfig(path string) (fc FileConfig, exists bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, false, nil
		}
		return FileConfig{}, false, err
	}
	if err := json.Unmarshal(b, &fc); err != nil {
		return FileConfig{}, true, err
	}
	return fc, true, nil
}
