package domain

import (
	"encoding/json"
	"time"
)

const (
	StatusFound      = "found"
	StatusNoSeed     = "no_seed"
	StatusUnreadable = "unreadable"
	StatusFailed     = "failed"
)

const (
	ErrCodeNoLabel       = "no_label"
	ErrCodeReadFailed    = "read_failed"
	ErrCodeScanFailed    = "scan_failed"
	ErrCodeNoDirectory   = "no_directory"
	ErrCodeConfigInvalid = "config_invalid"
)

const (
	ClipboardCopied = "copied"
	ClipboardFailed = "failed"
	ClipboardOff    = "off"  // copy=false：按配置跳过写入
	ClipboardNone   = "none" // 输出为空：剪贴板保持原状
)

// RunReport 是对外稳定输出（report 文件 / stdout JSON）的结构。
type RunReport struct {
	Path     string `json:"path"`
	Provider string `json:"provider"`

	// Output 是最终的逗号连接输出串；为空表示本次运行未收集到任何种子。
	Output string `json:"output"`
	// Clipboard 记录剪贴板投递结果（copied/failed/off/none）。
	// failed 时 ClipboardError 给出原因：写入失败显式呈现，不假装成功。
	Clipboard      string `json:"clipboard"`
	ClipboardError string `json:"clipboard_error,omitempty"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Summary ReportSummary `json:"summary"`
	Items   []ItemResult  `json:"items"`
}

type ReportSummary struct {
	Files      int `json:"files"`
	Found      int `json:"found"`
	NoSeed     int `json:"no_seed"`
	Unreadable int `json:"unreadable"`
	Failed     int `json:"failed"`
}

type ItemResult struct {
	Src          string `json:"src"`
	Size         int64  `json:"size"`
	ProviderUsed string `json:"provider_used"`

	Status string `json:"status"`
	Seed   string `json:"seed"`

	ErrorCode string `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// Finalize 做两件事：
// 1) 时间统一为 UTC（确保 JSON 为 RFC3339 且后缀 Z）
// 2) summary 由 items 计算得出
//
// 注意：items 不排序。聚合契约要求条目保持发现顺序，
// 输出串的值顺序必须与 items 中 found 条目的顺序一致。
func (r *RunReport) Finalize() {
	r.StartedAt = r.StartedAt.UTC()
	r.FinishedAt = r.FinishedAt.UTC()

	var s ReportSummary
	for _, it := range r.Items {
		switch it.Status {
		case StatusFound:
			s.Files++
			s.Found++
		case StatusNoSeed:
			s.Files++
			s.NoSeed++
		case StatusUnreadable:
			s.Files++
			s.Unreadable++
		case StatusFailed:
			s.Failed++
		}
	}
	r.Summary = s
}

// Fatal 判断本次运行是否属于“未进入提取阶段的致命失败”
// （未选择目录 / 扫描失败 / 配置无效）。上层据此决定非零退出码；
// “一个种子都没找到”不算 fatal（运行本身成功，退出码仍为 0）。
func (r *RunReport) Fatal() bool {
	for _, it := range r.Items {
		if it.Status != StatusFailed {
			continue
		}
		switch it.ErrorCode {
		case ErrCodeNoDirectory, ErrCodeScanFailed, ErrCodeConfigInvalid:
			return true
		}
	}
	return false
}

// MarshalJSON 仅用于集中约束输出的稳定性（避免未来不小心引入非确定字段）。
// 当前只是透传 encoding/json 的默认行为。
func (r RunReport) MarshalJSON() ([]byte, error) {
	type Alias RunReport
	return json.Marshal(Alias(r))
}
