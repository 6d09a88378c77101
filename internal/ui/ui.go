package ui

import "context"

const (
	NoticeInfo  = "info"
	NoticeWarn  = "warning"
	NoticeError = "error"
)

// Interactor 把“目录选择 + 结果通知”从核心流程中解耦出来，
// 使提取/聚合逻辑可以在无交互依赖的情况下独立测试。
//
// 约束：
// - SelectDirectory 返回空串表示用户未选择（取消也算未选择，不是错误）
// - Notify 是 best-effort：通知失败不应影响运行结果
type Interactor interface {
	SelectDirectory(ctx context.Context, title string) (string, error)
	Notify(kind, msg string) error
}

// Pick 根据配置选择交互实现。
//
// - "dialog"：强制使用图形对话框（不可用则退化为终端）
// - "stderr"：强制使用终端
// - "auto"：有可用对话框工具且处于图形会话时用对话框，否则终端
func Pick(mode string) Interactor {
	switch mode {
	case "stderr":
		return NewTerm(nil, nil)
	case "dialog", "auto":
		if d, ok := DetectDialog(); ok && (mode == "dialog" || inGraphicalSession()) {
			return d
		}
		return NewTerm(nil, nil)
	default:
		return NewTerm(nil, nil)
	}
}
