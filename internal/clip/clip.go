package clip

import (
	"fmt"
	"runtime"

	"github.com/atotto/clipboard"
)

// Clipboard 支持 best-effort 的文本复制。
//
// 约束：
// - 剪贴板不可用不允许让整次运行失败：实现返回 copied=false 即可，
//   由上层决定如何向用户呈现（降级为 warning，而非假装成功）
// - Copy 整体替换剪贴板文本内容：原有内容丢失且不可恢复
type Clipboard interface {
	Copy(text string) (copied bool, err error)
}

// System 是基于系统剪贴板的实现（macOS pbcopy / Linux xclip|xsel / Windows）。
type System struct{}

func (System) Copy(text string) (bool, error) {
	if clipboard.Unsupported {
		return false, fmt.Errorf("当前平台不支持剪贴板操作：%s", runtime.GOOS)
	}
	if err := clipboard.WriteAll(text); err != nil {
		return false, err
	}
	return true, nil
}
