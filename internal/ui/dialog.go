package ui

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Dialog 通过外部对话框工具实现交互：
// macOS 用 osascript，Linux 优先 zenity、次选 kdialog。
type Dialog struct {
	tool string // "zenity" | "kdialog" | "osascript"
}

// DetectDialog 探测当前系统可用的对话框工具。
func DetectDialog() (*Dialog, bool) {
	if runtime.GOOS == "darwin" {
		if _, err := exec.LookPath("osascript"); err == nil {
			return &Dialog{tool: "osascript"}, true
		}
		return nil, false
	}
	for _, tool := range []string{"zenity", "kdialog"} {
		if _, err := exec.LookPath(tool); err == nil {
			return &Dialog{tool: tool}, true
		}
	}
	return nil, false
}

func inGraphicalSession() bool {
	if runtime.GOOS == "darwin" {
		return true
	}
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

func (d *Dialog) SelectDirectory(ctx context.Context, title string) (string, error) {
	var cmd *exec.Cmd
	switch d.tool {
	case "zenity":
		cmd = exec.CommandContext(ctx, "zenity", "--file-selection", "--directory", "--title", title)
	case "kdialog":
		cmd = exec.CommandContext(ctx, "kdialog", "--getexistingdirectory", ".", "--title", title)
	case "osascript":
		script := `POSIX path of (choose folder with prompt "` + escapeAppleScript(title) + `")`
		cmd = exec.CommandContext(ctx, "osascript", "-e", script)
	default:
		return "", errors.New("未知的对话框工具：" + d.tool)
	}

	out, err := cmd.Output()
	if err != nil {
		// 对话框工具用退出码 1 表示用户取消：这是“未选择”，不是错误。
		var ee *exec.ExitError
		if errors.As(err, &ee) && ee.ExitCode() == 1 {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func (d *Dialog) Notify(kind, msg string) error {
	var cmd *exec.Cmd
	switch d.tool {
	case "zenity":
		flag := "--info"
		switch kind {
		case NoticeWarn:
			flag = "--warning"
		case NoticeError:
			flag = "--error"
		}
		cmd = exec.Command("zenity", flag, "--text", msg)
	case "kdialog":
		flag := "--msgbox"
		switch kind {
		case NoticeWarn:
			flag = "--sorry"
		case NoticeError:
			flag = "--error"
		}
		cmd = exec.Command("kdialog", flag, msg)
	case "osascript":
		icon := "note"
		switch kind {
		case NoticeWarn:
			icon = "caution"
		case NoticeError:
			icon = "stop"
		}
		script := `display dialog "` + escapeAppleScript(msg) + `" buttons {"OK"} default button 1 with icon ` + icon
		cmd = exec.Command("osascript", "-e", script)
	default:
		return errors.New("未知的对话框工具：" + d.tool)
	}
	// 阻塞到用户关闭对话框为止。
	return cmd.Run()
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}
