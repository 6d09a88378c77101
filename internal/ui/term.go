package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Term 是无图形环境下的退化实现：
// 目录选择走 stdin 提示，通知写 stderr（不污染 stdout 的 JSON 契约）。
type Term struct {
	in  io.Reader
	out io.Writer
}

// NewTerm 构造终端交互。in/out 传 nil 时使用 os.Stdin/os.Stderr。
func NewTerm(in io.Reader, out io.Writer) *Term {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stderr
	}
	return &Term{in: in, out: out}
}

func (t *Term) SelectDirectory(ctx context.Context, title string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprintf(t.out, "%s\n目录路径（回车取消）：", title)

	line, err := bufio.NewReader(t.in).ReadString('\n')
	if err != nil && line == "" {
		// EOF 且无输入：视为未选择。
		return "", nil
	}
	return strings.TrimSpace(line), nil
}

func (t *Term) Notify(kind, msg string) error {
	_, err := fmt.Fprintf(t.out, "[%s] %s\n", kind, msg)
	return err
}
