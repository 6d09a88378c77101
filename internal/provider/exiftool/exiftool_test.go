package exiftool

import (
	"context"
	"testing"
)

func TestProvider_Name(t *testing.T) {
	if got := New().Name(); got != "exiftool" {
		t.Fatalf("期望 exiftool，实际 %q", got)
	}
}

func TestProvider_CloseWithoutInit(t *testing.T) {
	p := New()
	if err := p.Close(); err != nil {
		t.Fatalf("未初始化的 Close 应为 no-op：%v", err)
	}
}

func TestProvider_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().Read(ctx, "/tmp/x.png"); err == nil {
		t.Fatalf("已取消的 ctx 期望错误，实际 nil")
	}
}
