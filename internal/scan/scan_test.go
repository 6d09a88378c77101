package scan

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestScanImages_OnlyImageExtensions(t *testing.T) {
	root := t.TempDir()

	touch(t, filepath.Join(root, "in", "a.png"))
	touch(t, filepath.Join(root, "in", "b.jpg"))
	touch(t, filepath.Join(root, "in", "c.txt"))
	touch(t, filepath.Join(root, "in", "d.gif"))

	got, err := ScanImages(root, nil)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if len(got) != 2 {
		t.Fatalf("期望 2 个候选，实际 %d", len(got))
	}
	// 稳定顺序：按 RelPath 字典序。
	if got[0].RelPath != filepath.Join("in", "a.png") || got[1].RelPath != filepath.Join("in", "b.jpg") {
		t.Fatalf("顺序不符合契约：%q, %q", got[0].RelPath, got[1].RelPath)
	}
}

func TestScanImages_ExtCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "IMAGE.PNG"))
	touch(t, filepath.Join(root, "photo.JpEg"))
	touch(t, filepath.Join(root, "scan.BMP"))

	got, err := ScanImages(root, nil)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if len(got) != 3 {
		t.Fatalf("期望 3 个候选，实际 %d", len(got))
	}
	if got[0].Ext != ".png" {
		t.Fatalf("期望 ext=.png，实际=%q", got[0].Ext)
	}
	if got[0].Size != 1 { // touch 固定写入 1 字节
		t.Fatalf("期望 size=1，实际=%d", got[0].Size)
	}
}

func TestScanImages_UnreadableSubdirIsSkipped(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("权限模型不同，跳过")
	}
	if os.Geteuid() == 0 {
		t.Skip("root 不受目录权限限制，跳过")
	}

	root := t.TempDir()
	touch(t, filepath.Join(root, "locked", "hidden.png"))
	touch(t, filepath.Join(root, "open", "seen.png"))

	locked := filepath.Join(root, "locked")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("chmod 失败：%v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	got, err := ScanImages(root, nil)
	if err != nil {
		t.Fatalf("不可读子目录不应让整次扫描失败：%v", err)
	}
	if len(got) != 1 || got[0].RelPath != filepath.Join("open", "seen.png") {
		t.Fatalf("期望只发现 open/seen.png，实际 %+v", got)
	}
}

func TestScanImages_MissingRootIsError(t *testing.T) {
	if _, err := ScanImages(filepath.Join(t.TempDir(), "不存在"), nil); err == nil {
		t.Fatalf("根目录不存在必须报错")
	}
}

func TestScanImages_ExcludeDirsFromConfig(t *testing.T) {
	root := t.TempDir()

	touch(t, filepath.Join(root, "temp", "x.png"))
	touch(t, filepath.Join(root, "ok", "y.png"))

	got, err := ScanImages(root, []string{"temp"})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if len(got) != 1 {
		t.Fatalf("期望 1 个候选，实际 %d", len(got))
	}
	wantRel := filepath.Join("ok", "y.png")
	if got[0].RelPath != wantRel {
		t.Fatalf("期望 rel=%q，实际=%q", wantRel, got[0].RelPath)
	}
}

func TestScanImages_EmptyResultIsValid(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "readme.txt"))

	got, err := ScanImages(root, nil)
	if err != nil {
		t.Fatalf("零匹配不应报错：%v", err)
	}
	if len(got) != 0 {
		t.Fatalf("期望空结果，实际 %d", len(got))
	}
}

func TestScanImages_Recursive(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a", "b", "c", "deep.png"))

	got, err := ScanImages(root, nil)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if len(got) != 1 {
		t.Fatalf("期望递归发现 1 个候选，实际 %d", len(got))
	}
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("创建目录失败：%v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("写入文件失败：%v", err)
	}
}
