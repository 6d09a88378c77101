package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/John-Robertt/seedcollect/internal/app/run"
	"github.com/John-Robertt/seedcollect/internal/clip"
	"github.com/John-Robertt/seedcollect/internal/config"
	"github.com/John-Robertt/seedcollect/internal/domain"
	"github.com/John-Robertt/seedcollect/internal/infra/fsx"
	"github.com/John-Robertt/seedcollect/internal/provider"
	"github.com/John-Robertt/seedcollect/internal/provider/exiftool"
	"github.com/John-Robertt/seedcollect/internal/provider/native"
	"github.com/John-Robertt/seedcollect/internal/ui"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 || isHelp(args[0]) {
		printUsage()
		return
	}

	switch args[0] {
	case "run":
		if code := runCmd(args[1:]); code != 0 {
			os.Exit(code)
		}
	default:
		fmt.Fprintf(os.Stderr, "未知命令：%q\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
}

func runCmd(args []string) int {
	for _, a := range args {
		if isHelp(a) {
			printRunUsage()
			return 0
		}
	}

	ra, err := parseRunArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "参数错误：%v\n\n", err)
		printRunUsage()
		return 2
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "读取当前目录失败：%v\n", err)
		return 1
	}
	cwdAbs, _ := filepath.Abs(cwd)

	eff, err := config.LoadEffective(cwd, config.CLIArgs{
		Path:        ra.Path,
		Provider:    ra.Provider,
		ProviderSet: ra.ProviderSet,
		Copy:        ra.Copy,
		CopySet:     ra.CopySet,
	})
	if err != nil {
		rr := reportForConfigError(cwdAbs, err)
		emitReport(rr)
		return 1
	}

	et := exiftool.New()
	defer func() { _ = et.Close() }()

	reg, e := provider.NewRegistry(native.Provider{}, et)
	if e != nil {
		fmt.Fprintf(os.Stderr, "初始化 provider registry 失败：%v\n", e)
		return 1
	}

	progressW, interactive := pickProgressWriter()
	var obs run.Observer
	if interactive {
		obs = newProgressUI(progressW)
	}

	ua := ui.Pick(eff.Notify)
	rr := run.ExecuteWithObserver(context.Background(), eff, reg, ua, clip.System{}, obs)

	if ra.Report != "" {
		if err := writeReportFile(ra.Report, rr); err != nil {
			fmt.Fprintf(os.Stderr, "写入报告失败：%v\n", err)
			emitReport(rr)
			return 1
		}
	}

	emitReport(rr)
	if rr.Fatal() {
		return 1
	}
	return 0
}

type runArgs struct {
	Path        string
	Provider    string
	ProviderSet bool
	Copy        bool
	CopySet     bool
	Report      string
}

func parseRunArgs(args []string) (runArgs, error) {
	ra := runArgs{}

	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--provider":
			if i+1 >= len(args) {
				return runArgs{}, fmt.Errorf("--provider 需要一个值")
			}
			i++
			ra.Provider = args[i]
			ra.ProviderSet = true
		case strings.HasPrefix(a, "--provider="):
			ra.Provider = strings.TrimPrefix(a, "--provider=")
			ra.ProviderSet = true
		case a == "--copy":
			ra.Copy = true
			ra.CopySet = true
		case strings.HasPrefix(a, "--copy="):
			v := strings.TrimPrefix(a, "--copy=")
			switch v {
			case "true":
				ra.Copy = true
			case "false":
				ra.Copy = false
			default:
				return runArgs{}, fmt.Errorf("--copy 只能是 true 或 false，实际是 %q", v)
			}
			ra.CopySet = true
		case a == "--report":
			if i+1 >= len(args) {
				return runArgs{}, fmt.Errorf("--report 需要一个文件路径")
			}
			i++
			ra.Report = args[i]
		case strings.HasPrefix(a, "--report="):
			ra.Report = strings.TrimPrefix(a, "--report=")
			if ra.Report == "" {
				return runArgs{}, fmt.Errorf("--report 需要一个文件路径")
			}
		case strings.HasPrefix(a, "-"):
			return runArgs{}, fmt.Errorf("未知参数 %q", a)
		default:
			if ra.Path != "" {
				return runArgs{}, fmt.Errorf("重复的 path：%q 与 %q", ra.Path, a)
			}
			ra.Path = a
		}
	}

	if ra.ProviderSet {
		switch ra.Provider {
		case "native", "exiftool":
			// ok
		case "":
			return runArgs{}, fmt.Errorf("--provider 不能为空")
		default:
			return runArgs{}, fmt.Errorf("--provider 只能是 native 或 exiftool，实际是 %q", ra.Provider)
		}
	}

	return ra, nil
}

func isHelp(s string) bool {
	return s == "-h" || s == "--help" || s == "help"
}

func printUsage() {
	fmt.Fprint(os.Stdout, `用法：
  seedcollect run [path] [--provider native|exiftool] [--copy[=true|false]] [--report FILE]

命令：
  run    扫描目录下的图片，收集生成参数中的种子并复制到剪贴板

使用 "seedcollect run --help" 查看详细说明。
`)
}

func printRunUsage() {
	fmt.Fprint(os.Stdout, `用法：
  seedcollect run [path] [--provider native|exiftool] [--copy[=true|false]] [--report FILE]

参数：
  --provider  元数据读取方式：native|exiftool（未指定则读配置文件；最终默认 native）
  --copy      是否写入系统剪贴板（默认 true）；支持 --copy=false 覆盖配置中的 copy=true
  --report    把 RunReport JSON 额外写入指定文件（原子写入）
  -h, --help  显示帮助

path 未指定且配置文件也没有 path 时，会弹出目录选择（或终端输入）。
`)
}

func emitReport(rr domain.RunReport) {
	if isTTY(os.Stdout) {
		fmt.Fprintf(os.Stdout, "完成：found=%d no_seed=%d unreadable=%d failed=%d\n",
			rr.Summary.Found, rr.Summary.NoSeed, rr.Summary.Unreadable, rr.Summary.Failed,
		)
		if rr.Output != "" {
			fmt.Fprintf(os.Stdout, "seeds: %s\n", rr.Output)
		}
		if rr.Summary.Failed > 0 {
			for _, it := range rr.Items {
				if it.Status != domain.StatusFailed {
					continue
				}
				src := it.Src
				if src == "" {
					src = "<run>"
				}
				fmt.Fprintf(os.Stderr, "%s %s: %s\n", src, it.ErrorCode, it.ErrorMsg)
			}
		}
		return
	}

	// stdout 非 TTY：stdout 必须且仅输出一个 RunReport JSON（日志/摘要走 stderr）。
	enc := json.NewEncoder(os.Stdout)
	_ = enc.Encode(rr)
	fmt.Fprintf(os.Stderr, "完成：found=%d no_seed=%d unreadable=%d failed=%d\n",
		rr.Summary.Found, rr.Summary.NoSeed, rr.Summary.Unreadable, rr.Summary.Failed,
	)
}

func reportForConfigError(cwdAbs string, err error) domain.RunReport {
	now := time.Now().UTC()
	code := config.Code(err)
	if code == "" {
		code = domain.ErrCodeConfigInvalid
	}
	rr := domain.RunReport{
		Path:       cwdAbs,
		StartedAt:  now,
		FinishedAt: now,
		Clipboard:  domain.ClipboardNone,
		Items: []domain.ItemResult{{
			Status:    domain.StatusFailed,
			ErrorCode: code,
			ErrorMsg:  err.Error(),
		}},
	}
	rr.Finalize()
	return rr
}

func writeReportFile(path string, rr domain.RunReport) error {
	b, err := json.MarshalIndent(rr, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return fsx.WriteFileAtomicReplace(filepath.Dir(abs), filepath.Base(abs), b)
}

func isTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func pickProgressWriter() (io.Writer, bool) {
	// 进度输出只在交互终端启用；默认走 stderr（不污染 stdout JSON）。
	if isTTY(os.Stderr) {
		return os.Stderr, true
	}
	// 某些环境（例如仅重定向 stderr）下，stdout 仍是 TTY：退化输出到 stdout。
	if isTTY(os.Stdout) {
		return os.Stdout, true
	}
	return nil, false
}
