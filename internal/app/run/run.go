package run

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/John-Robertt/seedcollect/internal/app"
	"github.com/John-Robertt/seedcollect/internal/clip"
	"github.com/John-Robertt/seedcollect/internal/config"
	"github.com/John-Robertt/seedcollect/internal/domain"
	"github.com/John-Robertt/seedcollect/internal/provider"
	"github.com/John-Robertt/seedcollect/internal/scan"
	"github.com/John-Robertt/seedcollect/internal/seed"
	"github.com/John-Robertt/seedcollect/internal/ui"
)

// Execute 执行一次完整流程（选目录 → 扫描 → 提取聚合 → 发布），
// 并返回对外稳定的 RunReport。
// 该函数尽量把错误“降级”为文件级结果（单个文件失败不影响其他）。
func Execute(ctx context.Context, eff config.EffectiveConfig, reg provider.Registry, ua ui.Interactor, cb clip.Clipboard) domain.RunReport {
	return ExecuteWithObserver(ctx, eff, reg, ua, cb, nil)
}

// ExecuteWithObserver 与 Execute 相同，但允许传入 Observer
// 以输出进度/阶段信息（由上层决定是否启用）。
func ExecuteWithObserver(ctx context.Context, eff config.EffectiveConfig, reg provider.Registry, ua ui.Interactor, cb clip.Clipboard, obs Observer) domain.RunReport {
	started := time.Now().UTC()

	if obs != nil {
		obs.OnStart(eff)
	}

	rr := domain.RunReport{
		Path:      eff.Path,
		Provider:  eff.Provider,
		StartedAt: started,
		Items:     make([]domain.ItemResult, 0, 128),
	}

	// 第一阶段：确定目标目录。未选择是致命失败（跳过全部后续阶段）。
	if rr.Path == "" {
		p, err := ua.SelectDirectory(ctx, "选择要收集种子的图片目录")
		if err != nil {
			return fatal(&rr, ua, domain.ErrCodeNoDirectory, fmt.Sprintf("目录选择失败：%v", err))
		}
		if p == "" {
			return fatal(&rr, ua, domain.ErrCodeNoDirectory, "未选择目录，已退出。")
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return fatal(&rr, ua, domain.ErrCodeNoDirectory, fmt.Sprintf("目录路径无效：%v", err))
		}
		rr.Path = abs
	}

	// 第二阶段：发现候选文件。零匹配不是错误（后面走“无种子”通知）。
	scanStarted := time.Now()
	files, err := scan.ScanImages(rr.Path, eff.ExcludeDirs)
	if err != nil {
		return fatal(&rr, ua, domain.ErrCodeScanFailed, fmt.Sprintf("扫描失败：%v", err))
	}
	if obs != nil {
		obs.OnPhaseDone("scan", map[string]any{"files": len(files)}, time.Since(scanStarted))
	}

	// 第三阶段：并发提取。结果按下标写入槽位，
	// 保证最终顺序与发现顺序一致（与完成顺序无关）。
	workers := eff.Concurrency
	if workers < 1 {
		workers = 1
	}
	if obs != nil {
		obs.OnPhaseDone("extract", map[string]any{
			"workers":     workers,
			"total_files": len(files),
		}, 0)
	}

	type doneEvent struct {
		idx int
		dur time.Duration
	}

	items := make([]domain.ItemResult, len(files))
	jobs := make(chan int)
	done := make(chan doneEvent, len(files))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				oneStarted := time.Now()
				items[idx] = extractOne(ctx, eff, reg, files[idx])
				done <- doneEvent{idx: idx, dur: time.Since(oneStarted)}
			}
		}()
	}

	go func() {
		for i := range files {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
		close(done)
	}()

	completed := 0
	for ev := range done {
		completed++
		if obs != nil {
			obs.OnItemDone(completed, len(files), files[ev.idx].RelPath, items[ev.idx], ev.dur)
		}
	}
	rr.Items = append(rr.Items, items...)

	// 第四阶段：聚合。无种子的文件不产生占位。
	aggStarted := time.Now()
	seeds, output := app.Aggregate(rr.Items)
	rr.Output = output
	if obs != nil {
		obs.OnPhaseDone("aggregate", map[string]any{"seeds": len(seeds)}, time.Since(aggStarted))
	}

	// 第五阶段：发布。空输出不触碰剪贴板。
	publish(eff, ua, cb, &rr)
	if obs != nil {
		obs.OnPhaseDone("publish", map[string]any{"clipboard": rr.Clipboard}, 0)
	}

	rr.FinishedAt = time.Now().UTC()
	rr.Finalize()
	return rr
}

// extractOne 提取单个文件的种子。任何失败都收敛为条目状态，绝不向上抛。
func extractOne(ctx context.Context, eff config.EffectiveConfig, reg provider.Registry, f domain.ImageFile) domain.ItemResult {
	item := domain.ItemResult{Src: f.RelPath, Size: f.Size}

	text, used, err := readWithTimeout(ctx, eff, reg, f.AbsPath)
	if err != nil {
		item.Status = domain.StatusUnreadable
		item.ErrorCode = domain.ErrCodeReadFailed
		item.ErrorMsg = humanizeReadError(err)
		return item
	}
	item.ProviderUsed = used

	s, ok := seed.Extract(text)
	if !ok {
		item.Status = domain.StatusNoSeed
		item.ErrorCode = domain.ErrCodeNoLabel
		return item
	}

	item.Status = domain.StatusFound
	item.Seed = string(s)
	return item
}

type readResult struct {
	text string
	used string
	err  error
}

// readWithTimeout 给单文件读取加超时（外部工具可能在坏文件上卡死）。
// 超时与读取失败同样处理：该文件不贡献种子，整次运行继续。
func readWithTimeout(ctx context.Context, eff config.EffectiveConfig, reg provider.Registry, path string) (string, string, error) {
	timeout := eff.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ch := make(chan readResult, 1)
	go func() {
		t, u, err := provider.ReadText(tctx, reg, eff.Provider, path)
		ch <- readResult{text: t, used: u, err: err}
	}()

	select {
	case r := <-ch:
		return r.text, r.used, r.err
	case <-tctx.Done():
		// 读取卡住：不再等待（channel 有缓冲，goroutine 会自行结束）。
		return "", "", fmt.Errorf("读取超时（%s）：%w", timeout, tctx.Err())
	}
}

func humanizeReadError(err error) string {
	if err == nil {
		return "读取失败"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("%v；该文件按“无种子”处理", err)
	}
	var pe *provider.Error
	if errors.As(err, &pe) {
		return pe.Error()
	}
	return err.Error()
}

// publish 执行发布分支：空输出 → 失败通知（剪贴板保持原状）；
// 非空 → 写剪贴板并通知。写入失败呈现为 warning，不假装成功。
func publish(eff config.EffectiveConfig, ua ui.Interactor, cb clip.Clipboard, rr *domain.RunReport) {
	if rr.Output == "" {
		rr.Clipboard = domain.ClipboardNone
		notify(ua, ui.NoticeError, "未在所选目录中找到任何种子。")
		return
	}

	if !eff.Copy {
		rr.Clipboard = domain.ClipboardOff
		notify(ua, ui.NoticeInfo, "已收集种子（copy=false，未写入剪贴板）："+rr.Output)
		return
	}

	copied, err := cb.Copy(rr.Output)
	if err != nil || !copied {
		rr.Clipboard = domain.ClipboardFailed
		if err != nil {
			rr.ClipboardError = err.Error()
		} else {
			rr.ClipboardError = "剪贴板不可用"
		}
		notify(ua, ui.NoticeWarn, fmt.Sprintf("已收集种子：%s\n但写入剪贴板失败：%s", rr.Output, rr.ClipboardError))
		return
	}

	rr.Clipboard = domain.ClipboardCopied
	notify(ua, ui.NoticeInfo, "已复制到剪贴板："+rr.Output)
}

// fatal 记录一条合成失败项并通知用户，然后收尾返回。
func fatal(rr *domain.RunReport, ua ui.Interactor, code, msg string) domain.RunReport {
	rr.Items = append(rr.Items, domain.ItemResult{
		Status:    domain.StatusFailed,
		ErrorCode: code,
		ErrorMsg:  msg,
	})
	rr.Clipboard = domain.ClipboardNone
	notify(ua, ui.NoticeError, msg)
	rr.FinishedAt = time.Now().UTC()
	rr.Finalize()
	return *rr
}

// notify 是 best-effort：通知失败不影响运行结果。
func notify(ua ui.Interactor, kind, msg string) {
	if ua == nil {
		return
	}
	_ = ua.Notify(kind, msg)
}
