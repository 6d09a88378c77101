package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/John-Robertt/seedcollect/internal/app/run"
	"github.com/John-Robertt/seedcollect/internal/config"
	"github.com/John-Robertt/seedcollect/internal/domain"
)

var _ run.Observer = (*progressUI)(nil)

// progressUI 是一个“简洁版”的交互终端进度输出。
//
// 设计目标：
// - 所有过程信息写到 stderr（或 fallback 到 stdout），不污染 stdout 的 JSON 输出契约
// - 事件驱动：run 层只发事件，CLI 决定如何展示
// - keepalive：长时间无条目完成时也会定期输出一行，降低等待焦虑
type progressUI struct {
	w io.Writer

	mu          sync.Mutex
	startedAt   time.Time
	lastPrinted time.Time

	workers    int
	total      int
	done       int
	found      int
	noSeed     int
	unreadable int

	keepaliveThreshold time.Duration
	tickerInterval     time.Duration

	stopCh        chan struct{}
	tickerStarted bool
}

func newProgressUI(w io.Writer) *progressUI {
	return &progressUI{
		w:                  w,
		keepaliveThreshold: 6 * time.Second,
		tickerInterval:     2 * time.Second,
	}
}

func (p *progressUI) OnStart(eff config.EffectiveConfig) {
	now := time.Now()

	p.mu.Lock()
	if p.startedAt.IsZero() {
		p.startedAt = now
	}

	path := eff.Path
	if path == "" {
		path = "<待选择>"
	}

	fmt.Fprintf(p.w, "[%s] seedcollect run\n", now.Format("15:04:05"))
	fmt.Fprintln(p.w, "配置（生效）:")
	fmt.Fprintf(p.w, "  path: %s\n", path)
	fmt.Fprintf(p.w, "  provider: %s\n", providerChain(eff.Provider))
	fmt.Fprintf(p.w, "  copy: %s\n", onOff(eff.Copy))
	fmt.Fprintf(p.w, "  concurrency: %d\n", eff.Concurrency)
	fmt.Fprintf(p.w, "  timeout: %s\n", eff.Timeout)
	fmt.Fprintf(p.w, "  notify: %s\n", eff.Notify)
	fmt.Fprintf(p.w, "  exclude_dirs: %s\n", formatStringListJSON(eff.ExcludeDirs))
	fmt.Fprintln(p.w)

	p.lastPrinted = time.Now()
	p.mu.Unlock()
}

func (p *progressUI) OnPhaseDone(name string, fields map[string]any, dur time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch name {
	case "scan":
		fmt.Fprintf(p.w, "扫描: files=%d (%s)\n",
			intField(fields, "files"), formatShortDuration(dur),
		)
	case "extract":
		p.workers = intField(fields, "workers")
		p.total = intField(fields, "total_files")
		fmt.Fprintf(p.w, "提取: workers=%d total_files=%d\n\n", p.workers, p.total)
		if p.total > 0 && !p.tickerStarted {
			p.startTickerLocked()
		}
	case "aggregate":
		fmt.Fprintf(p.w, "聚合: seeds=%d (%s)\n",
			intField(fields, "seeds"), formatShortDuration(dur),
		)
	case "publish":
		fmt.Fprintf(p.w, "发布: clipboard=%v\n", fields["clipboard"])
	default:
		// 兜底：未知阶段也不要静默（便于调试/演进）。
		fmt.Fprintf(p.w, "%s (%s)\n", name, formatShortDuration(dur))
	}

	p.lastPrinted = time.Now()
}

func (p *progressUI) OnItemDone(idx, total int, src string, res domain.ItemResult, dur time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// idx/total 由 run 层给出；这里同时维护自己的计数，供 keepalive 使用。
	p.done = idx
	p.total = total

	switch res.Status {
	case domain.StatusFound:
		p.found++
	case domain.StatusNoSeed:
		p.noSeed++
	case domain.StatusUnreadable:
		p.unreadable++
	}

	prov := strings.TrimSpace(res.ProviderUsed)

	switch res.Status {
	case domain.StatusFound:
		if prov != "" {
			fmt.Fprintf(p.w, "[%d/%d] %s SEED %s provider=%s (%s)\n",
				idx, total, src, res.Seed, prov, formatShortDuration(dur),
			)
		} else {
			fmt.Fprintf(p.w, "[%d/%d] %s SEED %s (%s)\n",
				idx, total, src, res.Seed, formatShortDuration(dur),
			)
		}
	case domain.StatusNoSeed:
		fmt.Fprintf(p.w, "[%d/%d] %s NONE (无种子标记) (%s)\n",
			idx, total, src, formatShortDuration(dur),
		)
	case domain.StatusUnreadable:
		fmt.Fprintf(p.w, "[%d/%d] %s SKIP %s: %s (%s)\n",
			idx, total, src, res.ErrorCode, truncate(res.ErrorMsg, 160), formatShortDuration(dur),
		)
	default:
		fmt.Fprintf(p.w, "[%d/%d] %s %s %s: %s (%s)\n",
			idx, total, src, strings.ToUpper(res.Status), res.ErrorCode, truncate(res.ErrorMsg, 160), formatShortDuration(dur),
		)
	}

	p.lastPrinted = time.Now()

	// 最后一条完成：停止 ticker，避免在结束打印后又冒出 keepalive。
	if p.tickerStarted && p.done >= p.total {
		close(p.stopCh)
		p.tickerStarted = false
	}
}

func (p *progressUI) OnProgress(done, total, found, noSeed, unreadable, active int, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.w, "进度: done=%d/%d found=%d no_seed=%d unreadable=%d active=%d elapsed=%s\n",
		done, total, found, noSeed, unreadable, active, formatElapsed(elapsed),
	)
	p.lastPrinted = time.Now()
}

func (p *progressUI) startTickerLocked() {
	p.stopCh = make(chan struct{})
	p.tickerStarted = true

	interval := p.tickerInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	threshold := p.keepaliveThreshold
	if threshold <= 0 {
		threshold = 6 * time.Second
	}

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-t.C:
				p.mu.Lock()
				// 已完成：安全退出（OnItemDone 会 close stopCh，但这里也做兜底）。
				if p.total > 0 && p.done >= p.total {
					p.mu.Unlock()
					return
				}

				if p.total > 0 && time.Since(p.lastPrinted) > threshold {
					active := p.workers
					remain := p.total - p.done
					if remain < active {
						active = remain
					}
					elapsed := time.Since(p.startedAt)
					fmt.Fprintf(p.w, "进度: done=%d/%d found=%d no_seed=%d unreadable=%d active=%d elapsed=%s\n",
						p.done, p.total, p.found, p.noSeed, p.unreadable, active, formatElapsed(elapsed),
					)
					p.lastPrinted = time.Now()
				}
				p.mu.Unlock()
			case <-p.stopCh:
				return
			}
		}
	}()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func providerChain(requested string) string {
	switch strings.ToLower(strings.TrimSpace(requested)) {
	case "exiftool":
		return "exiftool -> native"
	default:
		return "native -> exiftool"
	}
}

func formatStringListJSON(xs []string) string {
	// json.Marshal(nil slice) => "null"；对用户更友好的是 "[]"
	if xs == nil {
		xs = []string{}
	}
	b, err := json.Marshal(xs)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 || len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func formatShortDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	sec := int(d.Seconds())
	h := sec / 3600
	m := (sec % 3600) / 60
	s := sec % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func intField(fields map[string]any, key string) int {
	if fields == nil {
		return 0
	}
	v, ok := fields[key]
	if !ok {
		return 0
	}
	switch x := v.(type) {
	case int:
		return x
	case int32:
		return int(x)
	case int64:
		return int(x)
	case uint:
		return int(x)
	case uint32:
		return int(x)
	case uint64:
		return int(x)
	default:
		return 0
	}
}
