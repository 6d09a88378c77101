package app

import (
	"testing"

	"github.com/John-Robertt/seedcollect/internal/domain"
)

func TestAggregate_PreservesOrderAndSkipsMisses(t *testing.T) {
	items := []domain.ItemResult{
		{Src: "a.png", Status: domain.StatusFound, Seed: "111"},
		{Src: "b.jpg", Status: domain.StatusNoSeed},
		{Src: "c.png", Status: domain.StatusFound, Seed: "222"},
		{Src: "d.bmp", Status: domain.StatusUnreadable},
		{Src: "e.png", Status: domain.StatusFound, Seed: "333"},
	}

	seeds, out := Aggregate(items)
	if len(seeds) != 3 {
		t.Fatalf("期望 3 个种子，实际 %d", len(seeds))
	}
	if out != "111,222,333" {
		t.Fatalf("期望 111,222,333，实际 %q", out)
	}
}

func TestAggregate_Empty(t *testing.T) {
	seeds, out := Aggregate(nil)
	if len(seeds) != 0 || out != "" {
		t.Fatalf("空输入应得到空输出：seeds=%v out=%q", seeds, out)
	}

	seeds, out = Aggregate([]domain.ItemResult{
		{Src: "a.png", Status: domain.StatusNoSeed},
	})
	if len(seeds) != 0 || out != "" {
		t.Fatalf("全部无种子应得到空输出：seeds=%v out=%q", seeds, out)
	}
}
