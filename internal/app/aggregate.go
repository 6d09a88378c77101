package app

import (
	"github.com/John-Robertt/seedcollect/internal/domain"
)

// Aggregate 按发现顺序收集提取成功的种子，并派生最终输出串。
//
// 约束：
// - items 必须已按发现顺序排列（运行层用下标槽位保证这一点）
// - 无种子的文件不产生占位：输出里没有空槽，也不影响其他值的位置
// - 输出为空 ⇔ 种子序列为空
func Aggregate(items []domain.ItemResult) ([]domain.Seed, string) {
	seeds := make([]domain.Seed, 0, len(items))
	for i := range items {
		if items[i].Status != domain.StatusFound {
			continue
		}
		if s, ok := domain.ParseSeed(items[i].Seed); ok {
			seeds = append(seeds, s)
		}
	}
	return seeds, domain.JoinSeeds(seeds)
}
