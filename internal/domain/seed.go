package domain

import (
	"regexp"
	"strings"
)

// Seed 是从单个图片元数据中提取出的种子值（十进制数字串）。
//
// 约束：数字串逐字保留（包括前导零），不做数值化；
// 宁可丢弃可疑匹配，也不允许输出非数字字符。
type Seed string

var seedRE = regexp.MustCompile(`^[0-9]+$`)

// ParseSeed 校验并解析种子字符串。
// 输入必须是一个或多个 ASCII 十进制数字，无符号、无小数点、无引号。
func ParseSeed(s string) (Seed, bool) {
	s = strings.TrimSpace(s)
	if !seedRE.MatchString(s) {
		return "", false
	}
	return Seed(s), true
}

// JoinSeeds 把种子序列按 "," 连接为最终输出串（无空格、无首尾分隔符）。
// 不变量：输出为空 ⇔ 序列为空。
func JoinSeeds(seeds []Seed) string {
	if len(seeds) == 0 {
		return ""
	}
	parts := make([]string, 0, len(seeds))
	for _, s := range seeds {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ",")
}
