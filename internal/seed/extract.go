package seed

import (
	"regexp"

	"github.com/John-Robertt/seedcollect/internal/domain"
)

// 标签格式是穷举的：ASCII 字面量 "Seed: " 后跟一个或多个 ASCII 十进制数字。
// 无符号、无小数点、无引号；大小写敏感（"seed: " 不算匹配）。
var labelRE = regexp.MustCompile(`Seed: ([0-9]+)`)

// Extract 在元数据文本中查找第一处 "Seed: <digits>" 并返回数字串。
//
// 约束：
// - 只取第一处匹配（同一文件出现多个种子时，后续出现全部忽略）
// - 数字串逐字返回（前导零保留）
// - 标签缺失返回 ok=false，不是错误：该文件只是不贡献种子
func Extract(text string) (domain.Seed, bool) {
	m := labelRE.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	s, ok := domain.ParseSeed(m[1])
	if !ok {
		// 正则已保证纯数字；这里仅守住 ParseSeed 的单一入口。
		return "", false
	}
	return s, true
}
