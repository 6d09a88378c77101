package seed

import "testing"

func TestExtract_Basic(t *testing.T) {
	got, ok := Extract("masterpiece, 1girl\nSteps: 20, Sampler: Euler a, Seed: 12345, Size: 512x512")
	if !ok {
		t.Fatalf("期望匹配成功")
	}
	if string(got) != "12345" {
		t.Fatalf("期望 12345，实际 %q", got)
	}
}

func TestExtract_FirstMatchWins(t *testing.T) {
	got, ok := Extract("Seed: 111 ... Seed: 222")
	if !ok || string(got) != "111" {
		t.Fatalf("期望只取第一处匹配 111，实际 (%q,%v)", got, ok)
	}
}

func TestExtract_LeadingZerosPreserved(t *testing.T) {
	got, ok := Extract("Seed: 00420")
	if !ok || string(got) != "00420" {
		t.Fatalf("前导零必须保留，实际 (%q,%v)", got, ok)
	}
}

func TestExtract_DigitsOnly(t *testing.T) {
	// 数字串在第一个非数字字符处截止。
	got, ok := Extract("Seed: 42abc")
	if !ok || string(got) != "42" {
		t.Fatalf("期望截止在非数字字符，实际 (%q,%v)", got, ok)
	}
}

func TestExtract_NoLabel(t *testing.T) {
	cases := []string{
		"",
		"无任何参数文本",
		"seed: 123",  // 小写不算
		"Seed:123",   // 缺空格不算
		"Seed: -123", // 负号不算数字
		"Seed: ",     // 无数字
	}
	for _, in := range cases {
		if got, ok := Extract(in); ok {
			t.Fatalf("输入 %q 不应匹配，实际得到 %q", in, got)
		}
	}
}
