package domain

import "testing"

func TestParseSeed(t *testing.T) {
	cases := []struct {
		in   string
		want Seed
		ok   bool
	}{
		{"12345", "12345", true},
		{"007", "007", true}, // 前导零必须逐字保留
		{"  42  ", "42", true},
		{"", "", false},
		{"-1", "", false},
		{"1.5", "", false},
		{"12a", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseSeed(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseSeed(%q)：期望 (%q,%v)，实际 (%q,%v)", tc.in, tc.want, tc.ok, got, ok)
		}
	}
}

func TestJoinSeeds(t *testing.T) {
	if got := JoinSeeds([]Seed{"111", "222", "333"}); got != "111,222,333" {
		t.Fatalf("期望 111,222,333，实际 %q", got)
	}
	if got := JoinSeeds(nil); got != "" {
		t.Fatalf("空序列应得到空串，实际 %q", got)
	}
	if got := JoinSeeds([]Seed{"42"}); got != "42" {
		t.Fatalf("单值不应出现分隔符，实际 %q", got)
	}
}
