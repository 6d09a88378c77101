package main

import (
	"testing"
)

func TestProviderChain(t *testing.T) {
	if got := providerChain("exiftool"); got != "exiftool -> native" {
		t.Fatalf("providerChain(exiftool) = %q", got)
	}
	if got := providerChain("native"); got != "native -> exiftool" {
		t.Fatalf("providerChain(native) = %q", got)
	}
	if got := providerChain(""); got != "native -> exiftool" {
		t.Fatalf("providerChain(空) = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 5); got != "ab..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abc", 5); got != "abc" {
		t.Fatalf("不应截断：%q", got)
	}
}

func TestParseRunArgs(t *testing.T) {
	ra, err := parseRunArgs([]string{"/tmp/pics", "--provider=exiftool", "--copy=false", "--report", "out.json"})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if ra.Path != "/tmp/pics" {
		t.Fatalf("path 不符：%q", ra.Path)
	}
	if !ra.ProviderSet || ra.Provider != "exiftool" {
		t.Fatalf("provider 不符：%+v", ra)
	}
	if !ra.CopySet || ra.Copy {
		t.Fatalf("copy 不符：%+v", ra)
	}
	if ra.Report != "out.json" {
		t.Fatalf("report 不符：%q", ra.Report)
	}
}

func TestParseRunArgs_Errors(t *testing.T) {
	cases := [][]string{
		{"--provider"},
		{"--provider=png"},
		{"--copy=maybe"},
		{"--report"},
		{"--unknown"},
		{"a", "b"},
	}
	for _, args := range cases {
		if _, err := parseRunArgs(args); err == nil {
			t.Fatalf("期望错误：%v", args)
		}
	}
}
