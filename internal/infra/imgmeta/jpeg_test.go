package imgmeta

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func jpegSegment(marker byte, payload []byte) []byte {
	var buf bytes.Buffer
	buf.WriteByte(0xFF)
	buf.WriteByte(marker)
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(payload)+2))
	buf.Write(lenBuf[:])
	buf.Write(payload)
	return buf.Bytes()
}

func buildJPEG(segments ...[]byte) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xD8}) // SOI
	for _, s := range segments {
		buf.Write(s)
	}
	buf.Write([]byte{0xFF, 0xD9}) // EOI
	return buf.Bytes()
}

func TestJPEGComments_SingleCOM(t *testing.T) {
	jpg := buildJPEG(jpegSegment(0xFE, []byte("Steps: 20, Seed: 42")))

	got, err := JPEGComments(bytes.NewReader(jpg))
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if got != "Steps: 20, Seed: 42" {
		t.Fatalf("COM 内容不一致：%q", got)
	}
}

func TestJPEGComments_SkipsOtherSegments(t *testing.T) {
	jpg := buildJPEG(
		jpegSegment(0xE0, []byte("JFIF\x00noise")), // APP0
		jpegSegment(0xFE, []byte("Seed: 7")),
		jpegSegment(0xDB, make([]byte, 65)), // DQT
	)

	got, err := JPEGComments(bytes.NewReader(jpg))
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if got != "Seed: 7" {
		t.Fatalf("期望只收集 COM 段，实际 %q", got)
	}
}

func TestJPEGComments_NoCOM(t *testing.T) {
	jpg := buildJPEG(jpegSegment(0xE0, []byte("JFIF\x00")))

	got, err := JPEGComments(bytes.NewReader(jpg))
	if err != nil {
		t.Fatalf("无 COM 段不应报错：%v", err)
	}
	if got != "" {
		t.Fatalf("期望空串，实际 %q", got)
	}
}

func TestJPEGComments_StopsAtSOS(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xD8})
	buf.Write(jpegSegment(0xFE, []byte("Seed: 1")))
	buf.Write(jpegSegment(0xDA, []byte{0x01, 0x00, 0x00})) // SOS 段头
	buf.Write([]byte{0x12, 0x34, 0x56})                    // 熵编码数据（不应被解析）

	got, err := JPEGComments(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if got != "Seed: 1" {
		t.Fatalf("期望在 SOS 处停止并保留已收集文本，实际 %q", got)
	}
}

func TestJPEGComments_BadSOI(t *testing.T) {
	if _, err := JPEGComments(bytes.NewReader([]byte("GIF89a"))); err == nil {
		t.Fatalf("期望 SOI 错误，实际 nil")
	}
}
