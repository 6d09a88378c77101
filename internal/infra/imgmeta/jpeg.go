package imgmeta

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
)

// JPEGComments 扫描 JPEG 的段结构并收集全部 COM（0xFFFE）注释段文本。
//
// 约束：
// - 无 COM 段返回空串，不是错误
// - SOI 缺失/结构损坏返回错误（上层会降级为“该文件无种子”）
// - 扫描到 SOS（压缩数据开始）即停止：COM/APPn 都只会出现在它之前
func JPEGComments(r io.Reader) (string, error) {
	br := bufio.NewReader(r)

	var soi [2]byte
	if _, err := io.ReadFull(br, soi[:]); err != nil {
		return "", fmt.Errorf("读取 JPEG SOI 失败：%w", err)
	}
	if soi[0] != 0xFF || soi[1] != 0xD8 {
		return "", errors.New("不是合法的 JPEG 文件（SOI 不匹配）")
	}

	var parts []string
	for {
		marker, err := nextMarker(br)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return "", err
		}

		switch {
		case marker == 0xD9: // EOI
			return strings.Join(parts, "\n"), nil
		case marker == 0xDA: // SOS：后续是熵编码数据，不再有元数据段
			return strings.Join(parts, "\n"), nil
		case marker >= 0xD0 && marker <= 0xD7, marker == 0x01:
			// 独立标记，无长度字段。
			continue
		}

		var lenBuf [2]byte
		if _, err := io.ReadFull(br, lenBuf[:]); err != nil {
			break
		}
		segLen := int(binary.BigEndian.Uint16(lenBuf[:]))
		if segLen < 2 {
			return "", fmt.Errorf("JPEG 段长度无效：%d", segLen)
		}
		payload := segLen - 2

		if marker == 0xFE { // COM
			data := make([]byte, payload)
			if _, err := io.ReadFull(br, data); err != nil {
				break
			}
			if s := strings.TrimSpace(string(data)); s != "" {
				parts = append(parts, s)
			}
			continue
		}

		if err := discard(br, int64(payload)); err != nil {
			break
		}
	}

	return strings.Join(parts, "\n"), nil
}

// nextMarker 读到下一个段标记字节（跳过 0xFF 填充）。
func nextMarker(br *bufio.Reader) (byte, error) {
	b, err := br.ReadByte()
	if err != nil {
		return 0, err
	}
	if b != 0xFF {
		return 0, fmt.Errorf("期望段标记 0xFF，实际 0x%02X", b)
	}
	for {
		m, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		if m == 0xFF { // 填充字节
			continue
		}
		if m == 0x00 {
			return 0, errors.New("遇到填充序列 0xFF00（不在熵编码数据内不应出现）")
		}
		return m, nil
	}
}
