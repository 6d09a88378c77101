package imgmeta

import (
	"bufio"
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// 单个文本块的大小上限。生成参数文本通常只有几 KB；
// 超过上限的块直接跳过，避免被损坏的长度字段拖进大分配。
const maxTextChunkLen = 1 << 24 // 16 MiB

// PNGText 读取 PNG 的全部文本块（tEXt/zTXt/iTXt），
// 按出现顺序拼接为 "keyword: text" 行。
//
// 约束：
// - 无文本块返回空串，不是错误
// - 签名/结构损坏返回错误（上层会降级为“该文件无种子”）
// - 单个文本块解压/解析失败只跳过该块，不中断整个文件
func PNGText(r io.Reader) (string, error) {
	br := bufio.NewReader(r)

	sig := make([]byte, len(pngSignature))
	if _, err := io.ReadFull(br, sig); err != nil {
		return "", fmt.Errorf("读取 PNG 签名失败：%w", err)
	}
	if !bytes.Equal(sig, pngSignature) {
		return "", errors.New("不是合法的 PNG 文件（签名不匹配）")
	}

	var parts []string
	header := make([]byte, 8)
	for {
		if _, err := io.ReadFull(br, header); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				// 缺少 IEND 的截断文件：已收集到的文本仍然可用。
				break
			}
			return "", err
		}
		length := binary.BigEndian.Uint32(header[:4])
		ctype := string(header[4:8])

		if ctype == "IEND" {
			break
		}

		isText := ctype == "tEXt" || ctype == "zTXt" || ctype == "iTXt"
		if !isText || length > maxTextChunkLen {
			// 数据 + 4 字节 CRC 一并丢弃。
			if err := discard(br, int64(length)+4); err != nil {
				break
			}
			continue
		}

		data := make([]byte, length)
		if _, err := io.ReadFull(br, data); err != nil {
			break
		}
		// CRC 不校验：目标是尽量取出文本，而非验证文件完整性。
		if err := discard(br, 4); err != nil {
			break
		}

		if kw, text, ok := decodeTextChunk(ctype, data); ok && text != "" {
			parts = append(parts, kw+": "+text)
		}
	}

	return strings.Join(parts, "\n"), nil
}

// decodeTextChunk 解析三种文本块；失败返回 ok=false。
func decodeTextChunk(ctype string, data []byte) (keyword, text string, ok bool) {
	switch ctype {
	case "tEXt":
		// keyword \0 text
		i := bytes.IndexByte(data, 0)
		if i < 0 {
			return "", "", false
		}
		return string(data[:i]), string(data[i+1:]), true

	case "zTXt":
		// keyword \0 compression-method(1) zlib-data
		i := bytes.IndexByte(data, 0)
		if i < 0 || i+2 > len(data) {
			return "", "", false
		}
		if data[i+1] != 0 { // 0 = deflate，唯一已定义的方法
			return "", "", false
		}
		out, err := inflate(data[i+2:])
		if err != nil {
			return "", "", false
		}
		return string(data[:i]), string(out), true

	case "iTXt":
		// keyword \0 compFlag(1) compMethod(1) lang \0 translated \0 text
		i := bytes.IndexByte(data, 0)
		if i < 0 || i+3 > len(data) {
			return "", "", false
		}
		kw := string(data[:i])
		compFlag := data[i+1]
		rest := data[i+3:]

		j := bytes.IndexByte(rest, 0)
		if j < 0 {
			return "", "", false
		}
		rest = rest[j+1:]
		k := bytes.IndexByte(rest, 0)
		if k < 0 {
			return "", "", false
		}
		payload := rest[k+1:]

		if compFlag == 0 {
			return kw, string(payload), true
		}
		out, err := inflate(payload)
		if err != nil {
			return "", "", false
		}
		return kw, string(out), true
	}
	return "", "", false
}

func inflate(b []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(io.LimitReader(zr, maxTextChunkLen))
}

func discard(r io.Reader, n int64) error {
	_, err := io.CopyN(io.Discard, r, n)
	return err
}
