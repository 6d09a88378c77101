package native

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"github.com/John-Robertt/seedcollect/internal/infra/imgmeta"
)

// Provider 是纯 Go 的元数据读取实现：不依赖任何外部二进制。
//
// 各格式的文本来源：
// - PNG：tEXt/zTXt/iTXt 文本块（生成参数通常在 keyword=parameters 的块里）
// - JPEG：EXIF 的 UserComment/ImageDescription + COM 注释段
// - BMP：没有标准的文本元数据位，可读但恒为空文本
type Provider struct{}

func (Provider) Name() string { return "native" }

func (Provider) Read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return imgmeta.PNGText(bytes.NewReader(b))
	case ".jpg", ".jpeg":
		return readJPEG(b)
	case ".bmp":
		return "", nil
	default:
		return "", fmt.Errorf("不支持的扩展名：%q", filepath.Ext(path))
	}
}

func readJPEG(b []byte) (string, error) {
	var parts []string

	// EXIF 缺失不算错误（很多工具只写 COM 段）。
	if x, err := exif.Decode(bytes.NewReader(b)); err == nil {
		for _, name := range []exif.FieldName{exif.UserComment, exif.ImageDescription} {
			tag, terr := x.Get(name)
			if terr != nil {
				continue
			}
			if s := tagText(tag); s != "" {
				parts = append(parts, s)
			}
		}
	}

	com, err := imgmeta.JPEGComments(bytes.NewReader(b))
	if err != nil {
		// 段结构损坏：若 EXIF 已拿到文本则不放大为错误。
		if len(parts) == 0 {
			return "", err
		}
	} else if com != "" {
		parts = append(parts, com)
	}

	return strings.Join(parts, "\n"), nil
}

// EXIF UserComment 的字符集前缀（8 字节，见 EXIF 规范 §4.6.6）。
var charsetPrefixes = [][]byte{
	[]byte("ASCII\x00\x00\x00"),
	[]byte("UNICODE\x00"),
	[]byte("JIS\x00\x00\x00\x00\x00"),
	make([]byte, 8), // undefined
}

func tagText(tag *tiff.Tag) string {
	if s, err := tag.StringVal(); err == nil {
		return strings.TrimSpace(s)
	}
	// UNDEFINED 类型（UserComment 常见）：走原始字节路径。
	return decodeUndefinedText(tag.Val)
}

// decodeUndefinedText 剥掉字符集前缀后按字节还原 UNDEFINED 类型的文本。
// UTF-16 编码时 ASCII 范围字符隔字节为 NUL；标签文本本身是纯 ASCII，
// 去掉 NUL 字节即可还原，无需完整的 UTF-16 解码。
func decodeUndefinedText(raw []byte) string {
	for _, p := range charsetPrefixes {
		if bytes.HasPrefix(raw, p) {
			raw = raw[len(p):]
			break
		}
	}
	raw = bytes.ReplaceAll(raw, []byte{0}, nil)
	return strings.TrimSpace(string(raw))
}
