package domain

// ImageFile 描述一次扫描得到的候选图片文件（只做 stat，不读内容）。
//
// 不变量（实现必须遵守）：
// - AbsPath 必须是 clean + absolute
// - 扫描阶段只做 stat，不读文件内容
type ImageFile struct {
	AbsPath string
	RelPath string
	Ext     string // ".png"
	Size    int64  // 进入 report 条目，便于诊断（0 字节/超大文件一眼可见）
}
