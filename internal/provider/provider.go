package provider

import "context"

// Provider 把“元数据读取方式的差异”限制在 provider 包内部；
// 核心流程只依赖统一接口与返回的参数文本块。
//
// 约束：
// - Read 返回文件内嵌的参数文本块；文件可读但没有文本不算错误（返回空串）
// - 读取失败（文件损坏/格式不支持/外部工具不可用）返回 error，
//   由上层降级为“该文件不贡献种子”，绝不中断整次运行
// - Read 必须可并发调用（内部需要串行化的实现自行加锁）
type Provider interface {
	Name() string
	Read(ctx context.Context, path string) (text string, err error)
}
