package multicast

import (
	"github.com/dep2p/go-multicast/internal/core/registry"
	"github.com/dep2p/go-multicast/pkg/types"
)

// 公共错误定义
//
// 错误的规范定义位于 pkg/types 与各实现包，这里按 facade 惯例统一
// 导出，调用方用 errors.Is 判断。
var (
	// ────────────────────────────────────────────────────────────────────────
	// 注册相关错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrOutOfMemory 槽位预留失败，注册未发生
	ErrOutOfMemory = types.ErrOutOfMemory

	// ErrMarshalFailure 封送非线程安全目标失败，注册未发生
	ErrMarshalFailure = types.ErrMarshalFailure

	// ErrClosed 注册表已关闭
	ErrClosed = registry.ErrClosed

	// ErrNilTarget 委托目标为空
	ErrNilTarget = registry.ErrNilTarget

	// ────────────────────────────────────────────────────────────────────────
	// 调用相关错误（触发自愈移除）
	// ────────────────────────────────────────────────────────────────────────

	// ErrTargetGone 目标已永久失效
	ErrTargetGone = types.ErrTargetGone

	// ErrContextGone 目标所属上下文已销毁
	ErrContextGone = types.ErrContextGone
)
