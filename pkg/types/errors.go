package types

import "errors"

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 分配相关错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrOutOfMemory 槽位预留失败（分配器拒绝）
	ErrOutOfMemory = errors.New("out of memory")

	// ────────────────────────────────────────────────────────────────────────
	// 封送相关错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrMarshalFailure 封送非线程安全目标失败
	ErrMarshalFailure = errors.New("delegate marshal failure")

	// ErrTargetGone 目标已永久失效
	ErrTargetGone = errors.New("delegate target gone")

	// ErrContextGone 目标所属上下文已销毁
	ErrContextGone = errors.New("delegate context gone")
)
