// Package resource 实现槽位配额分配器
package resource

import (
	"fmt"
	"sync/atomic"

	pkgif "github.com/dep2p/go-multicast/pkg/interfaces"
	"github.com/dep2p/go-multicast/pkg/lib/log"
	"github.com/dep2p/go-multicast/pkg/types"
)

var logger = log.Logger("core/resource")

// ============================================================================
// SlotAllocator 实现
// ============================================================================

// SlotAllocator 计数型槽位分配器
//
// 跟踪在用槽位数量，可选上限。预留先行计入，超限时回滚并返回
// 包装了 types.ErrOutOfMemory 的错误，保证并发预留不会越过上限。
type SlotAllocator struct {
	limit int64        // 槽位上限，0 表示不限量
	used  atomic.Int64 // 当前在用槽位数
}

// NewSlotAllocator 创建槽位分配器
//
// limit 为 0 时不限量，仅做在用计数。
func NewSlotAllocator(limit int) *SlotAllocator {
	return &SlotAllocator{limit: int64(limit)}
}

// ReserveSlots 预留 n 个委托槽位
func (a *SlotAllocator) ReserveSlots(n int) error {
	if n <= 0 {
		return nil
	}

	used := a.used.Add(int64(n))
	if a.limit > 0 && used > a.limit {
		// 回滚本次预留
		a.used.Add(-int64(n))
		return fmt.Errorf("%w: requested %d slots, %d/%d in use",
			types.ErrOutOfMemory, n, used-int64(n), a.limit)
	}

	return nil
}

// ReleaseSlots 归还 n 个委托槽位
func (a *SlotAllocator) ReleaseSlots(n int) {
	if n <= 0 {
		return
	}

	if a.used.Add(-int64(n)) < 0 {
		// 归还与预留不配对，说明调用方存在重复释放
		logger.Error("slot accounting underflow", "released", n)
	}
}

// InUse 返回当前在用槽位数
func (a *SlotAllocator) InUse() int64 {
	return a.used.Load()
}

// Limit 返回槽位上限（0 表示不限量）
func (a *SlotAllocator) Limit() int64 {
	return a.limit
}

var _ pkgif.AccountingAllocator = (*SlotAllocator)(nil)
