// Package registry 实现线程安全的多播委托注册表
package registry

import (
	"sync/atomic"

	"github.com/dep2p/go-multicast/pkg/types"
)

// ============================================================================
// 统计计数
// ============================================================================

// stats 注册表运行统计（原子计数器）
type stats struct {
	adds      atomic.Int64
	removes   atomic.Int64
	clears    atomic.Int64
	calls     atomic.Int64
	invokes   atomic.Int64
	selfHeals atomic.Int64
}

// snapshot 采样当前计数
func (s *stats) snapshot() types.Stats {
	return types.Stats{
		Adds:      s.adds.Load(),
		Removes:   s.removes.Load(),
		Clears:    s.clears.Load(),
		Calls:     s.calls.Load(),
		Invokes:   s.invokes.Load(),
		SelfHeals: s.selfHeals.Load(),
	}
}
