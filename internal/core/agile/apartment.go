// Package agile 实现进程内封送协作者
package agile

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	pkgif "github.com/dep2p/go-multicast/pkg/interfaces"
	"github.com/dep2p/go-multicast/pkg/lib/log"
	"github.com/dep2p/go-multicast/pkg/types"
)

var logger = log.Logger("core/agile")

// ============================================================================
// 错误定义
// ============================================================================

var (
	// ErrApartmentClosed 公寓已关闭，无法封送新目标
	ErrApartmentClosed = errors.New("apartment closed")
)

// ============================================================================
// Apartment 实现
// ============================================================================

// Apartment 目标所有权上下文
//
// Wrap 将目标登记在公寓内并返回可解析句柄。公寓关闭后：
//   - 新的 Wrap 失败（ErrApartmentClosed）
//   - 既有句柄解析失败（types.ErrContextGone）
type Apartment struct {
	id string

	mu      sync.RWMutex
	closed  bool
	targets map[string]interface{} // 句柄 → 目标
}

// NewApartment 创建公寓
func NewApartment() *Apartment {
	return &Apartment{
		id:      uuid.NewString(),
		targets: make(map[string]interface{}),
	}
}

// ID 返回公寓标识
func (a *Apartment) ID() string {
	return a.id
}

// Wrap 将目标封送为可解析句柄
func (a *Apartment) Wrap(target interface{}) (pkgif.Reference, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: nil target", types.ErrMarshalFailure)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil, fmt.Errorf("%w: %v", types.ErrMarshalFailure, ErrApartmentClosed)
	}

	handle := uuid.NewString()
	a.targets[handle] = target

	logger.Debug("target wrapped",
		"apartment", log.TruncateID(a.id, 8),
		"handle", log.TruncateID(handle, 8))

	return &reference{apt: a, handle: handle}, nil
}

// Len 返回当前登记的目标数
func (a *Apartment) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.targets)
}

// Close 关闭公寓并吊销全部句柄
//
// Close 是并发安全的，可以多次调用。
func (a *Apartment) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true
	a.targets = nil

	logger.Debug("apartment closed", "apartment", log.TruncateID(a.id, 8))
	return nil
}

var _ pkgif.MarshalContext = (*Apartment)(nil)

// ============================================================================
// reference 实现
// ============================================================================

// reference 指向公寓内目标的可解析句柄
type reference struct {
	apt    *Apartment
	handle string
	closed atomic.Bool
}

// Resolve 解析句柄为活动目标
func (r *reference) Resolve() (interface{}, error) {
	r.apt.mu.RLock()
	defer r.apt.mu.RUnlock()

	if r.apt.closed {
		return nil, fmt.Errorf("%w: apartment %s",
			types.ErrContextGone, log.TruncateID(r.apt.id, 8))
	}

	target, ok := r.apt.targets[r.handle]
	if !ok {
		return nil, fmt.Errorf("%w: handle %s",
			types.ErrTargetGone, log.TruncateID(r.handle, 8))
	}

	return target, nil
}

// Close 吊销句柄
//
// 最后一个持有该句柄的委托析构时由注册表调用。
func (r *reference) Close() error {
	if r.closed.Swap(true) {
		return nil
	}

	r.apt.mu.Lock()
	defer r.apt.mu.Unlock()

	if !r.apt.closed {
		delete(r.apt.targets, r.handle)
	}
	return nil
}

var _ pkgif.Reference = (*reference)(nil)
