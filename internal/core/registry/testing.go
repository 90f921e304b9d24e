// Package registry 实现线程安全的多播委托注册表
package registry

import (
	"sync/atomic"

	pkgif "github.com/dep2p/go-multicast/pkg/interfaces"
)

// ============================================================================
// 测试辅助
// ============================================================================

// testReference 可控的可解析句柄（测试用）
type testReference struct {
	target     interface{}
	resolveErr error        // 非 nil 时 Resolve 返回该错误
	closeCount atomic.Int32 // Close 调用计数
}

func (r *testReference) Resolve() (interface{}, error) {
	if r.resolveErr != nil {
		return nil, r.resolveErr
	}
	return r.target, nil
}

func (r *testReference) Close() error {
	r.closeCount.Add(1)
	return nil
}

// testMarshaler 把所有目标包装为 testReference 的封送器（测试用）
type testMarshaler struct {
	wrapErr error // 非 nil 时 Wrap 返回该错误
	refs    []*testReference
}

func (m *testMarshaler) Wrap(target interface{}) (pkgif.Reference, error) {
	if m.wrapErr != nil {
		return nil, m.wrapErr
	}
	ref := &testReference{target: target}
	m.refs = append(m.refs, ref)
	return ref, nil
}

// failingAllocator 总是拒绝预留的分配器（测试用）
type failingAllocator struct {
	err      error
	releases atomic.Int64
}

func (a *failingAllocator) ReserveSlots(n int) error {
	return a.err
}

func (a *failingAllocator) ReleaseSlots(n int) {
	a.releases.Add(int64(n))
}
