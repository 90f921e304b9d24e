package registry

import (
	"errors"
	"testing"

	"github.com/dep2p/go-multicast/internal/core/resource"
	"github.com/dep2p/go-multicast/pkg/types"
)

// ============================================================================
// 缓冲区测试
// ============================================================================

// TestBuffer_ZeroCapacity 测试容量 0 不分配
func TestBuffer_ZeroCapacity(t *testing.T) {
	alloc := resource.NewSlotAllocator(0)

	buf, err := newBuffer(alloc, 0)
	if err != nil {
		t.Fatalf("newBuffer(0) failed: %v", err)
	}
	if buf != nil {
		t.Error("newBuffer(0) should return nil buffer")
	}
	if alloc.InUse() != 0 {
		t.Errorf("InUse() = %d, want 0", alloc.InUse())
	}
}

// TestBuffer_ReserveFailure 测试预留失败传播 OOM
func TestBuffer_ReserveFailure(t *testing.T) {
	alloc := resource.NewSlotAllocator(2)

	if _, err := newBuffer(alloc, 2); err != nil {
		t.Fatalf("newBuffer(2) failed: %v", err)
	}

	_, err := newBuffer(alloc, 1)
	if !errors.Is(err, types.ErrOutOfMemory) {
		t.Errorf("newBuffer() error = %v, want ErrOutOfMemory", err)
	}
}

// TestBuffer_RefCountLifecycle 测试引用计数归零才析构
func TestBuffer_RefCountLifecycle(t *testing.T) {
	alloc := resource.NewSlotAllocator(0)

	buf, err := newBuffer(alloc, 3)
	if err != nil {
		t.Fatalf("newBuffer(3) failed: %v", err)
	}
	if alloc.InUse() != 3 {
		t.Fatalf("InUse() = %d after alloc, want 3", alloc.InUse())
	}

	buf.retain()

	if n := buf.release(); n != 1 {
		t.Errorf("first release() = %d, want 1", n)
	}
	// 仍有持有者，预留不得归还
	if alloc.InUse() != 3 {
		t.Errorf("InUse() = %d with live holder, want 3", alloc.InUse())
	}

	if n := buf.release(); n != 0 {
		t.Errorf("second release() = %d, want 0", n)
	}
	buf.destroy()

	if alloc.InUse() != 0 {
		t.Errorf("InUse() = %d after destroy, want 0", alloc.InUse())
	}
}

// TestBuffer_DestroyClosesIndirectSlots 测试析构关闭间接引用
func TestBuffer_DestroyClosesIndirectSlots(t *testing.T) {
	alloc := resource.NewSlotAllocator(0)
	m := &testMarshaler{}

	buf, err := newBuffer(alloc, 1)
	if err != nil {
		t.Fatalf("newBuffer(1) failed: %v", err)
	}

	d, err := newDelegate("target", m)
	if err != nil {
		t.Fatalf("newDelegate() failed: %v", err)
	}
	buf.slots = append(buf.slots, d)

	if buf.release() != 0 {
		t.Fatal("release() should reach 0")
	}
	buf.destroy()

	if got := m.refs[0].closeCount.Load(); got != 1 {
		t.Errorf("reference closed %d times, want 1", got)
	}
}
