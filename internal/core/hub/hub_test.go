package hub

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/dep2p/go-multicast/internal/core/registry"
	pkgif "github.com/dep2p/go-multicast/pkg/interfaces"
	"github.com/dep2p/go-multicast/pkg/types"
)

// recordingHandler 记录收到事件的处理器（测试用）
type recordingHandler struct {
	mu     sync.Mutex
	events []interface{}
	err    error // 非 nil 时 HandleEvent 返回该错误
}

func (h *recordingHandler) HandleEvent(event interface{}) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.events = append(h.events, event)
	return nil
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.events)
}

// ============================================================================
// 接口契约测试
// ============================================================================

// TestHub_ImplementsInterface 验证 Hub 实现接口
func TestHub_ImplementsInterface(t *testing.T) {
	var _ pkgif.Hub = (*Hub)(nil)
}

// ============================================================================
// 基础功能测试
// ============================================================================

// TestHub_RegisterEmit 测试注册与发射
func TestHub_RegisterEmit(t *testing.T) {
	h := NewHub(registry.Config{})
	defer h.Close()

	type TestEvent struct{ Value int }

	handler := &recordingHandler{}
	if _, err := h.Register(new(TestEvent), handler); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	if err := h.Emit(TestEvent{Value: 7}); err != nil {
		t.Fatalf("Emit() failed: %v", err)
	}

	if handler.count() != 1 {
		t.Errorf("handler received %d events, want 1", handler.count())
	}
	if got := handler.events[0].(TestEvent).Value; got != 7 {
		t.Errorf("event value = %d, want 7", got)
	}
}

// TestHub_RegisterNonPointer 测试非指针类型注册失败
func TestHub_RegisterNonPointer(t *testing.T) {
	h := NewHub(registry.Config{})
	defer h.Close()

	type TestEvent struct{}

	_, err := h.Register(TestEvent{}, &recordingHandler{})
	if !errors.Is(err, ErrNonPointerType) {
		t.Errorf("Register() error = %v, want ErrNonPointerType", err)
	}
}

// TestHub_RegisterNilArgs 测试空参数注册失败
func TestHub_RegisterNilArgs(t *testing.T) {
	h := NewHub(registry.Config{})
	defer h.Close()

	type TestEvent struct{}

	if _, err := h.Register(nil, &recordingHandler{}); !errors.Is(err, ErrInvalidEventType) {
		t.Errorf("Register(nil type) error = %v, want ErrInvalidEventType", err)
	}
	if _, err := h.Register(new(TestEvent), nil); !errors.Is(err, ErrNilHandler) {
		t.Errorf("Register(nil handler) error = %v, want ErrNilHandler", err)
	}
}

// TestHub_EmitUnknownType 测试未注册类型的发射为无操作
func TestHub_EmitUnknownType(t *testing.T) {
	h := NewHub(registry.Config{})
	defer h.Close()

	type Unknown struct{}

	if err := h.Emit(Unknown{}); err != nil {
		t.Errorf("Emit(unknown) error = %v, want nil", err)
	}
}

// TestHub_TypeIsolation 测试事件类型相互隔离
func TestHub_TypeIsolation(t *testing.T) {
	h := NewHub(registry.Config{})
	defer h.Close()

	type EventA struct{}
	type EventB struct{}

	hA := &recordingHandler{}
	hB := &recordingHandler{}
	h.Register(new(EventA), hA)
	h.Register(new(EventB), hB)

	h.Emit(EventA{})
	h.Emit(EventA{})
	h.Emit(EventB{})

	if hA.count() != 2 {
		t.Errorf("handler A received %d events, want 2", hA.count())
	}
	if hB.count() != 1 {
		t.Errorf("handler B received %d events, want 1", hB.count())
	}
}

// TestHub_Deregister 测试撤销注册与节点回收
func TestHub_Deregister(t *testing.T) {
	h := NewHub(registry.Config{})
	defer h.Close()

	type TestEvent struct{}

	handler := &recordingHandler{}
	token, _ := h.Register(new(TestEvent), handler)

	if err := h.Deregister(new(TestEvent), token); err != nil {
		t.Fatalf("Deregister() failed: %v", err)
	}

	if err := h.Emit(TestEvent{}); err != nil {
		t.Fatalf("Emit() failed: %v", err)
	}
	if handler.count() != 0 {
		t.Errorf("handler received %d events after deregister, want 0", handler.count())
	}

	// 注册表清空后节点被回收
	if got := len(h.EventTypes()); got != 0 {
		t.Errorf("EventTypes() has %d entries, want 0", got)
	}
}

// TestHub_EventTypes 测试已注册类型列表
func TestHub_EventTypes(t *testing.T) {
	h := NewHub(registry.Config{})
	defer h.Close()

	type EventA struct{}
	type EventB struct{}

	h.Register(new(EventA), &recordingHandler{})
	h.Register(new(EventB), &recordingHandler{})

	if got := len(h.EventTypes()); got != 2 {
		t.Errorf("EventTypes() has %d entries, want 2", got)
	}
}

// ============================================================================
// 错误传播测试
// ============================================================================

// TestHub_HandlerErrorPropagates 测试处理器错误中止发射并返回
func TestHub_HandlerErrorPropagates(t *testing.T) {
	h := NewHub(registry.Config{})
	defer h.Close()

	type TestEvent struct{}

	boom := fmt.Errorf("handler exploded")
	h.Register(new(TestEvent), &recordingHandler{err: boom})

	if err := h.Emit(TestEvent{}); !errors.Is(err, boom) {
		t.Errorf("Emit() error = %v, want %v", err, boom)
	}
}

// ============================================================================
// 关闭测试
// ============================================================================

// TestHub_Close 测试关闭后拒绝操作
func TestHub_Close(t *testing.T) {
	h := NewHub(registry.Config{})

	type TestEvent struct{}
	h.Register(new(TestEvent), &recordingHandler{})

	if err := h.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	// 重复关闭是无操作
	if err := h.Close(); err != nil {
		t.Fatalf("second Close() failed: %v", err)
	}

	if _, err := h.Register(new(TestEvent), &recordingHandler{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Register() error = %v, want ErrClosed", err)
	}
	if err := h.Emit(TestEvent{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Emit() error = %v, want ErrClosed", err)
	}
}

// ============================================================================
// 并发测试
// ============================================================================

// TestHub_RegisterRacingDeregisterNotLost 测试与节点摘除竞争的注册不丢失
//
// 场景：同类型下，撤销最后一个处理器（触发空节点摘除）与注册新处理
// 器并发。无论交错如何，注册成功返回的处理器必须被后续 Emit 扇出到，
// 不允许落在已摘除的孤儿节点上。
func TestHub_RegisterRacingDeregisterNotLost(t *testing.T) {
	h := NewHub(registry.Config{})
	defer h.Close()

	type TestEvent struct{}

	for i := 0; i < 500; i++ {
		old, err := h.Register(new(TestEvent), &recordingHandler{})
		if err != nil {
			t.Fatalf("Register(old) failed: %v", err)
		}

		kept := &recordingHandler{}
		var keptToken types.Token

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := h.Deregister(new(TestEvent), old); err != nil {
				t.Errorf("Deregister() failed: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			var err error
			if keptToken, err = h.Register(new(TestEvent), kept); err != nil {
				t.Errorf("Register(kept) failed: %v", err)
			}
		}()
		wg.Wait()

		if err := h.Emit(TestEvent{}); err != nil {
			t.Fatalf("Emit() failed: %v", err)
		}
		if kept.count() != 1 {
			t.Fatalf("iteration %d: registered handler received %d events, want 1", i, kept.count())
		}

		if err := h.Deregister(new(TestEvent), keptToken); err != nil {
			t.Fatalf("Deregister(kept) failed: %v", err)
		}
	}
}

// TestHub_ConcurrentRegisterEmit 测试并发注册与发射
func TestHub_ConcurrentRegisterEmit(t *testing.T) {
	h := NewHub(registry.Config{})
	defer h.Close()

	type TestEvent struct{ Value int }

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := h.Register(new(TestEvent), &recordingHandler{}); err != nil {
					t.Errorf("Register() failed: %v", err)
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if err := h.Emit(TestEvent{Value: j}); err != nil {
					t.Errorf("Emit() failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
