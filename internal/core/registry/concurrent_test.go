package registry

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dep2p/go-multicast/internal/core/resource"
	"github.com/dep2p/go-multicast/pkg/types"
)

// ============================================================================
// 并发测试
// ============================================================================

// TestConcurrent_Writers 测试写者完全串行、最终长度正确
func TestConcurrent_Writers(t *testing.T) {
	e := New(Config{})
	defer e.Close()

	numWriters := 8
	addsPerWriter := 50

	var wg sync.WaitGroup
	wg.Add(numWriters)

	for i := 0; i < numWriters; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < addsPerWriter; j++ {
				if _, err := e.Add(id*1000 + j); err != nil {
					t.Errorf("Add() failed: %v", err)
					return
				}
			}
		}(i)
	}

	wg.Wait()

	if got := e.Len(); got != numWriters*addsPerWriter {
		t.Errorf("Len() = %d, want %d", got, numWriters*addsPerWriter)
	}
}

// TestConcurrent_AddRemoveWhileCalling 测试增删与调用交错
//
// N 个写者各执行若干次 add/remove 循环（不相交的目标），同时一个
// 读者持续 Call；结束后 Len() 等于未被移除的目标数。
func TestConcurrent_AddRemoveWhileCalling(t *testing.T) {
	alloc := resource.NewSlotAllocator(0)
	e := New(Config{Allocator: alloc})

	numWriters := 4
	cycles := 200
	keepEvery := 10 // 每 10 个周期留下一个委托不移除

	done := make(chan struct{})
	var callerWg sync.WaitGroup
	callerWg.Add(1)
	go func() {
		defer callerWg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			if err := e.Call(func(interface{}) error { return nil }); err != nil {
				t.Errorf("Call() failed: %v", err)
				return
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(numWriters)
	var kept atomic.Int64

	for i := 0; i < numWriters; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < cycles; j++ {
				token, err := e.Add(id*100000 + j)
				if err != nil {
					t.Errorf("Add() failed: %v", err)
					return
				}
				if j%keepEvery == 0 {
					kept.Add(1)
					continue
				}
				if err := e.Remove(token); err != nil {
					t.Errorf("Remove() failed: %v", err)
					return
				}
			}
		}(i)
	}

	wg.Wait()
	close(done)
	callerWg.Wait()

	if got := e.Len(); int64(got) != kept.Load() {
		t.Errorf("Len() = %d, want %d", got, kept.Load())
	}

	// 全部释放后槽位核算必须归零（无泄漏、无重复释放）
	e.Clear()
	if got := alloc.InUse(); got != 0 {
		t.Errorf("InUse() = %d after Clear, want 0", got)
	}
}

// TestConcurrent_CallSeesConsistentSnapshot 测试每次调用观察完整快照
//
// 读者记录每次 Call 访问的目标数；该数必须等于克隆瞬间的某个合法
// 长度，绝不会是两个快照的混合。这里用"目标数单调不减"近似验证：
// 写者只增不删，读者观察到的计数序列必须单调不减。
func TestConcurrent_CallSeesConsistentSnapshot(t *testing.T) {
	e := New(Config{})
	defer e.Close()

	done := make(chan struct{})
	var readerWg sync.WaitGroup
	readerWg.Add(1)
	go func() {
		defer readerWg.Done()
		lastSeen := 0
		for {
			select {
			case <-done:
				return
			default:
			}
			count := 0
			if err := e.Call(func(interface{}) error { count++; return nil }); err != nil {
				t.Errorf("Call() failed: %v", err)
				return
			}
			if count < lastSeen {
				t.Errorf("observed %d targets after having seen %d", count, lastSeen)
				return
			}
			lastSeen = count
		}
	}()

	for i := 0; i < 500; i++ {
		if _, err := e.Add(i); err != nil {
			t.Fatalf("Add() failed: %v", err)
		}
	}

	close(done)
	readerWg.Wait()
}

// TestConcurrent_RemoveSameToken 测试并发撤销同一令牌只移除一次
func TestConcurrent_RemoveSameToken(t *testing.T) {
	e := New(Config{})
	defer e.Close()

	e.Add("keep-1")
	token, _ := e.Add("victim")
	e.Add("keep-2")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := e.Remove(token); err != nil {
				t.Errorf("Remove() failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := e.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

// TestConcurrent_SlowCallbackDoesNotBlockWriters 测试慢回调不阻塞写者
func TestConcurrent_SlowCallbackDoesNotBlockWriters(t *testing.T) {
	e := New(Config{})
	defer e.Close()

	e.Add("slow")

	entered := make(chan struct{})
	release := make(chan struct{})

	var callWg sync.WaitGroup
	callWg.Add(1)
	go func() {
		defer callWg.Done()
		e.Call(func(interface{}) error {
			close(entered)
			<-release
			return nil
		})
	}()

	<-entered

	// 回调阻塞期间写者必须能完成增删
	var token types.Token
	var err error
	if token, err = e.Add("during"); err != nil {
		t.Fatalf("Add() blocked by slow callback: %v", err)
	}
	if err = e.Remove(token); err != nil {
		t.Fatalf("Remove() blocked by slow callback: %v", err)
	}

	close(release)
	callWg.Wait()
}

// TestConcurrent_AddRacingClose 测试与 Close 竞争的 Add 不泄漏委托
//
// 场景：Add 与 Close 并发。无论交错如何，两者都结束后注册表必须为
// 空：Add 要么返回 ErrClosed，要么先于 Close 的清空发布、随后被其
// 收走。任何交错都不允许委托滞留或槽位预留不归还。
func TestConcurrent_AddRacingClose(t *testing.T) {
	for i := 0; i < 2000; i++ {
		alloc := resource.NewSlotAllocator(0)
		e := New(Config{Allocator: alloc})

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			e.Add("racer")
		}()
		go func() {
			defer wg.Done()
			e.Close()
		}()
		wg.Wait()

		if got := e.Len(); got != 0 {
			t.Fatalf("Len() = %d after Close, want 0", got)
		}
		if got := alloc.InUse(); got != 0 {
			t.Fatalf("InUse() = %d after Close, want 0", got)
		}
		if _, err := e.Add("late"); err != ErrClosed {
			t.Fatalf("Add() after Close error = %v, want ErrClosed", err)
		}
	}
}
