// Package registry 实现线程安全的多播委托注册表
package registry

import (
	"errors"
	"sync"
	"sync/atomic"

	pkgif "github.com/dep2p/go-multicast/pkg/interfaces"
	"github.com/dep2p/go-multicast/pkg/lib/log"
	"github.com/dep2p/go-multicast/pkg/types"
)

var logger = log.Logger("core/registry")

// ============================================================================
// 错误定义
// ============================================================================

var (
	// ErrClosed 注册表已关闭
	ErrClosed = errors.New("event registry closed")
	// ErrNilTarget 委托目标为空
	ErrNilTarget = errors.New("nil delegate target")
)

// ============================================================================
// Event 实现
// ============================================================================

// Event 线程安全的多播委托注册表
//
// 两段互不嵌套的临界区：changeMu 串行化写者的复制构建阶段，swapMu
// 保护当前快照的指针交换。加锁顺序固定为先 change 后 swap，先放
// swap 再放 change；旧快照总是在两把锁之外释放。
type Event struct {
	swapMu   sync.Mutex // 保护 current 的交换
	changeMu sync.Mutex // 串行化写者

	// current 当前已发布快照
	//
	// 只有写者在同时持有两把锁时替换。写者仅持 change 锁读取是
	// 安全的：不存在并发替换者。读者读取必须持 swap 锁。
	current snapshot

	alloc      pkgif.Allocator
	marshaler  pkgif.Marshaler
	classifier pkgif.ErrorClassifier

	stats  stats
	closed atomic.Bool
	name   string
}

// Config 注册表构造配置
//
// 零值可用：未提供的协作者使用默认实现（不限量分配器、errors.Is
// 分类器、无 Marshaler——所有目标按直接引用处理）。
type Config struct {
	Name       string
	Allocator  pkgif.Allocator
	Marshaler  pkgif.Marshaler
	Classifier pkgif.ErrorClassifier
}

// New 创建空注册表
func New(cfg Config) *Event {
	if cfg.Name == "" {
		cfg.Name = "event"
	}
	if cfg.Allocator == nil {
		cfg.Allocator = defaultAllocator()
	}
	if cfg.Classifier == nil {
		cfg.Classifier = DefaultClassifier()
	}

	return &Event{
		alloc:      cfg.Allocator,
		marshaler:  cfg.Marshaler,
		classifier: cfg.Classifier,
		name:       cfg.Name,
	}
}

// Add 注册委托目标，返回用于撤销的令牌
//
// 分配或封送失败时立即返回，注册表状态不变：要么新委托完整发布，
// 要么什么都没发生。
func (e *Event) Add(target interface{}) (types.Token, error) {
	if target == nil {
		return 0, ErrNilTarget
	}

	e.changeMu.Lock()

	// 关闭判定必须在 change 锁内：Close 先置位再在 change 锁下清空，
	// 锁外判定可能在置位与清空之间通过，随后把委托发布到已关闭的注册表
	if e.closed.Load() {
		e.changeMu.Unlock()
		return 0, ErrClosed
	}

	cur := e.current
	next, err := newSnapshot(e.alloc, cur.len()+1)
	if err != nil {
		e.changeMu.Unlock()
		return 0, err
	}
	for _, d := range cur.slice() {
		next.push(d.clone())
	}

	d, err := newDelegate(target, e.marshaler)
	if err != nil {
		e.changeMu.Unlock()
		next.drop()
		return 0, err
	}
	token := d.token
	next.push(d)

	e.swapMu.Lock()
	old := e.current.swap(next)
	e.swapMu.Unlock()
	e.changeMu.Unlock()

	// 锁外释放旧快照：只有当没有读者仍持有克隆时缓冲区才真正析构
	old.drop()

	e.stats.adds.Add(1)
	logger.Debug("delegate added", "event", e.name, "token", int64(token), "len", next.len())
	return token, nil
}

// Remove 按令牌撤销委托
//
// 最多移除首个匹配；无匹配时不发生交换，当前快照原样保留。
// 只在复制阶段的分配失败时返回非 nil 错误。
func (e *Event) Remove(token types.Token) error {
	e.changeMu.Lock()

	cur := e.current
	if cur.isEmpty() {
		e.changeMu.Unlock()
		return nil
	}

	capacity := cur.len() - 1
	next := emptySnapshot()
	removed := false

	if capacity == 0 {
		// 仅一个委托：跳过分配，只判断是否匹配
		removed = cur.slice()[0].token == token
	} else {
		var err error
		next, err = newSnapshot(e.alloc, capacity)
		if err != nil {
			e.changeMu.Unlock()
			return err
		}
		for _, d := range cur.slice() {
			if !removed && d.token == token {
				removed = true
				continue
			}
			if next.len() == capacity {
				break
			}
			next.push(d.clone())
		}
	}

	if !removed {
		e.changeMu.Unlock()
		next.drop()
		return nil
	}

	e.swapMu.Lock()
	old := e.current.swap(next)
	e.swapMu.Unlock()
	e.changeMu.Unlock()

	old.drop()

	e.stats.removes.Add(1)
	logger.Debug("delegate removed", "event", e.name, "token", int64(token))
	return nil
}

// Clear 移除全部委托
func (e *Event) Clear() {
	e.changeMu.Lock()

	if e.current.isEmpty() {
		e.changeMu.Unlock()
		return
	}

	e.swapMu.Lock()
	old := e.current.swap(emptySnapshot())
	e.swapMu.Unlock()
	e.changeMu.Unlock()

	old.drop()

	e.stats.clears.Add(1)
	logger.Debug("event cleared", "event", e.name)
}

// Call 以回调依次调用当前快照中的全部委托
//
// 只在克隆快照的瞬间持 swap 锁，迭代与回调完全在锁外进行，绝不触碰
// change 锁。迭代的是克隆瞬间的完整快照：并发写者替换当前快照不影响
// 本次迭代，刚增删的委托是否被观察到是未定义的，但集合绝不会是两个
// 快照的混合。
//
// 分类为目标失效/上下文销毁的调用错误触发自愈移除并继续；其余错误
// 中止迭代并原样返回。
func (e *Event) Call(fn pkgif.CallbackFunc) error {
	e.swapMu.Lock()
	snap := e.current.clone()
	e.swapMu.Unlock()
	defer snap.drop()

	e.stats.calls.Add(1)

	delegates := snap.slice()
	for i := range delegates {
		d := &delegates[i]
		e.stats.invokes.Add(1)

		err := d.invoke(fn)
		if err == nil {
			continue
		}

		switch e.classifier.Classify(err) {
		case types.ClassTargetGone, types.ClassContextGone:
			// 自愈：目标不可达，从当前快照移除后继续。
			// Remove 只触碰注册表的当前快照，不会与本次迭代持有的
			// 克隆产生别名冲突。
			if rerr := e.Remove(d.token); rerr != nil {
				return rerr
			}
			e.stats.selfHeals.Add(1)
			logger.Debug("delegate self-healed", "event", e.name,
				"token", int64(d.token), "reason", err)
		default:
			return err
		}
	}

	return nil
}

// Len 返回当前快照中的委托数
func (e *Event) Len() int {
	e.swapMu.Lock()
	defer e.swapMu.Unlock()
	return e.current.len()
}

// Stats 返回累计运行统计
func (e *Event) Stats() types.Stats {
	return e.stats.snapshot()
}

// Close 关闭注册表
//
// Close 是并发安全的，可以多次调用。关闭后 Add 返回 ErrClosed，
// Remove/Clear/Call 退化为无操作。
func (e *Event) Close() error {
	if e.closed.Swap(true) {
		return nil
	}
	e.Clear()
	return nil
}

var _ pkgif.Event = (*Event)(nil)
