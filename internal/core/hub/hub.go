// Package hub 实现按事件类型分组的多播中心
package hub

import (
	"errors"
	"reflect"
	"sync"

	"go.uber.org/multierr"

	"github.com/dep2p/go-multicast/internal/core/registry"
	pkgif "github.com/dep2p/go-multicast/pkg/interfaces"
	"github.com/dep2p/go-multicast/pkg/lib/log"
	"github.com/dep2p/go-multicast/pkg/types"
)

var logger = log.Logger("core/hub")

// ============================================================================
// 错误定义
// ============================================================================

var (
	// ErrClosed 中心已关闭
	ErrClosed = errors.New("hub closed")
	// ErrInvalidEventType 无效的事件类型
	ErrInvalidEventType = errors.New("invalid event type")
	// ErrNonPointerType 非指针类型
	ErrNonPointerType = errors.New("register called with non-pointer type")
	// ErrNilHandler 处理器为空
	ErrNilHandler = errors.New("nil handler")
)

// ============================================================================
// Hub 实现
// ============================================================================

// Hub 类型化多播中心
//
// 为每个事件类型维护一个独立的 registry.Event，Emit 按事件的动态类型
// 扇出到对应注册表。各注册表之间互不阻塞。
type Hub struct {
	mu sync.RWMutex

	// nodes 事件类型节点映射
	nodes  map[reflect.Type]*node
	cfg    registry.Config
	closed bool
}

// node 事件类型节点
type node struct {
	typ   reflect.Type
	event *registry.Event
}

// NewHub 创建多播中心
//
// cfg 中的协作者（分配器、Marshaler、分类器）由全部注册表共享。
func NewHub(cfg registry.Config) *Hub {
	return &Hub{
		nodes: make(map[reflect.Type]*node),
		cfg:   cfg,
	}
}

// Register 为事件类型注册处理器
//
// eventType 必须是指针类型（如 new(MyEvent)），按其元素类型分组。
func (h *Hub) Register(eventType interface{}, handler pkgif.Handler) (types.Token, error) {
	if eventType == nil {
		return 0, ErrInvalidEventType
	}
	if handler == nil {
		return 0, ErrNilHandler
	}

	typ := reflect.TypeOf(eventType)
	if typ.Kind() != reflect.Ptr {
		return 0, ErrNonPointerType
	}
	elemType := typ.Elem()

	// 注册必须在 hub 锁内落到注册表上：锁外注册可能落在刚被
	// tryDropNode 摘除的孤儿节点上，令牌有效但 Emit 永远不再扇出到它
	var token types.Token
	err := h.withNode(elemType, func(n *node) error {
		var err error
		token, err = n.event.Add(handler)
		return err
	})
	if err != nil {
		return 0, err
	}
	return token, nil
}

// Deregister 按令牌撤销处理器注册
func (h *Hub) Deregister(eventType interface{}, token types.Token) error {
	if eventType == nil {
		return ErrInvalidEventType
	}

	typ := reflect.TypeOf(eventType)
	if typ.Kind() != reflect.Ptr {
		return ErrNonPointerType
	}
	elemType := typ.Elem()

	h.mu.RLock()
	n, ok := h.nodes[elemType]
	h.mu.RUnlock()
	if !ok {
		return nil
	}

	if err := n.event.Remove(token); err != nil {
		return err
	}

	// 注册表清空后尝试删除节点
	if n.event.Len() == 0 {
		h.tryDropNode(elemType)
	}
	return nil
}

// Emit 发射事件到对应类型的全部处理器
//
// Register 用 new(MyEvent)，Emit 用 MyEvent 值。没有处理器注册该
// 类型时为无副作用的成功。
func (h *Hub) Emit(event interface{}) error {
	if event == nil {
		return ErrInvalidEventType
	}

	typ := reflect.TypeOf(event)

	h.mu.RLock()
	if h.closed {
		h.mu.RUnlock()
		return ErrClosed
	}
	n, ok := h.nodes[typ]
	h.mu.RUnlock()

	if !ok {
		return nil
	}

	return n.event.Call(func(target interface{}) error {
		return target.(pkgif.Handler).HandleEvent(event)
	})
}

// EventTypes 返回所有已注册的事件类型（零值实例）
func (h *Hub) EventTypes() []interface{} {
	h.mu.RLock()
	defer h.mu.RUnlock()

	typs := make([]interface{}, 0, len(h.nodes))
	for typ := range h.nodes {
		typs = append(typs, reflect.Zero(typ).Interface())
	}
	return typs
}

// Close 关闭中心及其全部注册表
//
// Close 是并发安全的，可以多次调用。各注册表的关闭错误聚合返回。
func (h *Hub) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	nodes := h.nodes
	h.nodes = nil
	h.mu.Unlock()

	var errs error
	for _, n := range nodes {
		errs = multierr.Append(errs, n.event.Close())
	}

	logger.Debug("hub closed", "types", len(nodes))
	return errs
}

// ============================================================================
// 内部方法
// ============================================================================

// withNode 在持锁状态下对事件类型节点执行操作（不存在时创建）
//
// fn 在 hub 锁内执行，与 tryDropNode 的摘除判定互斥，保证操作的
// 节点在执行期间始终挂在 nodes 映射上。
func (h *Hub) withNode(typ reflect.Type, fn func(n *node) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrClosed
	}

	n, ok := h.nodes[typ]
	if !ok {
		cfg := h.cfg
		cfg.Name = typ.String()
		n = &node{
			typ:   typ,
			event: registry.New(cfg),
		}
		h.nodes[typ] = n
	}
	return fn(n)
}

// tryDropNode 尝试删除节点（注册表为空时）
func (h *Hub) tryDropNode(typ reflect.Type) {
	h.mu.Lock()
	defer h.mu.Unlock()

	n, ok := h.nodes[typ]
	if !ok || n.event.Len() > 0 {
		return
	}
	delete(h.nodes, typ)
}

var _ pkgif.Hub = (*Hub)(nil)
