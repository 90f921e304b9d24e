package multicast

import (
	"github.com/dep2p/go-multicast/internal/core/agile"
	"github.com/dep2p/go-multicast/internal/core/hub"
	"github.com/dep2p/go-multicast/internal/core/registry"
	"github.com/dep2p/go-multicast/internal/core/resource"
	pkgif "github.com/dep2p/go-multicast/pkg/interfaces"
)

// New 创建多播委托注册表
//
// 零配置可用；协作者通过选项注入：
//
//	ev, err := multicast.New(
//	    multicast.WithSlotLimit(1024),
//	    multicast.WithMarshaler(multicast.NewApartment()),
//	)
func New(opts ...Option) (pkgif.Event, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return registry.New(o.build()), nil
}

// NewHub 创建类型化多播中心
//
// 全部事件类型的注册表共享同一组协作者。
func NewHub(opts ...Option) (pkgif.Hub, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return hub.NewHub(o.build()), nil
}

// NewApartment 创建进程内封送上下文
//
// 返回的上下文可作为 WithMarshaler 的参数；Close 后由它签发的全部
// 句柄解析失败，对应委托在下一次 Call 中被自愈移除。
func NewApartment() pkgif.MarshalContext {
	return agile.NewApartment()
}

// NewSlotAllocator 创建计数型槽位分配器
//
// limit 为 0 表示不限量。InUse 暴露在用核算，便于泄漏检测。
func NewSlotAllocator(limit int) pkgif.AccountingAllocator {
	return resource.NewSlotAllocator(limit)
}
