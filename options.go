package multicast

import (
	"fmt"

	"github.com/dep2p/go-multicast/internal/core/registry"
	"github.com/dep2p/go-multicast/internal/core/resource"
	pkgif "github.com/dep2p/go-multicast/pkg/interfaces"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	// 命名（用于日志）
	name string

	// 分配配置
	slotLimit int
	allocator pkgif.Allocator

	// 封送配置
	marshaler pkgif.Marshaler

	// 错误分类配置
	classifier pkgif.ErrorClassifier
}

// defaultOptions 返回默认选项
func defaultOptions() *options {
	return &options{}
}

// build 生成注册表构造配置
func (o *options) build() registry.Config {
	alloc := o.allocator
	if alloc == nil {
		alloc = resource.NewSlotAllocator(o.slotLimit)
	}
	return registry.Config{
		Name:       o.name,
		Allocator:  alloc,
		Marshaler:  o.marshaler,
		Classifier: o.classifier,
	}
}

// WithName 设置注册表名称（用于日志标识）
func WithName(name string) Option {
	return func(o *options) error {
		if name == "" {
			return fmt.Errorf("empty name")
		}
		o.name = name
		return nil
	}
}

// WithSlotLimit 设置默认分配器的槽位上限
//
// limit 为 0 表示不限量。与 WithAllocator 互斥，后者优先。
func WithSlotLimit(limit int) Option {
	return func(o *options) error {
		if limit < 0 {
			return fmt.Errorf("negative slot limit: %d", limit)
		}
		o.slotLimit = limit
		return nil
	}
}

// WithAllocator 设置自定义槽位分配器
func WithAllocator(alloc pkgif.Allocator) Option {
	return func(o *options) error {
		if alloc == nil {
			return fmt.Errorf("nil allocator")
		}
		o.allocator = alloc
		return nil
	}
}

// WithMarshaler 设置跨线程封送协作者
//
// 配置后，未实现 interfaces.AgileObject 的目标在注册时被封送为
// 可解析句柄。
func WithMarshaler(m pkgif.Marshaler) Option {
	return func(o *options) error {
		if m == nil {
			return fmt.Errorf("nil marshaler")
		}
		o.marshaler = m
		return nil
	}
}

// WithClassifier 设置调用错误分类器
func WithClassifier(c pkgif.ErrorClassifier) Option {
	return func(o *options) error {
		if c == nil {
			return fmt.Errorf("nil classifier")
		}
		o.classifier = c
		return nil
	}
}
