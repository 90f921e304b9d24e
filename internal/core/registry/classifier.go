// Package registry 实现线程安全的多播委托注册表
package registry

import (
	"errors"

	"github.com/dep2p/go-multicast/internal/core/resource"
	pkgif "github.com/dep2p/go-multicast/pkg/interfaces"
	"github.com/dep2p/go-multicast/pkg/types"
)

// ============================================================================
// 默认协作者
// ============================================================================

// defaultClassifier 基于 errors.Is 的默认错误分类器
type defaultClassifier struct{}

// Classify 将调用错误归类
func (defaultClassifier) Classify(err error) types.ErrorClass {
	switch {
	case errors.Is(err, types.ErrTargetGone):
		return types.ClassTargetGone
	case errors.Is(err, types.ErrContextGone):
		return types.ClassContextGone
	default:
		return types.ClassOther
	}
}

// DefaultClassifier 返回默认错误分类器
func DefaultClassifier() pkgif.ErrorClassifier {
	return defaultClassifier{}
}

// defaultAllocator 返回默认分配器（不限量、仅计数）
func defaultAllocator() pkgif.Allocator {
	return resource.NewSlotAllocator(0)
}
