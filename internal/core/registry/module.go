// Package registry 实现线程安全的多播委托注册表
package registry

import (
	"context"

	pkgif "github.com/dep2p/go-multicast/pkg/interfaces"
	"go.uber.org/fx"
)

// ============================================================================
// Fx 模块
// ============================================================================

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	Event pkgif.Event
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("registry",
		fx.Provide(ProvideEvent),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideEvent 提供默认配置的 Event 实例
func ProvideEvent() Result {
	return Result{
		Event: New(Config{}),
	}
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In

	LC    fx.Lifecycle
	Event pkgif.Event
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// 注册表无需特殊启动逻辑
			return nil
		},
		OnStop: func(_ context.Context) error {
			return input.Event.Close()
		},
	})
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "registry"
	// Description 模块描述
	Description = "多播委托注册表模块，提供写时复制快照的并发事件原语"
)
