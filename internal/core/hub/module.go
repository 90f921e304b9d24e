// Package hub 实现按事件类型分组的多播中心
package hub

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-multicast/internal/core/registry"
	pkgif "github.com/dep2p/go-multicast/pkg/interfaces"
)

// ============================================================================
// Fx 模块
// ============================================================================

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	Hub pkgif.Hub
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("hub",
		fx.Provide(ProvideHub),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideHub 提供默认配置的 Hub 实例
func ProvideHub() Result {
	return Result{
		Hub: NewHub(registry.Config{}),
	}
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In

	LC  fx.Lifecycle
	Hub pkgif.Hub
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// Hub 无需特殊启动逻辑
			return nil
		},
		OnStop: func(_ context.Context) error {
			return input.Hub.Close()
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
	Name = "hub"
	// Description 模块描述
	Description = "类型化多播中心模块，按事件类型分组扇出"
)
