package multicast

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-multicast/internal/core/hub"
	"github.com/dep2p/go-multicast/internal/core/registry"
)

// Module 返回聚合 Fx 模块
//
// 提供默认配置的 Event 与 Hub 单例，随应用生命周期关闭：
//
//	app := fx.New(
//	    multicast.Module(),
//	    fx.Invoke(func(ev interfaces.Event) { ... }),
//	)
func Module() fx.Option {
	return fx.Options(
		registry.Module(),
		hub.Module(),
	)
}

// NewApp 构建以 go-multicast 模块装配的 Fx 应用
//
// 供示例与测试使用；Fx 自身的日志静音（zap.NewNop），组件日志仍走
// pkg/lib/log。
func NewApp(opts ...fx.Option) *fx.App {
	all := append([]fx.Option{
		Module(),
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
	}, opts...)
	return fx.New(all...)
}
