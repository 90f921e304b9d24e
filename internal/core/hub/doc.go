// Package hub 实现按事件类型分组的多播中心
//
// Hub 在 registry.Event 之上提供类型化表面：为每个事件类型维护一个
// 独立注册表，Emit 按事件的动态类型扇出到对应注册表的全部处理器。
//
// # 快速开始
//
//	h := hub.NewHub(registry.Config{})
//	defer h.Close()
//
//	token, _ := h.Register(new(MyEvent), handler) // handler 实现 interfaces.Handler
//	h.Emit(MyEvent{...})                          // 同步扇出
//	h.Deregister(new(MyEvent), token)
//
// 扇出是同步的：Emit 在调用线程上依次调用全部处理器，继承底层注册表
// 的全部并发与自愈语义（见 registry 包文档）。
//
// # 架构定位
//
// Tier: Core Layer Level 3
//
// 依赖关系：
//   - 依赖：registry, pkg/interfaces, pkg/types
//   - 被依赖：根包 facade
package hub
