// Package agile 实现进程内封送协作者
//
// 有些回调目标绑定特定的所有权上下文，不能跨线程直接持有和调用。
// 本包提供 Apartment：一个可关闭的目标所有权上下文。Wrap 将目标登记
// 在公寓内并返回可解析句柄（interfaces.Reference），每次调用前注册表
// 先解析句柄取回活动目标。
//
// 句柄解析的失败语义：
//   - 公寓已关闭   → 包装 types.ErrContextGone
//   - 句柄已被吊销 → 包装 types.ErrTargetGone
//
// 两类错误都会触发注册表的自愈移除。
//
// # 快速开始
//
//	apt := agile.NewApartment()
//	ev, _ := multicast.New(multicast.WithMarshaler(apt))
//
//	token, _ := ev.Add(target)   // target 未实现 AgileObject，经公寓封送
//	apt.Close()                  // 上下文销毁
//	ev.Call(fn)                  // 解析失败 → 自愈移除，Call 仍然成功
//
// # 架构定位
//
// Tier: Core Layer Level 1（无依赖）
//
// 依赖关系：
//   - 依赖：pkg/interfaces, pkg/types
//   - 被依赖：无（作为协作者注入 registry）
package agile
