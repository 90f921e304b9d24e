// Package resource 实现槽位配额分配器
//
// 注册表的快照缓冲区在构造时向分配器一次性预留全部委托槽位，
// 缓冲区引用计数归零时成对归还。分配器只做配额核算，不持有内存；
// 实际存储由 Go 运行时分配。
//
// # 快速开始
//
//	alloc := resource.NewSlotAllocator(1024) // 上限 1024 个槽位
//	if err := alloc.ReserveSlots(8); err != nil {
//	    // 配额不足：errors.Is(err, types.ErrOutOfMemory)
//	}
//	defer alloc.ReleaseSlots(8)
//
// limit 为 0 表示不限量，此时分配器仅做在用计数。InUse 返回当前
// 在用槽位数，测试以此验证缓冲区无泄漏（所有快照释放后应为 0）。
//
// # 架构定位
//
// Tier: Core Layer Level 1（无依赖）
//
// 依赖关系：
//   - 依赖：pkg/interfaces, pkg/types
//   - 被依赖：registry
package resource
