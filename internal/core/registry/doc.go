// Package registry 实现线程安全的多播委托注册表
//
// 核心是一个写时复制、引用计数的快照数组，配合两段互不嵌套的临界区：
//   - change 锁：串行化写者（Add/Remove/Clear）的复制构建阶段
//   - swap 锁：保护当前快照的指针交换（发布）
//
// 写者持 change 锁读出当前快照，私下构建一个全新快照（整体复制加减
// 一个元素），再短暂持 swap 锁完成交换，旧快照在两把锁之外释放。
// 读者（Call）只持 swap 锁克隆当前快照（引用计数递增），随后完全在
// 锁外迭代调用，任意慢的回调都不会阻塞写者或其他读者。
//
// 加锁协议固定为：先 change（写者需要时），后 swap，先放 swap 再放
// change，两把锁绝不嵌套等待，不存在死锁序。
//
// # 快速开始
//
//	ev := registry.New(registry.Config{})
//	defer ev.Close()
//
//	token, _ := ev.Add(target)
//	ev.Call(func(target interface{}) error {
//	    // 使用 target
//	    return nil
//	})
//	ev.Remove(token)
//
// # 自愈
//
// Call 中若委托调用返回被分类为目标失效/上下文销毁的错误，该委托被
// 自动移除（Remove(token)），迭代继续，Call 本身仍报告成功。其余错误
// 中止迭代并原样返回，注册表结构保持完好。
//
// # 架构定位
//
// Tier: Core Layer Level 2
//
// 依赖关系：
//   - 依赖：pkg/interfaces, pkg/types, resource
//   - 被依赖：hub, 根包 facade
//
// # 并发安全
//
//   - 快照缓冲区：发布后不可变，引用计数（atomic.Int32）决定释放时机
//   - 当前快照：只在同时持有 change、swap 两把锁时替换
//   - 统计计数：atomic.Int64
package registry
