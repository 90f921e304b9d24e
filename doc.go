// Package multicast 提供线程安全的多播委托注册表
//
// go-multicast 是一个进程内事件/观察者原语库：一组可从多个线程并发
// 添加、移除、清空和调用的回调目标（委托），读写互不阻塞超过必要
// 程度，委托集合绝不会被观察到半变更状态。
//
// # 核心概念
//
// go-multicast 围绕三个核心概念构建：
//
//   - Event: 多播委托注册表，公共表面（Add/Remove/Clear/Call）
//   - Snapshot: 委托集合的不可变、引用计数快照（内部）
//   - Hub: 按事件类型分组的类型化多播中心
//
// # 快速开始
//
//	ev, err := multicast.New()
//	if err != nil {
//	    // 处理错误
//	}
//	defer ev.Close()
//
//	token, _ := ev.Add(myTarget)
//	ev.Call(func(target interface{}) error {
//	    // 在调用线程上依次访问每个目标
//	    return nil
//	})
//	ev.Remove(token)
//
// # 并发模型
//
// 写者（Add/Remove/Clear）由 change 锁串行：读出当前快照，私下构建
// 全新快照（整体复制加减一个元素），短暂持 swap 锁完成指针交换，旧
// 快照在锁外释放。读者（Call）只持 swap 锁克隆当前快照（引用计数
// 递增），随后完全在锁外迭代调用——任意慢的回调都不会阻塞写者或
// 其他读者。
//
// # 自愈
//
// Call 中被分类为"目标永久失效"或"所属上下文已销毁"的调用错误触发
// 自动移除，迭代继续，Call 仍报告成功；其余错误中止迭代并原样返回。
//
// # 跨线程封送
//
// 默认所有目标按直接引用处理。配置 Marshaler（如 NewApartment）后，
// 未实现 interfaces.AgileObject 标记的目标在注册时被封送为可解析
// 句柄，每次调用前先解析回活动目标。
package multicast
