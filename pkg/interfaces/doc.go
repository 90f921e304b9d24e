// Package interfaces 定义 go-multicast 公共接口
//
// 本包只含接口与选项类型，不含实现。实现位于 internal/core 下的各包，
// 通过根包（facade）或 Fx 模块获取实例。
//
// 接口分两组：
//   - 公共表面：Event（多播委托注册表）、Hub（类型化多播中心）
//   - 协作者：Allocator（槽位配额）、Marshaler/Reference（跨线程封送）、
//     ErrorClassifier（调用错误分类）、AgileObject（能力标记）
package interfaces
