// Package types 定义 go-multicast 公共值类型
package types

// Token 委托注册令牌
//
// 由 Add 返回的不透明稳定标识，Remove 以此定位要撤销的委托。
// 取值来自进程级单调递增计数器，进程内全局唯一。
type Token int64

// ErrorClass 调用期错误分类
//
// Call 对委托调用返回的错误按三类处理：目标永久失效与上下文已销毁
// 触发自愈移除，其余错误中止本次 Call 并原样返回给调用方。
type ErrorClass int

const (
	// ClassOther 未识别错误
	ClassOther ErrorClass = iota

	// ClassTargetGone 目标已永久失效
	ClassTargetGone

	// ClassContextGone 目标所属上下文已销毁
	ClassContextGone
)

// String 返回错误分类的可读名称
func (c ErrorClass) String() string {
	switch c {
	case ClassTargetGone:
		return "target-gone"
	case ClassContextGone:
		return "context-gone"
	default:
		return "other"
	}
}

// Stats 注册表运行统计
//
// 所有字段为累计值，由原子计数器采样得到。
type Stats struct {
	Adds      int64 // Add 成功次数
	Removes   int64 // Remove 实际移除次数
	Clears    int64 // Clear 实际清空次数
	Calls     int64 // Call 次数
	Invokes   int64 // 委托调用总次数
	SelfHeals int64 // 自愈移除次数
}
