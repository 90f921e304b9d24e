package multicast

import (
	"github.com/dep2p/go-multicast/pkg/types"
)

// 公共类型别名
//
// 规范定义位于 pkg/types，这里按 facade 惯例别名导出，调用方无需
// 直接导入内部类型包。
type (
	// Token 委托注册令牌
	Token = types.Token

	// ErrorClass 调用错误分类
	ErrorClass = types.ErrorClass

	// Stats 注册表运行统计
	Stats = types.Stats
)

// 错误分类常量
const (
	// ClassOther 普通错误，调用中止并返回
	ClassOther = types.ClassOther
	// ClassTargetGone 目标永久失效，触发自愈移除
	ClassTargetGone = types.ClassTargetGone
	// ClassContextGone 目标上下文已销毁，触发自愈移除
	ClassContextGone = types.ClassContextGone
)
