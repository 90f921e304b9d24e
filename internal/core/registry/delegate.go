// Package registry 实现线程安全的多播委托注册表
package registry

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	pkgif "github.com/dep2p/go-multicast/pkg/interfaces"
	"github.com/dep2p/go-multicast/pkg/types"
)

// ============================================================================
// 令牌生成
// ============================================================================

// tokenSeq 进程级令牌序列
//
// 令牌取自单调递增计数器，而非从目标地址编码派生：注入性相同，
// 且不依赖指针对齐等平台假设。
var tokenSeq atomic.Int64

// nextToken 签发下一个令牌
func nextToken() types.Token {
	return types.Token(tokenSeq.Add(1))
}

// ============================================================================
// sharedRef 实现
// ============================================================================

// sharedRef 间接引用的共享所有权包装
//
// 委托随快照复制时只复制指针并递增计数。底层 Reference 若实现
// io.Closer，在最后一个持有者析构时被关闭一次。
type sharedRef struct {
	refs atomic.Int32
	ref  pkgif.Reference
}

// newSharedRef 包装 Reference，初始引用计数为 1
func newSharedRef(ref pkgif.Reference) *sharedRef {
	s := &sharedRef{ref: ref}
	s.refs.Store(1)
	return s
}

// retain 递增引用计数
func (s *sharedRef) retain() {
	s.refs.Add(1)
}

// release 递减引用计数，归零时关闭底层 Reference
func (s *sharedRef) release() {
	if s.refs.Add(-1) == 0 {
		if c, ok := s.ref.(io.Closer); ok {
			_ = c.Close()
		}
	}
}

// ============================================================================
// delegate 实现
// ============================================================================

// delegate 单个已注册的回调目标
//
// direct 与 indirect 二者其一非空，判别在构造时一次确定，此后不变：
// 目标可跨线程直接调用（未配置 Marshaler，或实现 AgileObject 标记）
// 则直接持有引用，否则经 Marshaler 封送为可解析句柄。
type delegate struct {
	direct   interface{}
	indirect *sharedRef
	token    types.Token
}

// newDelegate 按能力探测构造委托并签发令牌
//
// 封送失败时返回包装了 types.ErrMarshalFailure 的错误。
func newDelegate(target interface{}, m pkgif.Marshaler) (delegate, error) {
	if m == nil || isAgile(target) {
		return delegate{direct: target, token: nextToken()}, nil
	}

	ref, err := m.Wrap(target)
	if err != nil {
		if !errors.Is(err, types.ErrMarshalFailure) {
			err = fmt.Errorf("%w: %v", types.ErrMarshalFailure, err)
		}
		return delegate{}, err
	}
	return delegate{indirect: newSharedRef(ref), token: nextToken()}, nil
}

// isAgile 探测目标是否可跨线程直接调用
func isAgile(target interface{}) bool {
	_, ok := target.(pkgif.AgileObject)
	return ok
}

// clone 复制委托（间接引用按共享计数处理）
func (d delegate) clone() delegate {
	if d.indirect != nil {
		d.indirect.retain()
	}
	return d
}

// destroy 析构委托
//
// 在所属缓冲区引用计数归零、槽位被析构时调用——而不是在快照被替换
// 时：旧快照可能仍被迭代中的读者持有。
func (d *delegate) destroy() {
	if d.indirect != nil {
		d.indirect.release()
		d.indirect = nil
	}
	d.direct = nil
}

// invoke 以回调调用委托
//
// 直接委托将持有的引用原样交给回调；间接委托先解析句柄，解析错误
// 原样向上传递。
func (d *delegate) invoke(fn pkgif.CallbackFunc) error {
	if d.indirect == nil {
		return fn(d.direct)
	}

	target, err := d.indirect.ref.Resolve()
	if err != nil {
		return err
	}
	return fn(target)
}
