// Package registry 实现线程安全的多播委托注册表
package registry

import pkgif "github.com/dep2p/go-multicast/pkg/interfaces"

// ============================================================================
// snapshot 实现
// ============================================================================

// snapshot 委托集合在某一时刻的不可变视图
//
// 持有缓冲区指针与长度。发布后任何操作都不会修改可能被其他线程并发
// 读取的快照，"变更"总是表现为构建并发布一个全新快照。
type snapshot struct {
	buf    *refCountedBuffer
	length int
}

// emptySnapshot 返回零长度、无分配的空快照
func emptySnapshot() snapshot {
	return snapshot{}
}

// newSnapshot 创建容量为 capacity、长度为 0 的快照
//
// 分配失败时原样传播分配器的错误。
func newSnapshot(alloc pkgif.Allocator, capacity int) (snapshot, error) {
	buf, err := newBuffer(alloc, capacity)
	if err != nil {
		return snapshot{}, err
	}
	return snapshot{buf: buf}, nil
}

// push 写入下一个空闲槽位并递增长度
//
// 前置条件：构造时预留的容量 ≥ 当前长度 + 1。缓冲区从不原地扩容。
func (s *snapshot) push(d delegate) {
	s.buf.slots = append(s.buf.slots, d)
	s.length++
}

// len 返回已初始化的委托数
func (s snapshot) len() int {
	return s.length
}

// isEmpty 返回快照是否为空
func (s snapshot) isEmpty() bool {
	return s.length == 0
}

// slice 返回已初始化委托的只读视图
//
// 长度之外的槽位永不被读取。
func (s snapshot) slice() []delegate {
	if s.buf == nil {
		return nil
	}
	return s.buf.slots[:s.length]
}

// clone 克隆快照（共享缓冲区，只递增引用计数）
func (s snapshot) clone() snapshot {
	if s.buf != nil {
		s.buf.retain()
	}
	return s
}

// swap 就地交换快照内容并返回先前内容
//
// 这是发布新快照、取出旧快照延迟释放的唯一原语：纯字段交换，
// 不分配内存，不会失败。
func (s *snapshot) swap(next snapshot) snapshot {
	prev := *s
	*s = next
	return prev
}

// drop 释放快照持有的缓冲区引用
//
// 若引用计数归零，按下标顺序析构全部委托并归还预留。drop 后快照
// 退化为空快照，重复 drop 是无操作。
func (s *snapshot) drop() {
	if s.buf != nil && s.buf.release() == 0 {
		s.buf.destroy()
	}
	s.buf = nil
	s.length = 0
}
