package client

import (
	"context"
	"errors"
	"sync"
)

// State 请求生命周期状态
type State int

const (
	Idle State = iota
	Pending
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrInFlight 上一次调用尚未结束
var ErrInFlight = errors.New("client: call already in flight")

// Snapshot 某一时刻的调用状态
// Pending / Failed 时保留上一次成功的 Data
type Snapshot[T any] struct {
	State State
	Data  T
	Err   error
}

// Call 单个请求的生命周期状态机
//
//	Idle | Succeeded | Failed → Pending → Succeeded | Failed
//
// 每次 Do 只发起一次调用；Pending 期间再次触发返回 ErrInFlight
type Call[T any] struct {
	mu   sync.Mutex
	snap Snapshot[T]
}

// Do 执行 fn 并记录状态迁移
func (c *Call[T]) Do(ctx context.Context, fn func(ctx context.Context) (T, error)) (T, error) {
	c.mu.Lock()
	if c.snap.State == Pending {
		c.mu.Unlock()
		var zero T
		return zero, ErrInFlight
	}
	c.snap.State = Pending
	c.snap.Err = nil
	c.mu.Unlock()

	data, err := fn(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.snap.State = Failed
		c.snap.Err = err
		return data, err
	}
	c.snap = Snapshot[T]{State: Succeeded, Data: data}
	return data, nil
}

// Snapshot 返回当前状态的副本，可并发调用
func (c *Call[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// Reset 回到 Idle；Pending 期间调用无效
func (c *Call[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap.State != Pending {
		c.snap = Snapshot[T]{}
	}
}
