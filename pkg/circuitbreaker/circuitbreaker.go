// Package circuitbreaker 三态熔断器
//
// 状态机:
//
//	Closed --连续失败达到阈值--> Open --OpenTimeout到期--> HalfOpen
//	HalfOpen --探测成功--> Closed
//	HalfOpen --探测失败--> Open
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// ErrOpen 熔断期间直接拒绝调用
var ErrOpen = errors.New("circuit breaker is open")

// Settings 熔断参数,零值字段取默认值
type Settings struct {
	Name string

	// FailureThreshold 连续失败多少次后熔断,默认5
	FailureThreshold uint32
	// OpenTimeout 熔断持续时间,到期后进入半开,默认30s
	OpenTimeout time.Duration
	// HalfOpenRequests 半开状态允许的探测请求数,默认1
	HalfOpenRequests uint32
	// Interval 关闭状态下统计窗口,到期清零;0表示不清零
	Interval time.Duration

	// IsFailure 判断错误是否计入失败,默认所有非nil错误
	IsFailure func(err error) bool
	// OnStateChange 状态切换回调,持锁调用,不要在回调里再访问熔断器
	OnStateChange func(name string, from, to State)
}

// Counts 当前统计窗口内的计数
type Counts struct {
	Requests             uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

func (c *Counts) success() {
	c.ConsecutiveSuccesses++
	c.ConsecutiveFailures = 0
}

func (c *Counts) failure() {
	c.TotalFailures++
	c.ConsecutiveFailures++
	c.ConsecutiveSuccesses = 0
}

// Breaker 熔断器,可并发使用
type Breaker struct {
	settings Settings
	now      func() time.Time

	mu         sync.Mutex
	state      State
	generation uint64 // 每次切换状态递增,丢弃旧状态下发出请求的结果
	counts     Counts
	expiry     time.Time
}

// New 创建熔断器
func New(s Settings) *Breaker {
	if s.FailureThreshold == 0 {
		s.FailureThreshold = 5
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = 30 * time.Second
	}
	if s.HalfOpenRequests == 0 {
		s.HalfOpenRequests = 1
	}
	if s.IsFailure == nil {
		s.IsFailure = func(err error) bool { return err != nil }
	}

	b := &Breaker{settings: s, now: time.Now}
	b.resetWindow(b.now())
	return b
}

// Name 熔断器名称
func (b *Breaker) Name() string {
	return b.settings.Name
}

// Execute 在熔断器保护下执行fn
// 熔断期间不调用fn,直接返回ErrOpen
func (b *Breaker) Execute(fn func() error) error {
	generation, err := b.before()
	if err != nil {
		return err
	}

	err = fn()
	b.after(generation, err)
	return err
}

// State 当前状态(会推进到期的状态)
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	state, _ := b.current(b.now())
	return state
}

// Counts 当前窗口计数
func (b *Breaker) Counts() Counts {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.counts
}

func (b *Breaker) before() (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state, generation := b.current(b.now())
	switch {
	case state == StateOpen:
		return generation, ErrOpen
	case state == StateHalfOpen && b.counts.Requests >= b.settings.HalfOpenRequests:
		return generation, ErrOpen
	}

	b.counts.Requests++
	return generation, nil
}

func (b *Breaker) after(before uint64, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	state, generation := b.current(now)
	if generation != before {
		return
	}

	if !b.settings.IsFailure(err) {
		b.counts.success()
		if state == StateHalfOpen {
			b.setState(StateClosed, now)
		}
		return
	}

	b.counts.failure()
	switch state {
	case StateClosed:
		if b.counts.ConsecutiveFailures >= b.settings.FailureThreshold {
			b.setState(StateOpen, now)
		}
	case StateHalfOpen:
		b.setState(StateOpen, now)
	}
}

func (b *Breaker) current(now time.Time) (State, uint64) {
	switch b.state {
	case StateClosed:
		if !b.expiry.IsZero() && b.expiry.Before(now) {
			b.resetWindow(now)
		}
	case StateOpen:
		if !b.expiry.After(now) {
			b.setState(StateHalfOpen, now)
		}
	}
	return b.state, b.generation
}

func (b *Breaker) resetWindow(now time.Time) {
	b.counts = Counts{}
	b.expiry = time.Time{}
	if b.settings.Interval > 0 {
		b.expiry = now.Add(b.settings.Interval)
	}
}

func (b *Breaker) setState(to State, now time.Time) {
	if b.state == to {
		return
	}
	from := b.state
	b.state = to
	b.generation++

	switch to {
	case StateClosed:
		b.resetWindow(now)
	case StateOpen:
		b.counts = Counts{}
		b.expiry = now.Add(b.settings.OpenTimeout)
	case StateHalfOpen:
		b.counts = Counts{}
		b.expiry = time.Time{}
	}

	if b.settings.OnStateChange != nil {
		b.settings.OnStateChange(b.settings.Name, from, to)
	}
}
