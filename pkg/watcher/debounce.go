package watcher

import (
	"sync"
	"time"
)

type pendingTimer struct {
	timer      *time.Timer
	generation uint64
}

// Debouncer 合并同一路径的连续事件，路径安静 delay 后才回调一次
type Debouncer struct {
	delay    time.Duration
	callback func(path string)

	mu         sync.Mutex
	pending    map[string]pendingTimer
	generation uint64
	closed     bool
}

func NewDebouncer(delay time.Duration, callback func(path string)) *Debouncer {
	return &Debouncer{
		delay:    delay,
		callback: callback,
		pending:  make(map[string]pendingTimer),
	}
}

// Schedule 为路径（重新）设置计时器，已停止时忽略
func (d *Debouncer) Schedule(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	if p, ok := d.pending[path]; ok {
		p.timer.Stop()
	}

	d.generation++
	gen := d.generation
	d.pending[path] = pendingTimer{
		generation: gen,
		timer:      time.AfterFunc(d.delay, func() { d.fire(path, gen) }),
	}
}

// fire 只有当前代的计时器才会删除条目并回调；回调在锁外执行
func (d *Debouncer) fire(path string, gen uint64) {
	d.mu.Lock()
	p, ok := d.pending[path]
	if !ok || p.generation != gen || d.closed {
		d.mu.Unlock()
		return
	}
	delete(d.pending, path)
	d.mu.Unlock()

	if d.callback != nil {
		d.callback(path)
	}
}

// Cancel 取消路径上的计时器
func (d *Debouncer) Cancel(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.pending[path]; ok {
		p.timer.Stop()
		delete(d.pending, path)
	}
}

// Stop 取消所有计时器，之后的 Schedule 不再生效
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	for path, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, path)
	}
}

// Pending 返回等待中的路径数
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

func (d *Debouncer) IsPending(path string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[path]
	return ok
}
