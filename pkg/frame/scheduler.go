// Package frame schedules one-shot callbacks on the next paintable frame.
//
// Element controllers never repaint immediately: they request a frame and
// patch their content when it fires. [Queue] is the manual scheduler used by
// tests and headless hosts; [Loop] runs frames on a clock-driven event loop.
package frame

import "sync"

// Scheduler runs a callback once on the next frame.
type Scheduler interface {
	RequestFrame(callback func())
}

// Dispatcher schedules a callback on the goroutine that owns the elements.
// Background goroutines must use it instead of touching elements directly.
type Dispatcher interface {
	Dispatch(callback func()) bool
}

// Queue is a manually flushed Scheduler and Dispatcher.
//
// Frame callbacks requested while a flush is running are deferred to the next
// flush, mirroring how a browser treats requestAnimationFrame from inside a
// frame. Dispatch may be called from any goroutine.
type Queue struct {
	mu     sync.Mutex
	tasks  []func()
	frames []func()
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// RequestFrame queues callback for the next Flush.
func (q *Queue) RequestFrame(callback func()) {
	if callback == nil {
		return
	}
	q.mu.Lock()
	q.frames = append(q.frames, callback)
	q.mu.Unlock()
}

// Dispatch queues callback to run at the start of the next Flush.
func (q *Queue) Dispatch(callback func()) bool {
	if callback == nil {
		return false
	}
	q.mu.Lock()
	q.tasks = append(q.tasks, callback)
	q.mu.Unlock()
	return true
}

// Pending returns the number of queued frame callbacks.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.frames)
}

// PendingTasks returns the number of queued dispatched tasks.
func (q *Queue) PendingTasks() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Flush runs all dispatched tasks, then all frame callbacks that were queued
// when the frame began. It returns the number of frame callbacks run.
// Panics propagate to the caller.
func (q *Queue) Flush() int {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()
	for _, task := range tasks {
		task()
	}

	q.mu.Lock()
	frames := q.frames
	q.frames = nil
	q.mu.Unlock()
	for _, callback := range frames {
		callback()
	}
	return len(frames)
}
