// Package frames schedules the clock render loop on the Fyne main thread.
package frames

import (
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
)

// FrameScheduler runs a task once per rendered frame using a Fyne animation.
type FrameScheduler struct{}

// NewFrameScheduler creates a frame-driven scheduler.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

// Schedule starts an endless animation whose tick runs frame.
func (scheduler *FrameScheduler) Schedule(frame func()) func() {
	var stopped atomic.Bool
	animation := frameAnimation(func() {
		if !stopped.Load() {
			frame()
		}
	})
	animation.Start()
	var once sync.Once
	return func() {
		once.Do(func() {
			stopped.Store(true)
			animation.Stop()
		})
	}
}

func frameAnimation(frame func()) *fyne.Animation {
	return &fyne.Animation{
		Duration:    time.Second,
		RepeatCount: fyne.AnimationRepeatForever,
		Curve:       fyne.AnimationLinear,
		Tick: func(float32) {
			frame()
		},
	}
}

// IntervalScheduler runs a task at a fixed interval through dispatch.
type IntervalScheduler struct {
	interval time.Duration
	dispatch func(func())
}

// NewIntervalScheduler creates an interval scheduler. A nil dispatch hands
// each tick to fyne.Do so it runs on the main thread.
func NewIntervalScheduler(interval time.Duration, dispatch func(func())) *IntervalScheduler {
	if interval <= 0 {
		interval = time.Second
	}
	if dispatch == nil {
		dispatch = fyne.Do
	}
	return &IntervalScheduler{interval: interval, dispatch: dispatch}
}

// Schedule starts a ticker goroutine.
func (scheduler *IntervalScheduler) Schedule(frame func()) func() {
	stopCh := make(chan struct{})
	go scheduler.run(stopCh, frame)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stopCh)
		})
	}
}

func (scheduler *IntervalScheduler) run(stopCh <-chan struct{}, frame func()) {
	ticker := time.NewTicker(scheduler.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			scheduler.dispatch(func() {
				select {
				case <-stopCh:
				default:
					frame()
				}
			})
		}
	}
}
