package core

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/atomic"
)

type InitializeEventArg struct{}

type ProcessEventArg struct {
	Start  time.Time     // time the engine was started
	Approx time.Duration // time elapsed since Start
	Delta  time.Duration // time elapsed since the previous process event
}

type DeinitializeEventArg struct{}

// Module is a component that needs processing time in every engine phase.
type Module interface {
	Initialize(InitializeEventArg) error
	Process(ProcessEventArg) error
	Deinitialize(DeinitializeEventArg) error
}

func InitializeListener(m Module) Listener[InitializeEventArg] {
	return ListenerFunc[InitializeEventArg](m.Initialize)
}

func ProcessListener(m Module) Listener[ProcessEventArg] {
	return ListenerFunc[ProcessEventArg](m.Process)
}

func DeinitializeListener(m Module) Listener[DeinitializeEventArg] {
	return ListenerFunc[DeinitializeEventArg](m.Deinitialize)
}

// Engine drives the initialize, process and deinitialize phases.
//
// Start notifies the initialize event once, then the process event in a loop
// until Stop is called, and finally the deinitialize event.
type Engine struct {
	initialize   Event[InitializeEventArg]
	process      Event[ProcessEventArg]
	deinitialize Event[DeinitializeEventArg]

	running  *atomic.Bool
	stopping *atomic.Bool
	interval *atomic.Duration
}

// Creates a new Engine
func NewEngine() *Engine {
	return &Engine{
		running:  atomic.NewBool(false),
		stopping: atomic.NewBool(false),
		interval: atomic.NewDuration(0),
	}
}

func (e *Engine) InitializeEvent() *Event[InitializeEventArg]     { return &e.initialize }
func (e *Engine) ProcessEvent() *Event[ProcessEventArg]           { return &e.process }
func (e *Engine) DeinitializeEvent() *Event[DeinitializeEventArg] { return &e.deinitialize }

// AttachModule attaches m to all three phases and returns a function
// detaching it from all of them.
func (e *Engine) AttachModule(m Module) (detach func()) {
	di := e.initialize.Attach(InitializeListener(m))
	dp := e.process.Attach(ProcessListener(m))
	dd := e.deinitialize.Attach(DeinitializeListener(m))

	return func() {
		di()
		dp()
		dd()
	}
}

// SetTickRate limits the process loop to fps iterations per second.
// Zero or less runs the loop as fast as the listeners allow.
func (e *Engine) SetTickRate(fps int) {
	if fps <= 0 {
		e.interval.Store(0)
		return
	}
	e.interval.Store(time.Second / time.Duration(fps))
}

func (e *Engine) IsRunning() bool {
	return e.running.Load()
}

// Stop asks the process loop to end after the current iteration.
// It may be called from any listener or goroutine.
func (e *Engine) Stop() {
	e.stopping.Store(true)
}

// Start runs the engine phases and blocks until the engine was stopped.
func (e *Engine) Start() (err error) {
	if !e.running.CompareAndSwap(false, true) {
		return fmt.Errorf("engine already running")
	}
	e.stopping.Store(false)

	defer func() {
		if derr := e.deinitialize.NotifyAll(DeinitializeEventArg{}); derr != nil {
			err = multierror.Append(err, fmt.Errorf("deinitialize: %w", derr)).ErrorOrNil()
		}
		e.running.Store(false)
	}()

	if err := e.initialize.Notify(InitializeEventArg{}); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	var (
		start    = time.Now()
		lastTime = start
		ticker   *time.Ticker
	)

	if d := e.interval.Load(); d > 0 {
		ticker = time.NewTicker(d)
		defer ticker.Stop()
	}

	for !e.stopping.Load() {
		if ticker != nil {
			<-ticker.C
		}

		currentTime := time.Now()
		arg := ProcessEventArg{
			Start:  start,
			Approx: currentTime.Sub(start),
			Delta:  currentTime.Sub(lastTime),
		}
		lastTime = currentTime

		if err := e.process.Notify(arg); err != nil {
			return fmt.Errorf("process: %w", err)
		}
	}

	return nil
}
