package socket

import "time"

// Clock abstracts timer creation so the reconnect policy is testable
// without wall-clock time.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a cancellable pending callback.
type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
