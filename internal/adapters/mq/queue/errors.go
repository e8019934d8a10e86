package queue

import "errors"

var (
	// ErrBackpressure indicates the queue rejected a job because it is at
	// capacity or closed.
	ErrBackpressure = errors.New("grammar queue is full")
)
