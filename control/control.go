// Package control defines the control-channel protocol between a
// Controller handle and the receiver's Run loop: point-in-time snapshot
// requests. The control channel is independent of the sample channel —
// a snapshot is not guaranteed to include samples a Sink sent moments
// earlier, only those the receiver has already drained by the time it
// services the request.
package control

import (
	"context"

	"github.com/greynewell/mist-metrics/errors"
	"github.com/greynewell/mist-metrics/snapshot"
)

// Message is the single request variant carried on the control channel:
// a request for a point-in-time snapshot, answered on Responder exactly
// once.
type Message struct {
	Responder chan<- Result
}

// Result is what the receiver sends back in response to a Snapshot
// message: either a populated Snapshot, or an error explaining why one
// couldn't be produced.
type Result struct {
	Snapshot snapshot.Snapshot
	Err      error
}

// NewSnapshotError wraps cause as a *errors.Error with the given code,
// suitable for a Result.Err.
func NewSnapshotError(code string, cause error) error {
	if cause == nil {
		return errors.New(code, code)
	}
	return errors.Wrap(code, cause, "snapshot request failed")
}

// ErrReceiverShutdown is returned by a Controller when the receiver's
// Run loop has already exited and can no longer answer snapshot requests.
var ErrReceiverShutdown = errors.New(errors.CodeReceiverShutdown, "receiver has shut down")

// Controller is the handle application code uses to request point-in-time
// snapshots of everything a receiver has observed. It is safe to share
// across goroutines and to call concurrently: every request is just a
// send on the shared control channel.
type Controller struct {
	control chan<- Message
	closed  <-chan struct{}
}

// New builds a Controller bound to a receiver's control channel and its
// shutdown signal.
func New(control chan<- Message, closed <-chan struct{}) *Controller {
	return &Controller{control: control, closed: closed}
}

// GetSnapshot requests a snapshot and blocks until the receiver answers,
// the receiver shuts down, or ctx is cancelled.
func (c *Controller) GetSnapshot(ctx context.Context) (snapshot.Snapshot, error) {
	responder := make(chan Result, 1)
	msg := Message{Responder: responder}

	select {
	case c.control <- msg:
	case <-c.closed:
		return snapshot.Snapshot{}, ErrReceiverShutdown
	case <-ctx.Done():
		return snapshot.Snapshot{}, ctx.Err()
	}

	select {
	case res := <-responder:
		return res.Snapshot, res.Err
	case <-c.closed:
		return snapshot.Snapshot{}, ErrReceiverShutdown
	case <-ctx.Done():
		return snapshot.Snapshot{}, ctx.Err()
	}
}
