// Package task provides the background execution model for the answer engine:
// a buffered in-memory queue fed by the request path and a worker pool that
// drains it. Tasks are not persisted; a unit of work lives exactly as long as
// the process (acknowledged scope limit).
package task

import (
	"context"

	"github.com/google/uuid"
)

// TaskTypeAnswer is the task type for background answer production.
const TaskTypeAnswer = "answer_production"

// Task represents a unit of background work to be processed.
type Task interface {
	// ID returns the task's unique identifier.
	ID() uuid.UUID

	// Type returns the task type identifier, used for logging and metrics.
	Type() string

	// Execute runs the task logic. An error return means the task could not
	// reach its intended terminal effect; it is logged and counted, never retried.
	Execute(ctx context.Context) error
}

// QueueReader provides read-only access to the task channel, allowing workers
// to consume tasks without the ability to enqueue.
type QueueReader interface {
	// Chan returns a read-only channel for consuming tasks.
	Chan() <-chan Task
}

// QueueWriter provides write access to the task queue, allowing services to
// schedule work for processing.
type QueueWriter interface {
	// Enqueue adds a task to the queue. Returns an error if the queue is full
	// or closed.
	Enqueue(t Task) error

	// Close closes the queue, preventing further submission. Workers drain
	// whatever is still buffered.
	Close()
}
