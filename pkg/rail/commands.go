package rail

import (
	"github.com/matzehuels/siderail/pkg/dom"
	"github.com/matzehuels/siderail/pkg/errors"
	"github.com/matzehuels/siderail/pkg/observability"
)

// Command is a deferred operation against a rail.
type Command func(*Rail)

// CommandQueue is a FIFO of commands stored on a rail's host element.
//
// Until a rail is built on the host, pushed commands are buffered. Building
// the rail drains the buffer in push order. From then on every push runs
// immediately: the queue drains from the front until empty before Push
// returns. Each command is removed from the queue as it runs and runs exactly
// once.
//
// A command pushed while another command is running is appended and run by
// the drain already in progress, after the commands ahead of it. A command
// that panics is recovered and logged; the drain carries on with the next.
//
// CommandQueue is not safe for concurrent use.
type CommandQueue struct {
	pending  []Command
	rail     *Rail
	draining bool
}

// Commands returns the command queue of host, creating it on first use.
func Commands(host *dom.Node) *CommandQueue {
	if q, ok := host.Prop(CommandsProp).(*CommandQueue); ok {
		return q
	}
	q := &CommandQueue{}
	host.SetProp(CommandsProp, q)
	return q
}

// Push appends cmds and, once a rail is attached, drains the queue.
// It returns the number of commands still waiting.
func (q *CommandQueue) Push(cmds ...Command) int {
	for _, cmd := range cmds {
		if cmd != nil {
			q.pending = append(q.pending, cmd)
		}
	}
	if q.rail != nil {
		q.drain()
	}
	return len(q.pending)
}

// Len returns the number of commands waiting to run.
func (q *CommandQueue) Len() int { return len(q.pending) }

// Ready reports whether a rail is attached.
func (q *CommandQueue) Ready() bool { return q.rail != nil }

// Truncate drops waiting commands beyond the first n. Once a rail is
// attached it has no effect: commands only leave the queue by running.
func (q *CommandQueue) Truncate(n int) {
	if q.rail != nil || n < 0 || n >= len(q.pending) {
		return
	}
	clear(q.pending[n:])
	q.pending = q.pending[:n]
}

// attach binds the queue to r and runs everything buffered so far.
func (q *CommandQueue) attach(r *Rail) {
	q.rail = r
	q.drain()
}

func (q *CommandQueue) drain() {
	if q.draining {
		return
	}
	q.draining = true
	defer func() { q.draining = false }()

	for len(q.pending) > 0 {
		cmd := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		q.run(cmd)
	}
}

func (q *CommandQueue) run(cmd Command) {
	r := q.rail
	defer func() {
		if v := recover(); v != nil {
			err := errors.New(errors.ErrCodeCommandFailed, "queued command panicked: %v", v)
			r.logger.Error("error invoking queued command", "err", err)
			observability.Rail().OnCommandFailed(r.name, err)
		}
	}()
	cmd(r)
}
