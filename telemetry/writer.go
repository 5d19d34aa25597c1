package telemetry

import (
	"context"
	"net"
	"time"

	channerics "github.com/niceyeti/channerics/channels"
	"github.com/rs/zerolog"
)

// Writer streams frames to a TCP telemetry endpoint, reconnecting with a configurable backoff on
// socket error and holding a bounded queue that drops the oldest frame when full, per spec §6
// ("Reconnects with a configurable backoff; unsent packets are re-queued on socket error.").
type Writer struct {
	addr           string
	backoffInitial time.Duration
	backoffMax     time.Duration
	logger         zerolog.Logger

	queue chan Frame
	done  chan struct{}
}

// NewWriter builds a Writer bound to addr, queuing up to queueDepth frames.
func NewWriter(addr string, queueDepth int, backoffInitial, backoffMax time.Duration, logger zerolog.Logger) *Writer {
	return &Writer{
		addr:           addr,
		backoffInitial: backoffInitial,
		backoffMax:     backoffMax,
		logger:         logger.With().Str("component", "telemetry.Writer").Logger(),
		queue:          make(chan Frame, queueDepth),
		done:           make(chan struct{}),
	}
}

// Enqueue pushes f onto the send queue, dropping the oldest queued frame if full.
func (w *Writer) Enqueue(f Frame) {
	select {
	case w.queue <- f:
		return
	default:
	}
	select {
	case <-w.queue:
	default:
	}
	select {
	case w.queue <- f:
	default:
	}
}

// Run drives the connect/send loop until ctx is cancelled or Close is called.
func (w *Writer) Run(ctx context.Context) {
	backoff := w.backoffInitial
	for {
		conn, err := net.Dial("tcp", w.addr)
		if err != nil {
			w.logger.Warn().Err(err).Dur("backoff", backoff).Msg("telemetry dial failed")
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return
			case <-w.done:
				return
			}
			backoff = nextBackoff(backoff, w.backoffMax)
			continue
		}
		backoff = w.backoffInitial
		w.drain(ctx, conn)
		conn.Close()
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		default:
		}
	}
}

// drain writes queued frames to conn until a write fails or the writer is stopped.
func (w *Writer) drain(ctx context.Context, conn net.Conn) {
	enc := NewEncoder(conn)
	for f := range channerics.OrDone(mergeDone(ctx, w.done), w.queue) {
		if err := enc.Encode(f); err != nil {
			w.logger.Warn().Err(err).Msg("telemetry write failed, re-queuing")
			w.Enqueue(f)
			return
		}
	}
}

// Close stops Run and releases the writer's done channel.
func (w *Writer) Close() {
	select {
	case <-w.done:
	default:
		close(w.done)
	}
}

func nextBackoff(cur, max time.Duration) time.Duration {
	next := cur * 2
	if next > max {
		return max
	}
	return next
}

func mergeDone(ctx context.Context, done <-chan struct{}) <-chan struct{} {
	out := make(chan struct{})
	go func() {
		defer close(out)
		select {
		case <-ctx.Done():
		case <-done:
		}
	}()
	return out
}
