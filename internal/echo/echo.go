// File: internal/echo/echo.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Reactor-driven datagram echo service. Replies that hit a full send buffer
// are parked in a FIFO and flushed when the socket reports writability.

package echo

import (
	"context"
	"errors"
	"fmt"
	"net/netip"

	"github.com/eapache/queue"
	"github.com/momentics/hioload-udplite/api"
	"github.com/momentics/hioload-udplite/control"
	"github.com/momentics/hioload-udplite/pool"
	"github.com/momentics/hioload-udplite/reactor"
	"github.com/momentics/hioload-udplite/udplite"
	"go.uber.org/zap"
)

const (
	defaultBufferSize = 65535
	defaultMaxPending = 1024
	defaultPollMs     = 100
)

// Service echoes every datagram received on conn back to its sender.
// conn must be nonblocking: the read handler drains it until would-block.
type Service struct {
	conn    api.DatagramConn
	reactor reactor.EventReactor
	metrics *control.MetricsRegistry
	log     *zap.Logger

	buf        []byte
	pending    *queue.Queue
	payloads   *pool.BytePool
	maxPending int
	writing    bool
	pollMs     int
}

type reply struct {
	payload []byte
	to      netip.AddrPort
}

// Option customizes a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithMetrics sets the registry receiving traffic counters.
func WithMetrics(m *control.MetricsRegistry) Option {
	return func(s *Service) { s.metrics = m }
}

// WithBufferSize sets the receive buffer size, at most pool.MaxDatagram.
// Longer datagrams are truncated.
func WithBufferSize(n int) Option {
	return func(s *Service) {
		s.buf = nil
		if n > 0 && n <= pool.MaxDatagram {
			s.buf = make([]byte, n)
		}
	}
}

// WithMaxPending bounds the replies parked while the socket is not writable.
// Replies beyond the bound are dropped.
func WithMaxPending(n int) Option {
	return func(s *Service) { s.maxPending = n }
}

// WithPollInterval sets how often Run wakes to check for cancellation.
func WithPollInterval(ms int) Option {
	return func(s *Service) { s.pollMs = ms }
}

// New registers conn with r for read readiness.
func New(conn api.DatagramConn, r reactor.EventReactor, opts ...Option) (*Service, error) {
	s := &Service{
		conn:       conn,
		reactor:    r,
		metrics:    control.NewMetricsRegistry(),
		log:        zap.NewNop(),
		buf:        make([]byte, defaultBufferSize),
		pending:    queue.New(),
		maxPending: defaultMaxPending,
		pollMs:     defaultPollMs,
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.buf) == 0 || s.maxPending <= 0 {
		return nil, fmt.Errorf("echo: buffer %d, max pending %d: %w", len(s.buf), s.maxPending, api.ErrInvalidArgument)
	}
	s.payloads = pool.NewBytePool(len(s.buf))
	if err := reactor.RegisterSource(r, conn, reactor.EventRead, s.onReady); err != nil {
		return nil, fmt.Errorf("echo: register: %w", err)
	}
	return s, nil
}

// Metrics returns the registry the service reports to.
func (s *Service) Metrics() *control.MetricsRegistry { return s.metrics }

// Pending returns the number of parked replies.
func (s *Service) Pending() int { return s.pending.Length() }

// Run polls until ctx is cancelled. Cancellation is not an error.
func (s *Service) Run(ctx context.Context) error {
	if addr, err := s.conn.LocalAddr(); err == nil {
		s.log.Info("echo service running", zap.Stringer("addr", addr))
	}
	err := reactor.Loop(ctx, s.reactor, s.pollMs)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// Close unregisters the socket. The socket itself stays open.
func (s *Service) Close() error {
	return s.reactor.Unregister(s.conn.RawFD())
}

func (s *Service) onReady(_ uintptr, events reactor.FDEventType) {
	if events&reactor.EventError != 0 {
		s.metrics.Add(control.MetricErrors, 1)
		s.log.Warn("socket reported an error condition", zap.Stringer("events", events))
	}
	if events&reactor.EventWrite != 0 {
		s.flush()
	}
	if events&(reactor.EventRead|reactor.EventError) != 0 {
		s.drain()
	}
}

// drain reads until the socket would block.
func (s *Service) drain() {
	for {
		n, from, err := s.conn.RecvFrom(s.buf)
		if err != nil {
			if !udplite.IsWouldBlock(err) {
				s.metrics.Add(control.MetricErrors, 1)
				s.log.Warn("receive failed", zap.Error(err))
			}
			return
		}
		s.metrics.Add(control.MetricDatagramsIn, 1)
		s.metrics.Add(control.MetricBytesIn, int64(n))
		s.log.Debug("datagram received", zap.Stringer("from", from), zap.Int("bytes", n))
		s.send(reply{payload: s.buf[:n], to: from})
	}
}

// send transmits r now, or parks it behind earlier replies. r.payload may
// alias the receive buffer; park copies it.
func (s *Service) send(r reply) {
	if s.pending.Length() > 0 {
		s.park(r)
		return
	}
	err := s.transmit(r)
	switch {
	case err == nil:
	case udplite.IsWouldBlock(err):
		s.metrics.Add(control.MetricWouldBlock, 1)
		s.park(r)
	default:
		s.metrics.Add(control.MetricErrors, 1)
		s.log.Warn("send failed", zap.Stringer("to", r.to), zap.Error(err))
	}
}

func (s *Service) transmit(r reply) error {
	n, err := s.conn.SendTo(r.payload, r.to)
	if err != nil {
		return err
	}
	s.metrics.Add(control.MetricDatagramsOut, 1)
	s.metrics.Add(control.MetricBytesOut, int64(n))
	return nil
}

func (s *Service) park(r reply) {
	if s.pending.Length() >= s.maxPending {
		s.metrics.Add(control.MetricDropped, 1)
		s.log.Debug("reply dropped, queue full", zap.Stringer("to", r.to))
		return
	}
	r.payload = s.payloads.Copy(r.payload)
	s.pending.Add(r)
	s.metrics.Add(control.MetricQueued, 1)
	s.setWriting(true)
}

// flush sends parked replies in order until the socket would block again.
func (s *Service) flush() {
	for s.pending.Length() > 0 {
		r := s.pending.Peek().(reply)
		err := s.transmit(r)
		if udplite.IsWouldBlock(err) {
			s.metrics.Add(control.MetricWouldBlock, 1)
			return
		}
		s.pending.Remove()
		s.payloads.Put(r.payload)
		if err != nil {
			s.metrics.Add(control.MetricErrors, 1)
			s.log.Warn("send failed", zap.Stringer("to", r.to), zap.Error(err))
		}
	}
	s.setWriting(false)
}

func (s *Service) setWriting(on bool) {
	if s.writing == on {
		return
	}
	events := reactor.EventRead
	if on {
		events |= reactor.EventWrite
	}
	if err := s.reactor.Modify(s.conn.RawFD(), events); err != nil {
		s.log.Warn("changing interest failed", zap.Stringer("events", events), zap.Error(err))
		return
	}
	s.writing = on
}
