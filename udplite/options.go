// File: udplite/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package udplite

// Option customizes a socket while Bind creates it.
type Option func(*bindOptions)

type bindOptions struct {
	nonblocking  bool
	sendCoverage *Coverage
	recvCoverage *Coverage
}

// WithNonblocking creates the descriptor in nonblocking mode.
func WithNonblocking() Option {
	return func(o *bindOptions) {
		o.nonblocking = true
	}
}

// WithSendChecksumCoverage applies SetSendChecksumCoverage after binding.
func WithSendChecksumCoverage(c Coverage) Option {
	return func(o *bindOptions) {
		o.sendCoverage = &c
	}
}

// WithRecvChecksumCoverage applies SetRecvChecksumCoverage after binding.
func WithRecvChecksumCoverage(c Coverage) Option {
	return func(o *bindOptions) {
		o.recvCoverage = &c
	}
}

func collectOptions(opts []Option) bindOptions {
	var o bindOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// applyCoverage sets the coverage options requested at bind time.
func (o bindOptions) applyCoverage(s *Socket) error {
	if o.sendCoverage != nil {
		if err := s.SetSendChecksumCoverage(*o.sendCoverage); err != nil {
			return err
		}
	}
	if o.recvCoverage != nil {
		if err := s.SetRecvChecksumCoverage(*o.recvCoverage); err != nil {
			return err
		}
	}
	return nil
}
