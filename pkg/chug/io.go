package chug

import (
	"fmt"
	"io"
)

// Reader extends io.Reader, but also provides a way to reuse a key with a different source.
type Reader interface {
	io.Reader
	// Reset will use the provided io.Reader and return to the initial stream position.
	Reset(source io.Reader)
}

// Writer extends io.Writer, but also provides a way to reuse a key with a different target.
type Writer interface {
	io.Writer
	// Reset will use the provided io.Writer and return to the initial stream position.
	Reset(target io.Writer)
}

// position tracks where in the transform a stream currently is.
type position struct {
	sched *schedule
	init  int
	cur   int
}

func newPosition(key []byte, offset ...int) (*position, error) {
	sched, err := newSchedule(key)
	if err != nil {
		return nil, err
	}
	p := &position{sched: sched}
	if len(offset) > 0 {
		if offset[0] < 0 {
			return nil, fmt.Errorf("%w: negative offset %d", ErrInvalidArgument, offset[0])
		}
		p.init = offset[0]
		p.cur = p.init
	}
	return p, nil
}

func (p *position) reset() {
	p.cur = p.init
}

var _ Reader = (*reader)(nil)

type reader struct {
	source io.Reader
	pos    *position
}

// NewReader constructs a Reader that will Reverse all bytes read, using the provided key.
// If an offset is given, the stream starts at that position instead of 0.
func NewReader(r io.Reader, key []byte, offset ...int) (Reader, error) {
	pos, err := newPosition(key, offset...)
	if err != nil {
		return nil, err
	}
	return &reader{source: r, pos: pos}, nil
}

func (r *reader) Read(out []byte) (n int, err error) {
	n, err = r.source.Read(out)
	for i := 0; i < n; i++ {
		out[i] = r.pos.sched.reverse(out[i], r.pos.cur)
		r.pos.cur++
	}
	return n, err
}

func (r *reader) Reset(source io.Reader) {
	r.source = source
	r.pos.reset()
}

var _ Writer = (*writer)(nil)

type writer struct {
	target io.Writer
	pos    *position
	buf    []byte
}

// NewWriter constructs a Writer that will apply Forward to all bytes written, using the provided key.
// If an offset is given, the stream starts at that position instead of 0.
func NewWriter(target io.Writer, key []byte, offset ...int) (Writer, error) {
	pos, err := newPosition(key, offset...)
	if err != nil {
		return nil, err
	}
	return &writer{target: target, pos: pos}, nil
}

func (w *writer) Write(in []byte) (int, error) {
	w.buf = w.buf[:0]
	for i := 0; i < len(in); i++ {
		w.buf = append(w.buf, w.pos.sched.forward(in[i], w.pos.cur+i))
	}
	n, err := w.target.Write(w.buf)
	w.pos.cur += n
	return n, err
}

func (w *writer) Reset(target io.Writer) {
	w.target = target
	w.pos.reset()
}
