package transfer

import (
	"fmt"
	"io"
	"math/rand/v2"
)

// SequenceSource replays a fixed sequence of values, then reports
// ErrEndOfInput. Deterministic by construction; the standard source for
// tests and demos.
type SequenceSource struct {
	values []int
	pos    int
}

// NewSequenceSource returns a source that yields values in order.
func NewSequenceSource(values ...int) *SequenceSource {
	return &SequenceSource{values: values}
}

func (s *SequenceSource) Read() (int, error) {
	if s.pos >= len(s.values) {
		return 0, ErrEndOfInput
	}
	v := s.values[s.pos]
	s.pos++
	return v, nil
}

// Keyboard simulates keystrokes as digits from a seeded generator. Two
// keyboards built with the same seed produce the same sequence; it never
// runs out of input.
type Keyboard struct {
	rng *rand.Rand
}

// NewKeyboard returns a keyboard seeded with seed.
func NewKeyboard(seed uint64) *Keyboard {
	return &Keyboard{rng: rand.New(rand.NewPCG(seed, seed))}
}

func (k *Keyboard) Read() (int, error) {
	return k.rng.IntN(10), nil
}

// RecordingSink stores every written value, in order.
type RecordingSink struct {
	values []int
}

// NewRecordingSink returns an empty sink.
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

func (s *RecordingSink) Write(v int) error {
	s.values = append(s.values, v)
	return nil
}

// Values returns the recorded sequence.
func (s *RecordingSink) Values() []int {
	return s.values
}

// Printer renders each value as a line on an io.Writer.
type Printer struct {
	out io.Writer
}

// NewPrinter returns a printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) Write(v int) error {
	if _, err := fmt.Fprintf(p.out, "%d\n", v); err != nil {
		return fmt.Errorf("printing value: %w", err)
	}
	return nil
}

// Disk is an in-memory FIFO device satisfying both Readable and Writable:
// values written come back out in write order. Reading an empty disk
// reports ErrEndOfInput.
type Disk struct {
	buf []int
}

// NewDisk returns an empty disk.
func NewDisk() *Disk {
	return &Disk{}
}

func (d *Disk) Write(v int) error {
	d.buf = append(d.buf, v)
	return nil
}

func (d *Disk) Read() (int, error) {
	if len(d.buf) == 0 {
		return 0, ErrEndOfInput
	}
	v := d.buf[0]
	d.buf = d.buf[1:]
	return v, nil
}

// Len reports how many values the disk currently holds.
func (d *Disk) Len() int {
	return len(d.buf)
}
