package devices

type Readable interface {
	Read() (int, error)
}

type Writable interface {
	Write(v int) error
}

// Marker has no operations and must not be treated as a contract.
type Marker interface{}

type Keyboard struct{}

func (Keyboard) Read() (int, error) { return 0, nil }

type Printer struct{}

func (p *Printer) Write(v int) error { return nil }

type Tape struct{}

func (Tape) Read() (int, error) { return 0, nil }
func (Tape) Write(v int) error  { return nil }

// Scanner has a Read with the wrong signature — it must NOT satisfy Readable.
type Scanner struct{}

func (Scanner) Read() int { return 0 }

type journal struct{}

func (journal) Write(v int) error { return nil }
