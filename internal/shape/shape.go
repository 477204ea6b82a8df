// Package shape implements drawing and sizing of plane figures. Sizing is
// split into two capabilities: Dimensioned for figures whose width and
// height vary independently, and Uniform for figures with a single side
// length. A square is Uniform, not Dimensioned — it never masquerades as a
// rectangle whose dimensions secretly track each other.
package shape

import "fmt"

// Drawable renders a figure as a short textual description.
type Drawable interface {
	Draw() string
}

// Dimensioned is a figure with independently settable width and height.
// Contract: after SetWidth(w) and SetHeight(h), Area returns w*h; setting
// one dimension never changes the other.
type Dimensioned interface {
	SetWidth(w int) error
	SetHeight(h int) error
	Area() int
}

// Uniform is a figure sized by a single side length.
type Uniform interface {
	SetSide(s int) error
	Area() int
}

// Render draws each figure in order.
func Render(figures []Drawable) []string {
	out := make([]string, len(figures))
	for i, f := range figures {
		out[i] = f.Draw()
	}
	return out
}

// Stretch sizes a figure to w by h and returns the resulting area.
func Stretch(figure Dimensioned, w, h int) (int, error) {
	if err := figure.SetWidth(w); err != nil {
		return 0, fmt.Errorf("stretching figure: %w", err)
	}
	if err := figure.SetHeight(h); err != nil {
		return 0, fmt.Errorf("stretching figure: %w", err)
	}
	return figure.Area(), nil
}

// Rectangle has independent width and height.
type Rectangle struct {
	width  int
	height int
}

// NewRectangle returns a w by h rectangle.
func NewRectangle(w, h int) (*Rectangle, error) {
	r := &Rectangle{}
	if err := r.SetWidth(w); err != nil {
		return nil, err
	}
	if err := r.SetHeight(h); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Rectangle) SetWidth(w int) error {
	if w < 0 {
		return fmt.Errorf("rectangle width must be non-negative, got %d", w)
	}
	r.width = w
	return nil
}

func (r *Rectangle) SetHeight(h int) error {
	if h < 0 {
		return fmt.Errorf("rectangle height must be non-negative, got %d", h)
	}
	r.height = h
	return nil
}

func (r *Rectangle) Area() int {
	return r.width * r.height
}

func (r *Rectangle) Draw() string {
	return fmt.Sprintf("rectangle %dx%d", r.width, r.height)
}

// Square has one side length. It shares an Area operation with Rectangle
// but satisfies a different sizing capability.
type Square struct {
	side int
}

// NewSquare returns a square with the given side.
func NewSquare(side int) (*Square, error) {
	s := &Square{}
	if err := s.SetSide(side); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Square) SetSide(side int) error {
	if side < 0 {
		return fmt.Errorf("square side must be non-negative, got %d", side)
	}
	s.side = side
	return nil
}

func (s *Square) Area() int {
	return s.side * s.side
}

func (s *Square) Draw() string {
	return fmt.Sprintf("square %d", s.side)
}

// Circle is drawable but has no settable dimensions.
type Circle struct {
	radius int
}

// NewCircle returns a circle with the given radius.
func NewCircle(radius int) *Circle {
	return &Circle{radius: radius}
}

func (c *Circle) Draw() string {
	return fmt.Sprintf("circle r=%d", c.radius)
}
