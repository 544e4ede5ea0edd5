package systems

// Pointer is the last observed pointer position in screen pixels.
// Written by input dispatch, read by the per-frame updates.
type Pointer struct {
	X, Y     float32
	Observed bool
}

// Move records a new pointer position.
func (p *Pointer) Move(x, y float32) {
	p.X, p.Y = x, y
	p.Observed = true
}

// Normalized maps the pointer into [-1, 1] on both axes with the origin at
// the viewport center and y pointing up. A zero-size viewport yields (0, 0).
func (p Pointer) Normalized(w, h float32) (nx, ny float32) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	nx = p.X/w*2 - 1
	ny = -(p.Y/h*2 - 1)
	return nx, ny
}
