package game

// segment is a straight piece of the current path.
type segment struct {
	x0, y0, x1, y1 float32
}

// path collects MoveTo/LineTo calls between BeginPath and Stroke.
type path struct {
	segments []segment
	penX     float32
	penY     float32
	hasPen   bool
}

func (p *path) reset() {
	p.segments = p.segments[:0]
	p.hasPen = false
}

func (p *path) moveTo(x, y float32) {
	p.penX, p.penY = x, y
	p.hasPen = true
}

// lineTo without a preceding moveTo only starts the subpath at (x, y).
func (p *path) lineTo(x, y float32) {
	if !p.hasPen {
		p.moveTo(x, y)
		return
	}
	p.segments = append(p.segments, segment{x0: p.penX, y0: p.penY, x1: x, y1: y})
	p.penX, p.penY = x, y
}
