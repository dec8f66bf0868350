package view

// Point is a position in page or play-area coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p translated so that o becomes the origin.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Union returns the smallest rectangle covering both r and o.
func (r Rect) Union(o Rect) Rect {
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.X+r.W, o.X+o.W), max(r.Y+r.H, o.Y+o.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Origin returns the top-left corner of r.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Geometry sizes the board. Units are whatever the front end uses: pixels
// in the browser, character cells in the terminal.
type Geometry struct {
	CardWidth  float64
	CardHeight float64
	ColumnGap  float64
	RowGap     float64
	// FanOffset is how far each card in a fanned stack is shifted.
	FanOffset float64
	// DragMargin is how far above the pointer a dragged stack is held.
	DragMargin float64
	// Origin is the page position of the play area's top-left corner.
	Origin Point
}

// DefaultGeometry returns browser pixel geometry for standard card images.
func DefaultGeometry() Geometry {
	return Geometry{
		CardWidth:  71,
		CardHeight: 96,
		ColumnGap:  16,
		RowGap:     24,
		FanOffset:  20,
		DragMargin: 10,
	}
}

// cell returns the rectangle of the grid cell at row, col.
func (g Geometry) cell(row, col int) Rect {
	return Rect{
		X: float64(col) * (g.CardWidth + g.ColumnGap),
		Y: float64(row) * (g.CardHeight + g.RowGap),
		W: g.CardWidth,
		H: g.CardHeight,
	}
}
