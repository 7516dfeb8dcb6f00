package mines

import (
	"fmt"
	"iter"
)

type Point struct {
	Row, Col int
}

func (p Point) String() string {
	return fmt.Sprintf("[%d:%d]", p.Row, p.Col)
}

// Dims is the shape of a board. Cells are stored row-major.
type Dims struct {
	Rows, Cols int
}

func (d Dims) Len() int {
	return d.Rows * d.Cols
}

func (d Dims) Contains(p Point) bool {
	return 0 <= p.Row && p.Row < d.Rows && 0 <= p.Col && p.Col < d.Cols
}

func (d Dims) Index(p Point) int {
	return p.Row*d.Cols + p.Col
}

func (d Dims) Point(i int) Point {
	return Point{Row: i / d.Cols, Col: i % d.Cols}
}

var neighborOffsets = [8]Point{
	{-1, -1}, {-1, 0}, {-1, +1},
	{0, -1}, {0, +1},
	{+1, -1}, {+1, 0}, {+1, +1},
}

// Neighbors yields the in-bounds cells surrounding p: 8 in the interior,
// 5 on an edge, 3 in a corner. Bounds are checked per axis, so a cell in
// column 0 never sees column Cols-1 of the adjacent row.
func (d Dims) Neighbors(p Point) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for _, o := range neighborOffsets {
			n := Point{Row: p.Row + o.Row, Col: p.Col + o.Col}
			if !d.Contains(n) {
				continue
			}
			if !yield(n) {
				return
			}
		}
	}
}
