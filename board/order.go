package board

// A ScanOrder is the fixed mapping from search depth (1..rows*cols) to a
// board cell. It is precomputed once per board shape and never changes
// during a search: recomputing a locally-best next cell dynamically narrows
// the tree early but costs far more where the tree is widest, so a good
// fixed order wins.
//
// Every order produced here satisfies the placement invariant the solver
// depends on: when depth d is filled, the right and bottom neighbors of its
// cell are already filled (a previously placed tile or a margin sentinel).
type ScanOrder struct {
	rows, cols int
	pos        []Pos       // indexed by depth-1
	class      []CellClass // indexed by depth-1
}

type Pos struct {
	Row, Col int
}

// NewScanOrder builds the default order: rows bottom to top, each row right
// to left. The open frontier is then one row wide for the whole search,
// which keeps the tree narrow near its widest point.
func NewScanOrder(rows, cols int) *ScanOrder {
	o := &ScanOrder{rows: rows, cols: cols}
	o.pos = make([]Pos, 0, rows*cols)
	for r := rows - 1; r >= 0; r-- {
		for c := cols - 1; c >= 0; c-- {
			o.pos = append(o.pos, Pos{Row: r, Col: c})
		}
	}
	o.buildClasses()
	return o
}

func (o *ScanOrder) buildClasses() {
	o.class = make([]CellClass, len(o.pos))
	for i, p := range o.pos {
		o.class[i] = ClassOf(p.Row, p.Col, o.rows, o.cols)
	}
}

// MaxDepth is the number of cells, i.e. the depth of a full board.
func (o *ScanOrder) MaxDepth() int { return len(o.pos) }

// At returns the cell filled at a depth in 1..MaxDepth.
func (o *ScanOrder) At(depth int) Pos { return o.pos[depth-1] }

// Class returns the cell class at a depth.
func (o *ScanOrder) Class(depth int) CellClass { return o.class[depth-1] }

// DepthOf returns the depth that fills (row, col), or 0 if out of range.
func (o *ScanOrder) DepthOf(row, col int) int {
	for i, p := range o.pos {
		if p.Row == row && p.Col == col {
			return i + 1
		}
	}
	return 0
}

// Neighbors returns the two cells constraining the given depth: the right
// and bottom neighbors of its cell. By construction both are already filled
// (or are margin sentinels) when the depth is reached.
func (o *ScanOrder) Neighbors(depth int) (right, bottom Pos) {
	p := o.pos[depth-1]
	return Pos{Row: p.Row, Col: p.Col + 1}, Pos{Row: p.Row + 1, Col: p.Col}
}
