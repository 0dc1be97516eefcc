package render

type lineStyle struct {
	horizontal, vertical rune
	corners              bool
}

var (
	solid  = lineStyle{horizontal: '─', vertical: '│', corners: true}
	dotted = lineStyle{horizontal: '·', vertical: '·'}
)

type grid [][]rune

func newGrid(cols, rows int) grid {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	g := make(grid, rows)
	for y := range g {
		g[y] = make([]rune, cols)
		for x := range g[y] {
			g[y][x] = ' '
		}
	}
	return g
}

func (g grid) valid(x, y int) bool {
	return y >= 0 && y < len(g) && x >= 0 && x < len(g[y])
}

func (g grid) set(x, y int, ch rune) {
	if g.valid(x, y) {
		g[y][x] = ch
	}
}

// line sets a line cell, turning a crossing of the two solid directions
// into a junction.
func (g grid) line(x, y int, ch rune) {
	if !g.valid(x, y) {
		return
	}
	cur := g[y][x]
	if (cur == '─' && ch == '│') || (cur == '│' && ch == '─') {
		ch = '┼'
	}
	g[y][x] = ch
}

func (g grid) text(x, y int, s string) {
	for i, ch := range []rune(s) {
		g.set(x+i, y, ch)
	}
}

func (g grid) lines() []string {
	out := make([]string, len(g))
	for y, row := range g {
		out[y] = string(row)
	}
	return out
}

// route draws an elbow from (fx,fy) to (tx,ty): across to the midpoint
// column, then up or down, then across. Endpoints are left untouched and
// solid lines end in an arrow pointing at the target.
func (g grid) route(fx, fy, tx, ty int, st lineStyle) {
	if fx == tx && fy == ty {
		return
	}
	mid := (fx + tx) / 2
	if fy == ty {
		mid = tx
	}

	g.hline(fy, fx, mid, st)
	if fy != ty {
		g.vline(mid, fy, ty, st)
		g.hline(ty, mid, tx, st)
		if st.corners {
			g.set(mid, fy, corner(sign(fx-mid), sign(ty-fy)))
			g.set(mid, ty, corner(sign(tx-mid), sign(fy-ty)))
		} else {
			g.set(mid, fy, st.vertical)
			g.set(mid, ty, st.horizontal)
		}
	}
	g.set(fx, fy, ' ')
	g.set(tx, ty, ' ')

	if st.corners {
		last := mid
		if fy == ty {
			last = fx
		}
		switch {
		case tx > last:
			g.set(tx-1, ty, '▶')
		case tx < last:
			g.set(tx+1, ty, '◀')
		case ty > fy:
			g.set(tx, ty-1, '▼')
		default:
			g.set(tx, ty+1, '▲')
		}
	}
}

func (g grid) hline(y, x0, x1 int, st lineStyle) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		g.line(x, y, st.horizontal)
	}
}

func (g grid) vline(x, y0, y1 int, st lineStyle) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		g.line(x, y, st.vertical)
	}
}

// edgeLabel writes text just above the first horizontal run of an edge,
// clipped to the gap between the two handles.
func (g grid) edgeLabel(fx, fy, tx int, text string) {
	start, gap := fx+1, tx-fx-1
	if tx < fx {
		start, gap = tx+1, fx-tx-1
	}
	g.text(start, fy-1, truncate(text, gap))
}

// corner picks the box-drawing corner joining a horizontal run heading dx
// and a vertical run heading dy.
func corner(dx, dy int) rune {
	switch {
	case dx == 0:
		return '│'
	case dy == 0:
		return '─'
	case dx < 0 && dy > 0:
		return '┐'
	case dx < 0 && dy < 0:
		return '┘'
	case dx > 0 && dy > 0:
		return '┌'
	default:
		return '└'
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
