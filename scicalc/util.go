package main

import (
	"image"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"

	. "github.com/fjl/gio-scicalc/internal/cd"
)

// grid lays out widgets in an equally-spaced grid.
type grid struct {
	rows, cols int
	spacing    int // pixels
}

type gridWidget func(row, col int, gtx C) D

// layout places the grid elements by calling widget for each row/column. Cells are
// placed at integer coordinates, so the grid looks slightly uneven with zero spacing.
func (g *grid) layout(gtx C, widget gridWidget) D {
	var (
		size  = gtx.Constraints.Max
		w, h  = float32(size.X), float32(size.Y)
		space = float32(g.spacing)
	)
	if g.cols > 0 {
		w = (w - float32(g.cols-1)*space) / float32(g.cols)
	}
	if g.rows > 0 {
		h = (h - float32(g.rows-1)*space) / float32(g.rows)
	}

	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			pos := image.Point{
				X: int(float32(col)*w + float32(col)*space),
				Y: int(float32(row)*h + float32(row)*space),
			}
			cgtx := gtx
			cgtx.Constraints = layout.Exact(image.Pt(int(w), int(h)))
			stk := op.Offset(pos).Push(gtx.Ops)
			widget(row, col, cgtx)
			stk.Pop()
		}
	}
	return D{Size: size}
}

// shrinkToFit renders w, scaling down if it doesn't fit into the available width.
func shrinkToFit(gtx C, w layout.Widget) D {
	// Render w with near-infinite width.
	macro := op.Record(gtx.Ops)
	wide := gtx
	wide.Constraints.Min.X = 0
	wide.Constraints.Max.X = 10e6
	dim := w(wide)
	call := macro.Stop()

	// Scale down if it exceeds the available space.
	avail := gtx.Constraints.Max
	if dim.Size.X > avail.X {
		scale := float32(avail.X) / float32(dim.Size.X)
		origin := f32.Pt(float32(avail.X), float32(avail.Y))
		tr := f32.Affine2D{}.
			Offset(f32.Pt(float32(avail.X-dim.Size.X), float32(avail.Y-dim.Size.Y))).
			Scale(origin, f32.Pt(scale, scale))
		defer op.Affine(tr).Push(gtx.Ops).Pop()
	} else {
		// Align right.
		off := image.Pt(avail.X-dim.Size.X, avail.Y-dim.Size.Y)
		defer op.Offset(off).Push(gtx.Ops).Pop()
	}
	call.Add(gtx.Ops)
	return D{Size: avail}
}

// showIf draws w if cond is true.
func showIf(cond bool, gtx C, w layout.Widget) D {
	m := op.Record(gtx.Ops)
	dim := w(gtx)
	call := m.Stop()
	if cond {
		call.Add(gtx.Ops)
	}
	return dim
}
