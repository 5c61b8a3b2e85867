package cli

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/boxscope/pkg/geom"
	"github.com/matzehuels/boxscope/pkg/scene"
)

// cellAspect is how many viewport units one terminal row spans, relative to
// one column. Terminal cells are roughly twice as tall as they are wide.
const cellAspect = 2

// ink selects the style a canvas cell is drawn with. Higher values win when
// boxes overlap.
type ink uint8

const (
	inkBlank ink = iota
	inkBox
	inkSelected
	inkHover
)

var inkStyles = map[ink]lipgloss.Style{
	inkBox:      StyleDim,
	inkSelected: StyleSuccess.Bold(true),
	inkHover:    StyleHighlight.Bold(true),
}

type cell struct {
	r   rune
	ink ink
}

// canvas is a character grid the focused tree is drawn on. One column is one
// viewport unit wide and one row is cellAspect units tall.
type canvas struct {
	w, h  int
	cells [][]cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: max(w, 0), h: max(h, 0)}
	c.cells = make([][]cell, c.h)
	for y := range c.cells {
		row := make([]cell, c.w)
		for x := range row {
			row[x] = cell{r: ' '}
		}
		c.cells[y] = row
	}
	return c
}

func (c *canvas) set(x, y int, r rune, k ink) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	if cur := c.cells[y][x]; cur.ink > k && cur.r != ' ' {
		return
	}
	c.cells[y][x] = cell{r: r, ink: k}
}

// box draws a rectangle border with corners (x0, y0) and (x1, y1), inclusive,
// and writes label into the top edge.
func (c *canvas) box(x0, y0, x1, y1 int, label string, k ink) {
	if x1 < x0 || y1 < y0 {
		return
	}
	if x0 == x1 || y0 == y1 {
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				c.set(x, y, '·', k)
			}
		}
		return
	}

	for x := x0 + 1; x < x1; x++ {
		c.set(x, y0, '─', k)
		c.set(x, y1, '─', k)
	}
	for y := y0 + 1; y < y1; y++ {
		c.set(x0, y, '│', k)
		c.set(x1, y, '│', k)
	}
	c.set(x0, y0, '┌', k)
	c.set(x1, y0, '┐', k)
	c.set(x0, y1, '└', k)
	c.set(x1, y1, '┘', k)

	room := x1 - x0 - 1
	if room <= 0 || label == "" {
		return
	}
	runes := []rune(label)
	if len(runes) > room {
		runes = runes[:room]
	}
	for i, r := range runes {
		c.set(x0+1+i, y0, r, k)
	}
}

// String renders the grid, styling runs of equal ink together.
func (c *canvas) String() string {
	var b strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].ink == row[start].ink {
				continue
			}
			run := make([]rune, 0, x-start)
			for _, cl := range row[start:x] {
				run = append(run, cl.r)
			}
			if style, ok := inkStyles[row[start].ink]; ok {
				b.WriteString(style.Render(string(run)))
			} else {
				b.WriteString(string(run))
			}
			start = x
		}
	}
	return b.String()
}

// drawTree draws root and its visible descendants at the given scale, in
// snapshot units per column. Only the active child of a node is drawn when
// one is set, matching what hit testing can reach.
func drawTree(c *canvas, root *scene.Node, scale float64, hover []string, selected string) {
	if root == nil || scale <= 0 {
		return
	}
	hovered := make(map[string]bool, len(hover))
	for _, id := range hover {
		hovered[id] = true
	}

	var draw func(n *scene.Node, origin geom.Coordinate)
	draw = func(n *scene.Node, origin geom.Coordinate) {
		b := n.Bounds.Translate(origin)
		k := inkBox
		switch {
		case hovered[n.ID]:
			k = inkHover
		case n.ID == selected:
			k = inkSelected
		}
		x0, y0 := toCell(b.X, b.Y, scale)
		x1, y1 := toCellEnd(b.Right(), b.Bottom(), scale)
		c.box(x0, y0, x1, y1, n.ID, k)

		for _, child := range n.Visible() {
			draw(child, b.Origin())
		}
	}
	draw(root, geom.Coordinate{})
}

// toCell returns the cell containing the top-left corner (x, y).
func toCell(x, y, scale float64) (int, int) {
	return int(math.Floor(x / scale)), int(math.Floor(y / scale / cellAspect))
}

// toCellEnd returns the last cell covered by a box ending at (x, y).
func toCellEnd(x, y, scale float64) (int, int) {
	return int(math.Ceil(x/scale)) - 1, int(math.Ceil(y/scale/cellAspect)) - 1
}
