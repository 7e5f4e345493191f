package blocks

import "math/rand"

// templateCells describes the shape catalog as filled-cell offsets.
// Orientation variety comes from Rotate, so each entry is a canonical form.
var templateCells = [][]Cell{
	// single block
	{{0, 0}},
	// domino
	{{0, 0}, {0, 1}},
	// line of three
	{{0, 0}, {0, 1}, {0, 2}},
	// line of four
	{{0, 0}, {0, 1}, {0, 2}, {0, 3}},
	// 2x2 square
	{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	// 3x3 square
	{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}},
	// small corner
	{{0, 0}, {1, 0}, {1, 1}},
	// large corner
	{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}},
	// T
	{{0, 0}, {0, 1}, {0, 2}, {1, 1}},
	// S
	{{0, 1}, {0, 2}, {1, 0}, {1, 1}},
	// Z
	{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
	// L
	{{0, 0}, {1, 0}, {2, 0}, {2, 1}},
}

// Templates returns the shape catalog as colorless shapes, in catalog
// order.
func Templates() []Shape {
	out := make([]Shape, len(templateCells))
	for i, cells := range templateCells {
		out[i] = NewShape(cells, ColorNone)
	}
	return out
}

// ColorWeight pairs a color with its relative selection weight.
// Weights need not be normalized; they only need to be positive.
type ColorWeight struct {
	Color  ColorName
	Weight float64
}

// DefaultColorWeights is the standard color table. Blue and green show up
// a little more often than the rest.
var DefaultColorWeights = []ColorWeight{
	{ColorRed, 1},
	{ColorOrange, 1},
	{ColorYellow, 1},
	{ColorGreen, 1.5},
	{ColorBlue, 1.5},
	{ColorPurple, 1},
}

// Generator produces random shapes: a template chosen uniformly and a
// color chosen by weighted selection. All entropy comes from the injected
// rand source so tests can seed it.
type Generator struct {
	rng         *rand.Rand
	colors      []ColorWeight
	totalWeight float64
	templates   []Shape
}

// NewGenerator builds a generator over the standard template catalog.
// Panics on a nil rand source, an empty color table, or a non-positive
// weight; those are caller configuration bugs.
func NewGenerator(rng *rand.Rand, colors []ColorWeight) *Generator {
	if rng == nil {
		panic("blocks: generator needs a rand source")
	}
	if len(colors) == 0 {
		panic("blocks: generator needs at least one color weight")
	}
	total := 0.0
	for _, cw := range colors {
		if cw.Weight <= 0 {
			panic("blocks: color weights must be positive")
		}
		total += cw.Weight
	}
	templates := make([]Shape, len(templateCells))
	for i, cells := range templateCells {
		templates[i] = NewShape(cells, ColorNone)
	}
	return &Generator{
		rng:         rng,
		colors:      append([]ColorWeight(nil), colors...),
		totalWeight: total,
		templates:   templates,
	}
}

// Next returns a freshly generated shape.
func (g *Generator) Next() Shape {
	template := g.templates[g.rng.Intn(len(g.templates))]
	return NewShape(template.Cells(), g.pickColor())
}

// TemplateCount returns the size of the shape catalog.
func (g *Generator) TemplateCount() int {
	return len(g.templates)
}

func (g *Generator) pickColor() ColorName {
	target := g.rng.Float64() * g.totalWeight
	for _, cw := range g.colors {
		target -= cw.Weight
		if target < 0 {
			return cw.Color
		}
	}
	// Float rounding can leave target at exactly zero past the last entry.
	return g.colors[len(g.colors)-1].Color
}
