package blocks

import (
	"fmt"
	"log"
	"os"

	lua "github.com/yuin/gopher-lua"
)

// BoardContent is an alternate board definition loaded from a content
// script: a pre-filled starting board plus the target shapes the mode
// asks the player to build. The engine only consumes the result; the
// loading mechanism stays at this boundary.
type BoardContent struct {
	Name         string
	Board        Board
	TargetShapes []Shape
}

// cell codes in a layout matrix: 0 is empty, 1-6 pre-fill a block of the
// indexed color, 11-16 set the decorative background target color.
var indexedColors = []ColorName{
	ColorRed, ColorOrange, ColorYellow, ColorGreen, ColorBlue, ColorPurple,
}

func colorForIndex(i int) ColorName {
	if i < 1 || i > len(indexedColors) {
		return ColorNone
	}
	return indexedColors[i-1]
}

// DefaultAdventureContent is the compiled-in fallback layout used when
// the content script is missing or malformed: a ring of reserved corner
// blocks around an open center.
func DefaultAdventureContent() BoardContent {
	b := NewBoard()
	for _, rc := range [][2]int{{1, 1}, {1, BoardSize}, {BoardSize, 1}, {BoardSize, BoardSize}} {
		b = b.WithBlock(rc[0], rc[1], ColorPurple)
	}
	return BoardContent{
		Name:  "adventure",
		Board: b,
		TargetShapes: []Shape{
			NewShape([]Cell{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, ColorBlue),
			NewShape([]Cell{{0, 0}, {0, 1}, {0, 2}}, ColorGreen),
		},
	}
}

// LoadContent reads an alternate board layout from a Lua content script.
// Any load or parse failure falls back to the compiled-in default, the
// same way the rest of the app treats optional content.
func LoadContent(path, layoutName string) BoardContent {
	fallback := DefaultAdventureContent()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("[INFO] %s not found, using default layout", path)
		return fallback
	}

	L := lua.NewState()
	defer L.Close()

	if err := L.DoFile(path); err != nil {
		log.Printf("[INFO] Error loading %s: %v. Using default layout.", path, err)
		return fallback
	}

	// The script returns its content table at the top of the stack.
	root, ok := L.Get(-1).(*lua.LTable)
	if !ok {
		log.Printf("[INFO] %s did not return a table, using default layout", path)
		return fallback
	}

	layouts, ok := root.RawGetString("layouts").(*lua.LTable)
	if !ok {
		return fallback
	}
	layout, ok := layouts.RawGetString(layoutName).(*lua.LTable)
	if !ok {
		log.Printf("[INFO] Layout %q not found in %s, using default", layoutName, path)
		return fallback
	}

	board, err := parseLayout(layout)
	if err != nil {
		log.Printf("[INFO] Bad layout %q in %s: %v. Using default.", layoutName, path, err)
		return fallback
	}

	content := BoardContent{Name: layoutName, Board: board}
	if targets, ok := root.RawGetString("targets").(*lua.LTable); ok {
		content.TargetShapes = parseTargets(targets)
	}
	if len(content.TargetShapes) == 0 {
		content.TargetShapes = fallback.TargetShapes
	}
	return content
}

func parseLayout(layout *lua.LTable) (Board, error) {
	board := NewBoard()
	row := 0
	var parseErr error
	layout.ForEach(func(_, rowVal lua.LValue) {
		row++
		rowTbl, ok := rowVal.(*lua.LTable)
		if !ok || row > BoardSize {
			return
		}
		col := 0
		rowTbl.ForEach(func(_, cellVal lua.LValue) {
			col++
			if col > BoardSize {
				return
			}
			num, ok := cellVal.(lua.LNumber)
			if !ok {
				return
			}
			code := int(num)
			switch {
			case code == 0:
			case code >= 1 && code <= len(indexedColors):
				board = board.WithBlock(row, col, colorForIndex(code))
			case code >= 11 && code <= 10+len(indexedColors):
				board = board.WithBackground(row, col, colorForIndex(code-10))
			}
		})
	})
	if row == 0 {
		parseErr = fmt.Errorf("layout has no rows")
	}
	return board, parseErr
}

// cellsFitMatrix rejects target shapes whose cells span more than the
// shape bounding matrix; NewShape treats those as a programming error,
// but content files are user data.
func cellsFitMatrix(cells []Cell) bool {
	minR, maxR := cells[0].Row, cells[0].Row
	minC, maxC := cells[0].Col, cells[0].Col
	for _, c := range cells[1:] {
		if c.Row < minR {
			minR = c.Row
		}
		if c.Row > maxR {
			maxR = c.Row
		}
		if c.Col < minC {
			minC = c.Col
		}
		if c.Col > maxC {
			maxC = c.Col
		}
	}
	return maxR-minR < ShapeGridSize && maxC-minC < ShapeGridSize
}

func parseTargets(targets *lua.LTable) []Shape {
	var shapes []Shape
	targets.ForEach(func(_, targetVal lua.LValue) {
		tbl, ok := targetVal.(*lua.LTable)
		if !ok {
			return
		}
		color := ColorBlue
		if num, ok := tbl.RawGetString("color").(lua.LNumber); ok {
			if c := colorForIndex(int(num)); c != ColorNone {
				color = c
			}
		}
		cellsTbl, ok := tbl.RawGetString("cells").(*lua.LTable)
		if !ok {
			return
		}
		var cells []Cell
		cellsTbl.ForEach(func(_, cellVal lua.LValue) {
			pair, ok := cellVal.(*lua.LTable)
			if !ok {
				return
			}
			r, rok := pair.RawGetInt(1).(lua.LNumber)
			c, cok := pair.RawGetInt(2).(lua.LNumber)
			if rok && cok {
				cells = append(cells, Cell{Row: int(r), Col: int(c)})
			}
		})
		if len(cells) > 0 && cellsFitMatrix(cells) {
			shapes = append(shapes, NewShape(cells, color))
		}
	})
	return shapes
}
