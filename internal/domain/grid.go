package domain

import "fmt"

// Tile - клетка карты. Блокировка движения и обзора задаются независимо.
type Tile struct {
	BlocksMovement bool `json:"blocksMovement"`
	BlocksSight    bool `json:"blocksSight"`
	Explored       bool `json:"explored"`
}

// NewTile создаёт клетку; обзор по умолчанию блокируется так же, как движение.
func NewTile(blocksMovement bool, blocksSight ...bool) Tile {
	sight := blocksMovement
	if len(blocksSight) > 0 {
		sight = blocksSight[0]
	}
	return Tile{BlocksMovement: blocksMovement, BlocksSight: sight}
}

// Grid - плоская сетка клеток уровня (индекс = y*Width + x).
type Grid struct {
	Width  int
	Height int
	Tiles  []Tile
}

// NewGrid создаёт сетку, целиком заполненную стенами.
func NewGrid(width, height int) *Grid {
	tiles := make([]Tile, width*height)
	for i := range tiles {
		tiles[i] = NewTile(true)
	}
	return &Grid{Width: width, Height: height, Tiles: tiles}
}

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

func (g *Grid) Index(x, y int) int {
	return y*g.Width + x
}

// Coords - обратное преобразование индекса в координаты.
func (g *Grid) Coords(idx int) (int, int) {
	return idx % g.Width, idx / g.Width
}

// At возвращает клетку для чтения и изменения.
func (g *Grid) At(x, y int) (*Tile, error) {
	if !g.InBounds(x, y) {
		return nil, fmt.Errorf("tile (%d,%d) in %dx%d grid: %w", x, y, g.Width, g.Height, ErrOutOfBounds)
	}
	return &g.Tiles[g.Index(x, y)], nil
}

// IsBlocked: всё, что за границей карты, считается стеной.
func (g *Grid) IsBlocked(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.Tiles[g.Index(x, y)].BlocksMovement
}

func (g *Grid) BlocksSight(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.Tiles[g.Index(x, y)].BlocksSight
}

// Carve делает клетку проходимой и прозрачной.
func (g *Grid) Carve(x, y int) error {
	t, err := g.At(x, y)
	if err != nil {
		return err
	}
	t.BlocksMovement = false
	t.BlocksSight = false
	return nil
}

// Set перезаписывает клетку целиком (например, прозрачная преграда).
func (g *Grid) Set(x, y int, tile Tile) error {
	t, err := g.At(x, y)
	if err != nil {
		return err
	}
	*t = tile
	return nil
}

func (g *Grid) MarkExplored(x, y int) {
	if g.InBounds(x, y) {
		g.Tiles[g.Index(x, y)].Explored = true
	}
}

func (g *Grid) IsExplored(x, y int) bool {
	return g.InBounds(x, y) && g.Tiles[g.Index(x, y)].Explored
}
