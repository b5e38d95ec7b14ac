package domain

import (
	"fmt"

	"crawler-server/internal/core/types"
)

type slot struct {
	entity *Entity
	gen    uint16
}

// Registry - арена сущностей одного уровня.
//
// Идентификаторы поколенческие: после Remove старый ID перестаёт находиться,
// даже если слот уже занят новой сущностью. Порядок обхода Entities()
// совпадает с порядком вставки.
type Registry struct {
	depth  uint8
	width  int
	height int

	slots []slot
	free  []uint32
	order []types.EntityID

	// SpatialHash: индекс клетки (y*width + x) -> сущности в ней
	spatial map[int][]types.EntityID
}

func NewRegistry(depth, width, height int) *Registry {
	return &Registry{
		depth:   uint8(depth),
		width:   width,
		height:  height,
		spatial: make(map[int][]types.EntityID),
	}
}

func (r *Registry) inBounds(x, y int) bool {
	return x >= 0 && x < r.width && y >= 0 && y < r.height
}

func (r *Registry) cell(x, y int) int {
	return y*r.width + x
}

// Insert регистрирует сущность в её текущей позиции и выдаёт ей новый ID.
func (r *Registry) Insert(e *Entity) (types.EntityID, error) {
	if !r.inBounds(e.Pos.X, e.Pos.Y) {
		return types.NilEntityID, fmt.Errorf("insert %q at (%d,%d): %w", e.Name, e.Pos.X, e.Pos.Y, ErrOutOfBounds)
	}

	var index uint32
	if n := len(r.free); n > 0 {
		index = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		index = uint32(len(r.slots))
		r.slots = append(r.slots, slot{})
	}

	s := &r.slots[index]
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	s.entity = e

	id := types.PackEntityID(r.depth, uint8(e.Type), s.gen, index)
	e.Normalize().BindOwner(id)

	r.order = append(r.order, id)
	c := r.cell(e.Pos.X, e.Pos.Y)
	r.spatial[c] = append(r.spatial[c], id)
	return id, nil
}

// Get возвращает живую сущность по ID. Устаревшие ID не находятся.
func (r *Registry) Get(id types.EntityID) (*Entity, bool) {
	index := id.Index()
	if id.IsNil() || int(index) >= len(r.slots) {
		return nil, false
	}
	s := r.slots[index]
	if s.entity == nil || s.gen != id.Generation() || s.entity.ID != id {
		return nil, false
	}
	return s.entity, true
}

// Remove убирает сущность из уровня (подобрана, израсходована).
func (r *Registry) Remove(id types.EntityID) (*Entity, bool) {
	e, ok := r.Get(id)
	if !ok {
		return nil, false
	}

	r.unindex(id, e.Pos)
	for i, other := range r.order {
		if other == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	index := id.Index()
	r.slots[index].entity = nil
	r.free = append(r.free, index)
	return e, true
}

func (r *Registry) unindex(id types.EntityID, pos Position) {
	c := r.cell(pos.X, pos.Y)
	ids := r.spatial[c]
	for i, other := range ids {
		if other == id {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(r.spatial, c)
		return
	}
	r.spatial[c] = ids
}

// Move перемещает сущность и обновляет пространственный индекс.
func (r *Registry) Move(id types.EntityID, x, y int) error {
	e, ok := r.Get(id)
	if !ok {
		return fmt.Errorf("move %v: %w", id, ErrUnknownEntity)
	}
	if !r.inBounds(x, y) {
		return fmt.Errorf("move %v to (%d,%d): %w", id, x, y, ErrOutOfBounds)
	}

	r.unindex(id, e.Pos)
	e.Pos = Position{X: x, Y: y}
	c := r.cell(x, y)
	r.spatial[c] = append(r.spatial[c], id)
	return nil
}

// At возвращает все сущности в клетке.
func (r *Registry) At(x, y int) []*Entity {
	if !r.inBounds(x, y) {
		return nil
	}
	ids := r.spatial[r.cell(x, y)]
	out := make([]*Entity, 0, len(ids))
	for _, id := range ids {
		if e, ok := r.Get(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// BlockingAt - есть ли в клетке сущность, блокирующая движение.
func (r *Registry) BlockingAt(x, y int) (*Entity, bool) {
	if !r.inBounds(x, y) {
		return nil, false
	}
	for _, id := range r.spatial[r.cell(x, y)] {
		if e, ok := r.Get(id); ok && e.Blocks {
			return e, true
		}
	}
	return nil, false
}

// Entities возвращает снимок всех сущностей в порядке вставки.
// Изменения реестра во время обхода снимка на него не влияют.
func (r *Registry) Entities() []*Entity {
	out := make([]*Entity, 0, len(r.order))
	for _, id := range r.order {
		if e, ok := r.Get(id); ok {
			out = append(out, e)
		}
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.order)
}

func (r *Registry) Depth() int {
	return int(r.depth)
}
