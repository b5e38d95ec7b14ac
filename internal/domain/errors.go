package domain

import "errors"

var (
	// ErrOutOfBounds - запрос за пределами сетки. Корректные вызывающие сюда не попадают.
	ErrOutOfBounds = errors.New("coordinates out of bounds")
	// ErrUnknownEntity - идентификатор устарел или никогда не выдавался.
	ErrUnknownEntity = errors.New("unknown entity")
	ErrInventoryFull = errors.New("inventory is full")
	ErrNotAnItem     = errors.New("entity is not an item")
)
