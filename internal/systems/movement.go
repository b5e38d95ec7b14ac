package systems

import "crawler-server/internal/domain"

// MovementResult - результат вычисления движения
type MovementResult struct {
	NewX, NewY int
	HasMoved   bool
	BlockedBy  *domain.Entity // Если врезались в кого-то (для атаки)
	IsWall     bool           // Если врезались в стену или край карты
}

// CalculateMove вычисляет новую позицию. Не меняет состояние мира!
func CalculateMove(e *domain.Entity, dx, dy int, grid *domain.Grid, reg *domain.Registry) MovementResult {
	target := e.Pos.Shift(dx, dy)
	res := MovementResult{NewX: target.X, NewY: target.Y}

	if grid.IsBlocked(target.X, target.Y) {
		res.IsWall = true
		return res
	}

	if other, ok := reg.BlockingAt(target.X, target.Y); ok && other.ID != e.ID {
		res.BlockedBy = other
		return res
	}

	res.HasMoved = true
	return res
}

// TryMove двигает сущность, если клетка свободна. Возвращает true при успехе.
func TryMove(e *domain.Entity, dx, dy int, grid *domain.Grid, reg *domain.Registry) bool {
	res := CalculateMove(e, dx, dy, grid, reg)
	if !res.HasMoved {
		return false
	}
	return reg.Move(e.ID, res.NewX, res.NewY) == nil
}
