package systems

import "crawler-server/internal/domain"

// HasLineOfSight проверяет прямую видимость между двумя точками.
// Алгоритм Брезенхэма; начальная и конечная клетки не проверяются.
func HasLineOfSight(grid *domain.Grid, p1, p2 domain.Position) bool {
	if p1 == p2 {
		return true
	}

	x0, y0 := p1.X, p1.Y
	x1, y1 := p2.X, p2.Y

	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	err := dx - dy

	for {
		if (x0 != p1.X || y0 != p1.Y) && (x0 != x1 || y0 != y1) {
			if grid.BlocksSight(x0, y0) {
				return false
			}
		}

		if x0 == x1 && y0 == y1 {
			return true
		}

		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
