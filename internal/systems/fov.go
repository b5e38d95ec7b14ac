package systems

import (
	"crawler-server/internal/domain"
	"crawler-server/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// Мультипликаторы для трансформации координат в 8 октантов
var multipliers = [4][8]int{
	{1, 0, 0, -1, -1, 0, 0, 1},
	{0, 1, -1, 0, 0, -1, 1, 0},
	{0, 1, 1, 0, 0, -1, -1, 0},
	{1, 0, 0, 1, -1, 0, 0, -1},
}

// ComputeFOV возвращает множество индексов клеток (grid.Index), видимых из pos.
// Стены, ограничивающие обзор, тоже попадают в множество.
func ComputeFOV(grid *domain.Grid, pos domain.Position, radius int) mapset.Set[int] {
	visible := mapset.New[int]()
	if radius <= 0 || !grid.InBounds(pos.X, pos.Y) {
		logger.Log.WithFields(logrus.Fields{
			"component": "fov_system",
			"radius":    radius,
			"pos":       pos,
		}).Debug("FOV skipped: blind observer or position outside the grid.")
		return visible
	}

	// Центр всегда виден
	visible.Put(grid.Index(pos.X, pos.Y))

	// Рекурсивный Shadowcasting для 8 октантов
	for i := 0; i < 8; i++ {
		castLight(grid, pos.X, pos.Y, 1, 1.0, 0.0, radius,
			multipliers[0][i], multipliers[1][i],
			multipliers[2][i], multipliers[3][i], visible)
	}

	return visible
}

func castLight(grid *domain.Grid, cx, cy, row int, start, end float64, radius, xx, xy, yx, yy int, visible mapset.Set[int]) {
	if start < end {
		return
	}

	radiusSq := radius * radius

	for j := row; j <= radius; j++ {
		dx, dy := -j-1, -j
		blocked := false
		newStart := start

		for {
			dx++
			if dx > 0 {
				break
			}

			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			X := cx + dx*xx + dy*xy
			Y := cy + dx*yx + dy*yy

			if grid.InBounds(X, Y) && dx*dx+dy*dy <= radiusSq {
				visible.Put(grid.Index(X, Y))
			}

			if blocked {
				if grid.BlocksSight(X, Y) {
					newStart = rSlope
					continue
				}
				blocked = false
				start = newStart
			} else if grid.BlocksSight(X, Y) && j < radius {
				blocked = true
				castLight(grid, cx, cy, j+1, start, lSlope, radius, xx, xy, yx, yy, visible)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}

// InFOV - удобная проверка позиции по множеству видимых клеток.
func InFOV(grid *domain.Grid, visible mapset.Set[int], pos domain.Position) bool {
	return grid.InBounds(pos.X, pos.Y) && visible.Has(grid.Index(pos.X, pos.Y))
}
