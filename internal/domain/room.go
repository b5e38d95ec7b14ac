package domain

import "math/rand"

// Room - прямоугольная комната. Внутренность (без стен) лежит строго между X1..X2 и Y1..Y2.
type Room struct {
	X1, Y1, X2, Y2 int
	// MonsterBudget - сколько "веса присутствия" монстров комната может вместить.
	MonsterBudget int
}

func NewRoom(x, y, w, h int) Room {
	return Room{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

func (r Room) Center() Position {
	return Position{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// Intersects - проверка пересечения с включёнными границами:
// комнаты, касающиеся стенами, тоже пересекаются.
func (r Room) Intersects(other Room) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}

// ContainsInterior проверяет, что точка внутри комнаты, а не на её стене.
func (r Room) ContainsInterior(p Position) bool {
	return r.X1 < p.X && p.X < r.X2 && r.Y1 < p.Y && p.Y < r.Y2
}

// RandomPoint возвращает случайную клетку внутренности комнаты.
func (r Room) RandomPoint(rng *rand.Rand) Position {
	return Position{
		X: randInterior(rng, r.X1, r.X2),
		Y: randInterior(rng, r.Y1, r.Y2),
	}
}

func randInterior(rng *rand.Rand, lo, hi int) int {
	if hi-lo < 2 {
		return (lo + hi) / 2
	}
	return lo + 1 + rng.Intn(hi-lo-1)
}
