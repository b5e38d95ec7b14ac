package systems

import (
	"container/heap"
	"math"

	"crawler-server/internal/domain"

	"github.com/zyedidia/generic/mapset"
)

// Стоимость шагов A* (диагональ ≈ 1.4 × ортогональ)
const (
	CostOrthogonal = 10
	CostDiagonal   = 14
)

// MaxPathLength - пути длиной от этого числа шагов отбрасываются:
// монстр не идёт в обход через полкарты, а пытается шагнуть напрямую.
const MaxPathLength = 25

// Порядок соседей фиксирован: от него зависит выбор среди равных путей.
var directions8 = [8][2]int{
	{0, -1}, {1, 0}, {0, 1}, {-1, 0},
	{1, -1}, {1, 1}, {-1, 1}, {-1, -1},
}

// FindStep возвращает первый шаг от mover к target.
//
// Карта проходимости строится заново на каждый вызов: клетка проходима, если
// тайл свободен и в ней нет блокирующей сущности, кроме mover и target.
// Если A* не нашёл путь короче MaxPathLength, делается попытка шагнуть по
// округлённому единичному вектору к цели; занятая клетка означает "стоять".
func FindStep(mover, target *domain.Entity, grid *domain.Grid, others []*domain.Entity) (dx, dy int, ok bool) {
	blocked := mapset.New[int]()
	for _, e := range others {
		if e == nil || !e.Blocks || e == mover || e == target || e.ID == mover.ID || e.ID == target.ID {
			continue
		}
		if grid.InBounds(e.Pos.X, e.Pos.Y) {
			blocked.Put(grid.Index(e.Pos.X, e.Pos.Y))
		}
	}

	path := findPath(grid, blocked, mover.Pos, target.Pos)
	if len(path) > 0 && len(path) < MaxPathLength {
		step := path[0]
		return step.X - mover.Pos.X, step.Y - mover.Pos.Y, true
	}

	return stepTowards(mover, target, grid, others)
}

// stepTowards - шаг по округлённому направлению на цель.
func stepTowards(mover, target *domain.Entity, grid *domain.Grid, others []*domain.Entity) (int, int, bool) {
	vx := float64(target.Pos.X - mover.Pos.X)
	vy := float64(target.Pos.Y - mover.Pos.Y)
	dist := math.Hypot(vx, vy)
	if dist == 0 {
		return 0, 0, false
	}

	dx := int(math.Round(vx / dist))
	dy := int(math.Round(vy / dist))
	if dx == 0 && dy == 0 {
		return 0, 0, false
	}

	dest := mover.Pos.Shift(dx, dy)
	if grid.IsBlocked(dest.X, dest.Y) {
		return 0, 0, false
	}
	for _, e := range others {
		if e != nil && e.Blocks && e.ID != mover.ID && e.Pos == dest {
			return 0, 0, false
		}
	}
	return dx, dy, true
}

// octile - допустимая эвристика для 8-связной сетки.
func octile(a, b domain.Position) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	return CostOrthogonal*(dx+dy) + (CostDiagonal-2*CostOrthogonal)*min(dx, dy)
}

// findPath - A* от start до goal. Возвращает шаги без стартовой клетки.
func findPath(grid *domain.Grid, blocked mapset.Set[int], start, goal domain.Position) []domain.Position {
	if !grid.InBounds(start.X, start.Y) || !grid.InBounds(goal.X, goal.Y) || start == goal {
		return nil
	}

	startIdx := grid.Index(start.X, start.Y)
	goalIdx := grid.Index(goal.X, goal.Y)

	openSet := make(priorityQueue, 0)
	heap.Init(&openSet)

	cameFrom := make(map[int]int)
	gScore := map[int]int{startIdx: 0}
	closed := mapset.New[int]()
	seq := 0

	heap.Push(&openSet, &pathNode{index: startIdx, f: octile(start, goal), h: octile(start, goal), seq: seq})

	for openSet.Len() > 0 {
		current := heap.Pop(&openSet).(*pathNode)
		if closed.Has(current.index) {
			continue
		}
		if current.index == goalIdx {
			return reconstructPath(grid, cameFrom, current.index, startIdx)
		}
		closed.Put(current.index)

		cx, cy := grid.Coords(current.index)
		for i, d := range directions8 {
			nx, ny := cx+d[0], cy+d[1]
			if !grid.InBounds(nx, ny) {
				continue
			}
			nIdx := grid.Index(nx, ny)
			if closed.Has(nIdx) {
				continue
			}
			if nIdx != goalIdx && (grid.IsBlocked(nx, ny) || blocked.Has(nIdx)) {
				continue
			}

			cost := CostOrthogonal
			if i >= 4 {
				cost = CostDiagonal
			}
			tentative := gScore[current.index] + cost
			if old, seen := gScore[nIdx]; seen && tentative >= old {
				continue
			}

			cameFrom[nIdx] = current.index
			gScore[nIdx] = tentative
			h := octile(domain.Position{X: nx, Y: ny}, goal)
			seq++
			heap.Push(&openSet, &pathNode{index: nIdx, f: tentative + h, h: h, seq: seq})
		}
	}

	return nil
}

func reconstructPath(grid *domain.Grid, cameFrom map[int]int, current, start int) []domain.Position {
	var reversed []domain.Position
	for current != start {
		x, y := grid.Coords(current)
		reversed = append(reversed, domain.Position{X: x, Y: y})
		current = cameFrom[current]
	}

	path := make([]domain.Position, len(reversed))
	for i, p := range reversed {
		path[len(reversed)-1-i] = p
	}
	return path
}

// --- Очередь с приоритетом для A* ---

type pathNode struct {
	index int
	f     int
	h     int
	seq   int
	pos   int // индекс в куче
}

type priorityQueue []*pathNode

func (pq priorityQueue) Len() int { return len(pq) }

// Less: меньший f, затем меньший h, затем раньше добавленный узел.
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	if pq[i].h != pq[j].h {
		return pq[i].h < pq[j].h
	}
	return pq[i].seq < pq[j].seq
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].pos = i
	pq[j].pos = j
}

func (pq *priorityQueue) Push(x any) {
	node := x.(*pathNode)
	node.pos = len(*pq)
	*pq = append(*pq, node)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return node
}
