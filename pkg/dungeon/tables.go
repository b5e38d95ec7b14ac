package dungeon

import (
	"errors"
	"math/rand"
	"sort"
)

// ErrEmptySpawnTable - на этой глубине у всех записей нулевой вес.
var ErrEmptySpawnTable = errors.New("spawn table has no positive weights at this depth")

// WeightStep - порог глубины и вес, действующий начиная с него.
type WeightStep struct {
	Depth  int `yaml:"depth" json:"depth"`
	Weight int `yaml:"weight" json:"weight"`
}

// WeightCurve - ступенчатая функция веса от глубины.
type WeightCurve []WeightStep

// Flat - вес, не зависящий от глубины (с первого уровня).
func Flat(weight int) WeightCurve {
	return WeightCurve{{Depth: 1, Weight: weight}}
}

// At возвращает вес ступени с наибольшим порогом <= depth; ниже первого порога - 0.
func (c WeightCurve) At(depth int) int {
	best, weight := -1, 0
	for _, s := range c {
		if s.Depth <= depth && s.Depth > best {
			best, weight = s.Depth, s.Weight
		}
	}
	return weight
}

// SpawnTable: ключ шаблона -> кривая веса.
type SpawnTable map[string]WeightCurve

// Pick выбирает ключ с вероятностью, пропорциональной эффективному весу.
// Ключи перебираются в отсортированном порядке, чтобы выбор зависел только от rng.
func (t SpawnTable) Pick(rng *rand.Rand, depth int) (string, error) {
	keys := make([]string, 0, len(t))
	total := 0
	for k, curve := range t {
		if w := curve.At(depth); w > 0 {
			keys = append(keys, k)
			total += w
		}
	}
	if total == 0 {
		return "", ErrEmptySpawnTable
	}
	sort.Strings(keys)

	roll := rng.Intn(total)
	for _, k := range keys {
		roll -= t[k].At(depth)
		if roll < 0 {
			return k, nil
		}
	}
	return keys[len(keys)-1], nil
}
