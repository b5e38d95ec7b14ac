package types

import (
	"fmt"
	"strconv"
)

// EntityID - 64-битный идентификатор сущности уровня.
//
// Формат битов (от старших к младшим):
//
//	[ Depth (8) | Type (8) | Generation (16) | Index (32) ]
//
// Где:
//   - Depth - глубина подземелья, на которой выдан идентификатор
//   - Type - тип сущности (Player, Monster, Item и т.д.)
//   - Generation - версия слота в реестре (защита от устаревших ссылок)
//   - Index - индекс слота в реестре уровня
//
// Компоненты хранят EntityID владельца вместо указателя на него,
// поэтому удаление сущности из реестра сразу делает все старые ссылки невалидными:
// у слота меняется поколение, и Registry.Get вернёт false.
type EntityID uint64

// NilEntityID - нулевой идентификатор (сущность отсутствует или ещё не зарегистрирована).
const NilEntityID EntityID = 0

const (
	bitsIndex = 32
	bitsGen   = 16
	bitsType  = 8
	bitsDepth = 8

	shiftGen   = bitsIndex
	shiftType  = bitsIndex + bitsGen
	shiftDepth = bitsIndex + bitsGen + bitsType

	maskIndex = (1 << bitsIndex) - 1
	maskGen   = (1 << bitsGen) - 1
	maskType  = (1 << bitsType) - 1
	maskDepth = (1 << bitsDepth) - 1
)

// MaxDepth - самая глубокая глубина, которую вмещают биты идентификатора.
// Глубже уровни не строятся, иначе ID предметов разных уровней совпадут.
const MaxDepth = maskDepth

// PackEntityID собирает EntityID из составных частей.
func PackEntityID(depth uint8, typeID uint8, gen uint16, index uint32) EntityID {
	return EntityID(
		(uint64(depth) << shiftDepth) |
			(uint64(typeID) << shiftType) |
			(uint64(gen) << shiftGen) |
			uint64(index),
	)
}

// Index возвращает индекс слота в реестре.
func (id EntityID) Index() uint32 {
	return uint32(id & maskIndex)
}

// Generation возвращает поколение слота.
func (id EntityID) Generation() uint16 {
	return uint16((id >> shiftGen) & maskGen)
}

// Type возвращает тип сущности.
func (id EntityID) Type() uint8 {
	return uint8((id >> shiftType) & maskType)
}

// Depth возвращает глубину, на которой был выдан идентификатор.
func (id EntityID) Depth() uint8 {
	return uint8((id >> shiftDepth) & maskDepth)
}

// IsNil проверяет, является ли идентификатор нулевым.
func (id EntityID) IsNil() bool {
	return id == NilEntityID
}

// String для логов: [depth=1 type=2 gen=1 idx=5]
func (id EntityID) String() string {
	if id.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf(
		"[depth=%d type=%d gen=%d idx=%d]",
		id.Depth(),
		id.Type(),
		id.Generation(),
		id.Index(),
	)
}

// MarshalJSON сериализует EntityID строкой: JS теряет точность на uint64.
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// UnmarshalJSON принимает как строковое, так и числовое представление.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	s := string(data)

	if len(s) > 1 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}

	if s == "" || s == "null" {
		*id = NilEntityID
		return nil
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}

	*id = EntityID(v)
	return nil
}
