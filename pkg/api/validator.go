package api

import (
	"errors"
	"fmt"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

// Характеристики, доступные при повышении уровня
const (
	StatHP      = "hp"
	StatPower   = "str"
	StatDefense = "def"
)

func (p DirectionPayload) Validate() error {
	if p.Dx == 0 && p.Dy == 0 {
		return errors.New("movement vector cannot be zero")
	}
	if p.Dx < -1 || p.Dx > 1 || p.Dy < -1 || p.Dy > 1 {
		return errors.New("movement step too large")
	}
	return nil
}

func (p IndexPayload) Validate() error {
	if p.Index < 0 {
		return errors.New("index cannot be negative")
	}
	return nil
}

func (p TargetPayload) Validate() error {
	hasPos := p.X != nil && p.Y != nil
	if (p.X == nil) != (p.Y == nil) {
		return errors.New("both x and y are required")
	}
	if !hasPos && p.TargetID.IsNil() {
		return errors.New("either x/y or targetId is required")
	}
	return nil
}

func (p StatPayload) Validate() error {
	switch p.Stat {
	case StatHP, StatPower, StatDefense:
		return nil
	}
	return fmt.Errorf("unknown stat %q", p.Stat)
}
