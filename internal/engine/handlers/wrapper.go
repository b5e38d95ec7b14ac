package handlers

import (
	"encoding/json"
	"fmt"

	"crawler-server/pkg/api"
)

// TypedHandlerFunc - хендлер над уже разобранной и проверенной командой.
type TypedHandlerFunc[T any] func(ctx Context, payload T) (Result, error)

// EmptyHandlerFunc - хендлер команды без данных.
type EmptyHandlerFunc func(ctx Context) (Result, error)

// WithPayload разбирает JSON в T и зовёт Validate, если T его реализует.
// Любая ошибка разбора заворачивается в ErrInvalidPayload, ход не тратится.
func WithPayload[T any](handler TypedHandlerFunc[T]) HandlerFunc {
	return func(ctx Context, raw json.RawMessage) (Result, error) {
		payload, err := decode[T](raw)
		if err != nil {
			return Result{}, err
		}
		return handler(ctx, payload)
	}
}

// WithEmptyPayload игнорирует присланные данные.
func WithEmptyPayload(handler EmptyHandlerFunc) HandlerFunc {
	return func(ctx Context, _ json.RawMessage) (Result, error) {
		return handler(ctx)
	}
}

func decode[T any](raw json.RawMessage) (T, error) {
	var payload T
	if len(raw) == 0 {
		return payload, fmt.Errorf("%w: payload is required", ErrInvalidPayload)
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	if v, ok := any(payload).(api.Validator); ok {
		if err := v.Validate(); err != nil {
			return payload, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
		}
	}
	return payload, nil
}
