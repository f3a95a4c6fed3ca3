package server

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestPingHealthChecker(t *testing.T) {
	ok := NewPingHealthChecker("store", pingFunc(func(context.Context) error { return nil }))
	assert.True(t, ok.Healthy(context.Background()))

	down := NewPingHealthChecker("store", pingFunc(func(context.Context) error { return errors.New("refused") }))
	assert.False(t, down.Healthy(context.Background()))

	assert.True(t, NewOkHealthChecker().Healthy(context.Background()))
}
