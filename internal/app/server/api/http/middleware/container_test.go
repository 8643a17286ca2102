package middleware

import (
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
)

func TestContainer_GetAllAndClear(t *testing.T) {
	noop := func(ctx huma.Context, next func(huma.Context)) { next(ctx) }

	c := NewContainer()
	c.Add(noop)
	c.Add(noop)

	first := c.GetAllAndClear()
	assert.Len(t, first, 2)

	c.Add(noop)
	second := c.GetAllAndClear()
	assert.Len(t, second, 1)
	assert.Len(t, first, 2, "previous group must not be affected")
	assert.Empty(t, c.GetAllAndClear())
}
