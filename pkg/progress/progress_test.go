package progress

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCount(t *testing.T) {
	t.Run("silent without a display", func(t *testing.T) {
		p := Count(context.Background(), 3, "work")

		p.Tick()
		p.On("step")
		p.Close()
	})

	t.Run("draws to the attached writer", func(t *testing.T) {
		var buf bytes.Buffer

		ctx := Open(context.Background(), &buf)

		p := Count(ctx, 2, "work")
		p.Tick()
		p.Tick()
		p.Close()

		assert.Contains(t, buf.String(), "work")
	})
}
