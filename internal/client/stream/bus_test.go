package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_DeliversOnlyFutureValues(t *testing.T) {
	b := NewBus[string]()
	b.Emit("lost")

	var got []string
	dispose := b.Subscribe(func(v string) { got = append(got, v) })
	b.Emit("a")
	b.Emit("b")
	dispose()
	b.Emit("c")

	assert.Equal(t, []string{"a", "b"}, got)
}

func TestBus_Close(t *testing.T) {
	b := NewBus[int]()

	var got []int
	b.Subscribe(func(v int) { got = append(got, v) })
	b.Close()
	b.Emit(1)

	dispose := b.Subscribe(func(v int) { got = append(got, v) })
	dispose()
	b.Emit(2)

	assert.Empty(t, got)
}
