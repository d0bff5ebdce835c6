package listenable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSame(t *testing.T) {
	t.Parallel()

	m := map[string]int{"a": 1}
	s := []int{1, 2, 3}
	p := &struct{ N int }{1}
	ch := make(chan int)
	fn := func() {}

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"nil and nil", nil, nil, true},
		{"nil and value", nil, 0, false},
		{"equal strings", "x", "x", true},
		{"different types", 1, int64(1), false},
		{"same map", m, m, true},
		{"equal maps", m, map[string]int{"a": 1}, false},
		{"same slice", s, s, true},
		{"shorter view of a slice", s, s[:2], false},
		{"equal slices", s, []int{1, 2, 3}, false},
		{"distinct empty slices", make([]string, 0), []string{}, false},
		{"nil slices", []int(nil), []int(nil), true},
		{"nil and empty slice", []int(nil), []int{}, false},
		{"slices of zero-size elements", []struct{}{{}}, []struct{}{{}}, false},
		{"pointers to zero-size values", &struct{}{}, &struct{}{}, false},
		{"nil pointers", (*int)(nil), (*int)(nil), true},
		{"same pointer", p, p, true},
		{"equal pointees", p, &struct{ N int }{1}, false},
		{"same chan", ch, ch, true},
		{"func", fn, fn, false},
		{"equal structs", struct{ N int }{1}, struct{ N int }{1}, true},
		{"structs with slices", struct{ S []int }{[]int{1}}, struct{ S []int }{[]int{1}}, true},
		{"struct holding func in interface", struct{ V any }{fn}, struct{ V any }{fn}, false},
		{"arrays", [2]int{1, 2}, [2]int{1, 2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, same(tt.a, tt.b))
		})
	}
}

func TestComposite(t *testing.T) {
	t.Parallel()

	var nilMap map[string]int
	assert.False(t, composite(nil))
	assert.False(t, composite("x"))
	assert.False(t, composite(1.5))
	assert.False(t, composite(nilMap))
	assert.False(t, composite(func() {}))
	assert.True(t, composite(map[string]int{}))
	assert.True(t, composite([]int{}))
	assert.True(t, composite(&struct{}{}))
	assert.True(t, composite(struct{}{}))
	assert.True(t, composite([1]int{}))
}
