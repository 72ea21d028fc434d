package watch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenSort(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "already sorted", in: "acme tools", want: "acme tools"},
		{name: "reordered tokens", in: "tools acme", want: "acme tools"},
		{name: "single token", in: "acme", want: "acme"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenSort(tt.in))
		})
	}
}

func TestEditSimilaritySymmetry(t *testing.T) {
	pairs := [][2]string{
		{"acme tools", "acmetoolsinc"},
		{"cafebrand", "cafe brand"},
		{"zenith optics", "acme tools"},
		{"northstar", "nort hstar"},
	}

	for _, p := range pairs {
		assert.Equal(t, editSimilarity(p[0], p[1]), editSimilarity(p[1], p[0]),
			"editSimilarity(%q,%q) must equal its mirror", p[0], p[1])
	}
}

func TestEditSimilarity(t *testing.T) {
	t.Run("identical inputs score exactly 1.0", func(t *testing.T) {
		assert.Equal(t, 1.0, editSimilarity("acme tools", "acme tools"))
	})

	t.Run("token order is ignored", func(t *testing.T) {
		assert.Equal(t, 1.0, editSimilarity("tools acme", "acme tools"))
	})

	t.Run("empty input scores zero", func(t *testing.T) {
		assert.Zero(t, editSimilarity("", "acme tools"))
		assert.Zero(t, editSimilarity("acme tools", ""))
		assert.Zero(t, editSimilarity("", ""))
	})

	t.Run("near-identical marks score high", func(t *testing.T) {
		got := editSimilarity("acme tools", "acmetoolsinc")
		assert.InDelta(t, 0.8182, got, 0.001)
	})
}

func TestContainment(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "contained after space stripping", a: "acme tools", b: "acmetoolsinc", want: 1.0},
		{name: "reverse direction", a: "acmetoolsinc", b: "acme tools", want: 1.0},
		{name: "unrelated", a: "zenith optics", b: "acme tools", want: 0},
		{name: "empty side", a: "", b: "acme", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, containment(tt.a, tt.b))
		})
	}
}

func TestCompositeScore(t *testing.T) {
	o := DefaultOptions()

	t.Run("blends edit similarity and containment", func(t *testing.T) {
		// 0.8*~0.8182 + 0.2*1.0
		got := compositeScore("acme tools", "acmetoolsinc", o)
		assert.InDelta(t, 0.8545, got, 0.001)
	})

	t.Run("identical texts score exactly 1.0", func(t *testing.T) {
		assert.Equal(t, 1.0, compositeScore("acme tools", "acme tools", o))
	})

	t.Run("empty text scores zero", func(t *testing.T) {
		assert.Zero(t, compositeScore("", "acme tools", o))
	})

	t.Run("result is clamped to 1", func(t *testing.T) {
		heavy := o
		heavy.EditWeight = 2.0
		assert.LessOrEqual(t, compositeScore("acme tools", "acmetoolsinc", heavy), 1.0)
	})

	t.Run("idempotent across calls", func(t *testing.T) {
		first := compositeScore("acme tools", "acmetoolsinc", o)
		for i := 0; i < 100; i++ {
			assert.Equal(t, first, compositeScore("acme tools", "acmetoolsinc", o))
		}
	})
}
