package jsonx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ideaforge/pkg/errors"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want any
	}{
		{"bare object", `{"a": 1}`, map[string]any{"a": float64(1)}},
		{"bare array", `[1, 2]`, []any{float64(1), float64(2)}},
		{"json fence", "Here you go:\n```json\n{\"pros\": []}\n```\nThanks", map[string]any{"pros": []any{}}},
		{"plain fence", "```\n[\"x\"]\n```", []any{"x"}},
		{"prose around object", `Sure! The data is {"k": "v"} as requested.`, map[string]any{"k": "v"}},
		{"array before object", `Result: [{"q": 1}] done`, []any{map[string]any{"q": float64(1)}}},
		{"trailing bracket in prose", `{"k": 1} (see [note])`, map[string]any{"k": float64(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_NoJSON(t *testing.T) {
	for _, text := range []string{
		"",
		"   ",
		"The company reported strong growth but no figures were disclosed.",
		"{ broken",
	} {
		_, err := Extract(text)
		require.Error(t, err, text)
		assert.ErrorIs(t, err, errors.ErrNoJSON)
	}
}

func TestDecode(t *testing.T) {
	type prosCons struct {
		Pros []string `json:"pros"`
		Cons []string `json:"cons"`
	}
	def := prosCons{Pros: []string{}, Cons: []string{}}

	t.Run("success", func(t *testing.T) {
		out := Decode("```json\n{\"pros\":[\"fast\"],\"cons\":[]}\n```", def)
		assert.True(t, out.OK())
		assert.Equal(t, []string{"fast"}, out.Value.Pros)
		assert.NoError(t, out.Err)
	})

	t.Run("prose falls back to default", func(t *testing.T) {
		out := Decode("I could not find anything.", def)
		assert.False(t, out.OK())
		assert.Equal(t, PartialDefault, out.Status)
		assert.Equal(t, def, out.Value)
		assert.Error(t, out.Err)
	})

	t.Run("wrong shape falls back to default", func(t *testing.T) {
		out := Decode(`["a", "b"]`, def)
		assert.Equal(t, PartialDefault, out.Status)
		assert.Equal(t, def, out.Value)
	})
}
