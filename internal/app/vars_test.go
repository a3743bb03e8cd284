package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/yamldoc/internal/app"
	"go.trai.ch/yamldoc/internal/core/domain"
)

func TestParseVars(t *testing.T) {
	tests := []struct {
		name string
		vars []string
		want map[string]any
	}{
		{
			name: "none",
			vars: nil,
			want: nil,
		},
		{
			name: "scalars keep their YAML type",
			vars: []string{"s=text", "i=3", "f=1.5", "b=false", "n=null", "e="},
			want: map[string]any{"s": "text", "i": int64(3), "f": 1.5, "b": false, "n": nil, "e": ""},
		},
		{
			name: "dotted keys nest",
			vars: []string{"a.b.c=1", "a.d=x"},
			want: map[string]any{"a": map[string]any{"b": map[string]any{"c": int64(1)}, "d": "x"}},
		},
		{
			name: "later values win",
			vars: []string{"a=1", "a=2"},
			want: map[string]any{"a": int64(2)},
		},
		{
			name: "scalar replaced by nested key",
			vars: []string{"a=1", "a.b=2"},
			want: map[string]any{"a": map[string]any{"b": int64(2)}},
		},
		{
			name: "value may contain equals sign",
			vars: []string{"q=a=b"},
			want: map[string]any{"q": "a=b"},
		},
		{
			name: "collections stay strings",
			vars: []string{"list=[1, 2]", "map={a: 1}"},
			want: map[string]any{"list": "[1, 2]", "map": "{a: 1}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := app.ParseVars(tt.vars)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.want, got.Interface())
		})
	}
}

func TestParseVars_Invalid(t *testing.T) {
	for _, v := range []string{"novalue", "=1", "a..b=1", "a.=1"} {
		t.Run(v, func(t *testing.T) {
			_, err := app.ParseVars([]string{v})
			require.ErrorIs(t, err, domain.ErrInvalidVariable)
			assert.Contains(t, err.Error(), "invalid variable, expected KEY=VALUE")
		})
	}
}
