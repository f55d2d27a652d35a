package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/jlbind/ir"
)

func TestParseInline(t *testing.T) {
	p, err := ParseInline("name=input_model&model=LinearRegression<>&required=true&julia=LinearRegression")
	require.NoError(t, err)
	assert.Equal(t, InlineParam{
		Name:     "input_model",
		Model:    "LinearRegression<>",
		Required: true,
		Julia:    "LinearRegression",
	}, p)
}

func TestParseInline_Errors(t *testing.T) {
	tests := []struct {
		name string
		spec string
	}{
		{"missing name", "type=int"},
		{"unknown key", "name=a&type=int&colour=blue"},
		{"bad bool", "name=a&type=int&required=maybe"},
		{"bad escape", "name=%zz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInline(tt.spec)
			require.Error(t, err)
			assert.Equal(t, ir.CodeInvalidManifest, ir.CodeOf(err))
		})
	}
}

func TestDecodeInline(t *testing.T) {
	tool, err := DecodeInline("knn", []string{
		"name=reference&type=mat&required=true",
		"name=k&type=int",
		"name=labels&type=urow",
	})
	require.NoError(t, err)
	assert.Equal(t, "knn", tool.Program)
	assert.Equal(t, "inline", tool.Source)
	require.Len(t, tool.Parameters, 3)
	assert.Equal(t, []string{"reference", "k", "labels"}, []string{
		tool.Parameters[0].Name, tool.Parameters[1].Name, tool.Parameters[2].Name,
	})
	assert.Equal(t, ir.URow(), tool.Parameters[2].Type)
}

func TestDecodeInline_Errors(t *testing.T) {
	_, err := DecodeInline("", []string{"name=k&type=int"})
	assert.Equal(t, ir.CodeInvalidManifest, ir.CodeOf(err))

	_, err = DecodeInline("knn", []string{"name=k&type=tensor"})
	assert.Equal(t, ir.CodeInvalidManifest, ir.CodeOf(err))

	_, err = DecodeInline("knn", []string{"name=k"})
	assert.Error(t, err)
}
