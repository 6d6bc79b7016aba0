package inicodec_test

import (
	"testing"

	"github.com/devantler-tech/settings/pkg/settings/codec/inicodec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ini", inicodec.NewCodec().Name())
}

func TestValidShape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tree map[string]any
		want bool
	}{
		{
			name: "sections with scalar settings",
			tree: map[string]any{
				"general": map[string]any{"theme": "dark"},
				"window":  map[string]any{"width": 800},
			},
			want: true,
		},
		{
			name: "string-valued section mapping",
			tree: map[string]any{
				"general": map[string]string{"theme": "dark"},
			},
			want: true,
		},
		{
			name: "empty tree",
			tree: map[string]any{},
			want: true,
		},
		{
			name: "scalar at top level",
			tree: map[string]any{"theme": "dark"},
			want: false,
		},
		{
			name: "list at top level",
			tree: map[string]any{"recent": []any{"a.txt"}},
			want: false,
		},
		{
			name: "one good section and one scalar",
			tree: map[string]any{
				"general": map[string]any{"theme": "dark"},
				"level":   1,
			},
			want: false,
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, inicodec.ValidShape(testCase.tree))
		})
	}
}

func TestMarshalRejectsNonMappingTopLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tree map[string]any
	}{
		{name: "scalar value", tree: map[string]any{"theme": "dark"}},
		{name: "list value", tree: map[string]any{"recent": []any{"a"}}},
		{name: "nil value", tree: map[string]any{"section": nil}},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := inicodec.NewCodec().Marshal(testCase.tree)

			require.ErrorIs(t, err, inicodec.ErrSectionShape)
		})
	}
}

func TestMarshalRejectsNestedMappingInsideSection(t *testing.T) {
	t.Parallel()

	_, err := inicodec.NewCodec().Marshal(map[string]any{
		"general": map[string]any{
			"nested": map[string]any{"too": "deep"},
		},
	})

	require.ErrorIs(t, err, inicodec.ErrSectionShape)
}

func TestMarshalOutput(t *testing.T) {
	t.Parallel()

	data, err := inicodec.NewCodec().Marshal(map[string]any{
		"section1": map[string]any{"key": "value"},
	})

	require.NoError(t, err)
	assert.Contains(t, string(data), "[section1]")
	assert.Contains(t, string(data), "key = value")
}

func TestRoundTripIsLossy(t *testing.T) {
	t.Parallel()

	// INI has no typed values: numbers and booleans survive as their string
	// representation, not their original type.
	c := inicodec.NewCodec()
	tree := map[string]any{
		"general": map[string]any{
			"theme":   "dark",
			"level":   3,
			"ratio":   1.5,
			"enabled": true,
		},
	}

	data, err := c.Marshal(tree)
	require.NoError(t, err)

	got, err := c.Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"general": map[string]any{
			"theme":   "dark",
			"level":   "3",
			"ratio":   "1.5",
			"enabled": "true",
		},
	}, got)
}

func TestRoundTripStringValues(t *testing.T) {
	t.Parallel()

	c := inicodec.NewCodec()
	tree := map[string]any{
		"section1": map[string]any{"key": "value"},
		"section2": map[string]any{"other": "setting"},
	}

	data, err := c.Marshal(tree)
	require.NoError(t, err)

	got, err := c.Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, tree, got)
}

func TestUnmarshalBareKey(t *testing.T) {
	t.Parallel()

	// A key without "= value" is legal and decodes to an empty string.
	got, err := inicodec.NewCodec().Unmarshal([]byte("[flags]\nverbose\nlevel = 2\n"))

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"flags": map[string]any{
			"verbose": "",
			"level":   "2",
		},
	}, got)
}

func TestMarshalNilValueBecomesBareKey(t *testing.T) {
	t.Parallel()

	c := inicodec.NewCodec()

	data, err := c.Marshal(map[string]any{
		"flags": map[string]any{"verbose": nil},
	})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "=")

	got, err := c.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"flags": map[string]any{"verbose": ""}}, got)
}

func TestUnmarshalIgnoresCommentsAndEmptyDefaultSection(t *testing.T) {
	t.Parallel()

	input := "; generated file\n[general]\n# theme setting\ntheme = dark\n"

	got, err := inicodec.NewCodec().Unmarshal([]byte(input))

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"general": map[string]any{"theme": "dark"}}, got)
}
