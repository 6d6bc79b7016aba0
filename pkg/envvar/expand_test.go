package envvar_test

import (
	"testing"

	"github.com/devantler-tech/settings/pkg/envvar"
	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	t.Setenv("SETTINGS_TEST_THEME", "dark")

	tests := []struct {
		name        string
		input       string
		want        string
		wantMissing []string
	}{
		{
			name:  "no placeholders",
			input: "theme: light",
			want:  "theme: light",
		},
		{
			name:  "set variable",
			input: "theme: ${SETTINGS_TEST_THEME}",
			want:  "theme: dark",
		},
		{
			name:  "default used when unset",
			input: "theme: ${SETTINGS_TEST_UNSET:-light}",
			want:  "theme: light",
		},
		{
			name:  "set variable wins over default",
			input: "theme: ${SETTINGS_TEST_THEME:-light}",
			want:  "theme: dark",
		},
		{
			name:  "explicitly empty default",
			input: "theme: '${SETTINGS_TEST_UNSET:-}'",
			want:  "theme: ''",
		},
		{
			name:        "unset without default is reported",
			input:       "theme: '${SETTINGS_TEST_UNSET}'",
			want:        "theme: ''",
			wantMissing: []string{"SETTINGS_TEST_UNSET"},
		},
		{
			name:  "malformed placeholder left alone",
			input: "theme: ${1BAD}",
			want:  "theme: ${1BAD}",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got, missing := envvar.Expand(testCase.input)

			assert.Equal(t, testCase.want, got)
			assert.Equal(t, testCase.wantMissing, missing)
		})
	}
}

func TestExpandBytes(t *testing.T) {
	t.Setenv("SETTINGS_TEST_LEVEL", "3")

	got, missing := envvar.ExpandBytes([]byte("level = ${SETTINGS_TEST_LEVEL}"))

	assert.Equal(t, []byte("level = 3"), got)
	assert.Empty(t, missing)
}
