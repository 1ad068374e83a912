package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Version
		wantErr bool
	}{
		{name: "initial", input: "1.0", want: Version{Major: 1, Minor: 0}},
		{name: "single digit minor", input: "1.9", want: Version{Major: 1, Minor: 9}},
		{name: "double digit minor", input: "1.10", want: Version{Major: 1, Minor: 10}},
		{name: "larger major", input: "3.2", want: Version{Major: 3, Minor: 2}},
		{name: "empty", input: "", wantErr: true},
		{name: "missing minor", input: "1", wantErr: true},
		{name: "extra component", input: "1.2.3", wantErr: true},
		{name: "non-numeric", input: "a.b", wantErr: true},
		{name: "negative minor", input: "1.-1", wantErr: true},
		{name: "leading space", input: " 1.0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBumpMinor(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "1.0", want: "1.1"},
		{input: "1.8", want: "1.9"},
		{input: "1.9", want: "1.10"},
		{input: "1.10", want: "1.11"},
		{input: "1.99", want: "1.100"},
		{input: "2.3", want: "2.4"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := ParseVersion(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.BumpMinor().String())
		})
	}
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{a: "1.0", b: "1.0", want: 0},
		{a: "1.0", b: "1.1", want: -1},
		{a: "1.2", b: "1.1", want: 1},
		{a: "1.9", b: "1.10", want: -1},
		{a: "2.0", b: "1.99", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			a, err := ParseVersion(tt.a)
			require.NoError(t, err)
			b, err := ParseVersion(tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Compare(b))
		})
	}
}

func TestInitialVersion(t *testing.T) {
	assert.Equal(t, "1.0", InitialVersion.String())
}
