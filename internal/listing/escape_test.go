package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnescape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: `\u00A0`, want: "\u00a0"},
		{in: `Test\u0020String`, want: "Test String"},
		{in: `\t `, want: "\t "},
		{in: `\x09\\`, want: "\t\\"},
		{in: `\U0001F4C1`, want: "📁"},
		{in: `│├─└ `, want: "│├─└ "},
		{in: `\'\"`, want: `'"`},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		got, err := Unescape(tt.in)
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestUnescapeMalformedKeepsInput(t *testing.T) {
	for _, in := range []string{`\u00G0`, `abc\`, `\q`} {
		got, err := Unescape(in)
		assert.Error(t, err, in)
		assert.Equal(t, in, got)
	}
}
