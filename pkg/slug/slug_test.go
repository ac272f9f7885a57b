package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain words", input: "Instructor Photo", want: "instructor-photo"},
		{name: "accents", input: "Café Crème", want: "cafe-creme"},
		{name: "separators collapse", input: "hero__shot -- final.v2", want: "hero-shot-final-v2"},
		{name: "cjk only", input: "講師照片", want: ""},
		{name: "mixed cjk", input: "講師 photo 1", want: "photo-1"},
		{name: "symbols", input: "  ***IMG@2x!!  ", want: "img2x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.input))
		})
	}
}

func TestMake_Truncates(t *testing.T) {
	got := Make(strings.Repeat("abc ", 40))
	assert.LessOrEqual(t, len(got), maxLength)
	assert.False(t, strings.HasSuffix(got, "-"))
}
