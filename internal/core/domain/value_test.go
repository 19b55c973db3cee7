package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLookupValue(t *testing.T) {
	v := ParseLookupValue("3;#Alpha Study")
	assert.Equal(t, 3, v.ID)
	assert.Equal(t, "Alpha Study", v.Label)
	assert.Equal(t, "3;#Alpha Study", v.String())

	bare := ParseLookupValue("Alpha Study")
	assert.Equal(t, 0, bare.ID)
	assert.Equal(t, "Alpha Study", bare.Label)
}

func TestParseLookupValuesMulti(t *testing.T) {
	values := ParseLookupValues("1;#a;#2;#b")
	require.Len(t, values, 2)
	assert.Equal(t, LookupValue{ID: 1, Label: "a"}, values[0])
	assert.Equal(t, LookupValue{ID: 2, Label: "b"}, values[1])

	assert.Equal(t, "1;#a;#2;#b", FormatLookupValues(values))
	assert.Equal(t, "a;b", JoinLabels(values))
}

func TestParseLookupValuesEmpty(t *testing.T) {
	assert.Nil(t, ParseLookupValues(""))
}

func TestSubstringBefore(t *testing.T) {
	assert.Equal(t, "Phase I", SubstringBefore("Phase I|1f3c", "|"))
	assert.Equal(t, "no delimiter", SubstringBefore("no delimiter", "|"))
}

func TestSubstringAfter(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"123;#45", "45"},
		{"no separator", "no separator"},
		{"7;#Safety Document", "Safety Document"},
		{"1;#a;#2;#b", "a;b"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SubstringAfter(tt.in, ";#"), "input %q", tt.in)
	}
}

func TestFormatTermValue(t *testing.T) {
	assert.Equal(t, "12;#Phase I|1f3c", FormatTermValue(12, "Phase I", "1f3c"))
	assert.Equal(t, "-1;#Phase I|1f3c", FormatTermValue(UnboundTermID, "Phase I", "1f3c"))
}

func TestURLValueString(t *testing.T) {
	v := URLValue{URL: "https://host/site/doc.pdf", Description: "Link to: doc.pdf"}
	assert.Equal(t, "https://host/site/doc.pdf, Link to: doc.pdf", v.String())
}
