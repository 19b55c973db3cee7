package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLookupNodeNormalizesName(t *testing.T) {
	n := NewLookupNode("Study_x0020_Number;#extra", "3;#ST-001", "Lookup")
	assert.Equal(t, "StudyNumber", n.CamelCaseName)
	assert.Equal(t, "3;#ST-001", n.Value)
	assert.Equal(t, KindLookup, n.Kind())

	n = NewLookupNode("xd_Prog_Name", "v", "Text")
	assert.Equal(t, "ProgName", n.CamelCaseName)
}

func TestLookupNodeMatchesTitle(t *testing.T) {
	n := NewLookupNode("StudyId", "1", "Text")
	assert.True(t, n.MatchesTitle("Study ID"))
	assert.False(t, n.MatchesTitle("Molecule"))

	converted := NewLookupNode("Reviewer", "x", "User")
	assert.True(t, converted.MatchesTitle("Reviewer (Converted Document)"))
}

func TestSentenceName(t *testing.T) {
	n := NewLookupNode("documentTypeName", "v", "Text")
	assert.Equal(t, "Document Type Name", n.SentenceName())

	empty := LookupNode{}
	assert.Equal(t, "", empty.SentenceName())
}
