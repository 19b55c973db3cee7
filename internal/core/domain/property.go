package domain

import (
	"regexp"
	"strings"
)

// sentenceBreak inserts a space before every interior capital letter.
var sentenceBreak = regexp.MustCompile(`([^^])([A-Z])`)

// LookupNode is one parsed property-bag entry: a normalized field name,
// its raw value, and the declared type name. Nodes are produced by the
// property reader and consumed once during a metadata copy.
type LookupNode struct {
	// CamelCaseName is the field name with encoding artifacts stripped.
	CamelCaseName string
	// Value is the raw serialized value.
	Value string
	// TypeName is the declared field type name.
	TypeName string
}

// NewLookupNode builds a node from a raw property triple, collapsing the
// name: anything after the first `;` is dropped, and the `_x0020_`
// space encoding, `xd_` prefix, and underscores are removed.
func NewLookupNode(fieldName, fieldValue, fieldType string) LookupNode {
	name := strings.Split(fieldName, ";")[0]
	name = strings.ReplaceAll(name, "_x0020_", "")
	name = strings.ReplaceAll(name, "xd_", "")
	name = strings.ReplaceAll(name, "_", "")
	return LookupNode{CamelCaseName: name, Value: fieldValue, TypeName: fieldType}
}

// Kind maps the declared type name to a FieldKind.
func (n LookupNode) Kind() FieldKind {
	return KindFromName(n.TypeName)
}

// MatchesTitle reports whether the node corresponds to a field display
// title after both sides are normalized.
func (n LookupNode) MatchesTitle(title string) bool {
	return n.CamelCaseName == NormalizeFieldTitle(title)
}

// SentenceName expands the camel-case name back into a spaced title,
// used when proposing schema additions for unmatched nodes.
func (n LookupNode) SentenceName() string {
	s := n.CamelCaseName
	if s == "" {
		return ""
	}
	s = strings.ToUpper(s[:1]) + s[1:]
	return sentenceBreak.ReplaceAllString(s, "$1 $2")
}
