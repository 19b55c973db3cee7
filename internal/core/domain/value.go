package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// RefSeparator joins a row id to its cached label in serialized
// reference values: `3;#Alpha`.
const RefSeparator = ";#"

// TermLabelDelimiter separates a term label from its guid in taxonomy
// storage values: `Phase I|1f3c...`.
const TermLabelDelimiter = "|"

// UnboundTermID is the sentinel row id written when a resolved term has
// no local list binding yet; the store adds the binding on write.
const UnboundTermID = -1

// LookupValue is one resolved reference: a row id plus its display label.
// Principal references use the same shape.
type LookupValue struct {
	ID    int
	Label string
}

// String serializes the reference in `id;#label` form.
func (v LookupValue) String() string {
	return strconv.Itoa(v.ID) + RefSeparator + v.Label
}

// ParseLookupValue decodes a single `id;#label` value. A value without
// the separator is treated as a bare label with id 0.
func ParseLookupValue(s string) LookupValue {
	id, label, ok := strings.Cut(s, RefSeparator)
	if !ok {
		return LookupValue{Label: s}
	}
	n, err := strconv.Atoi(id)
	if err != nil {
		return LookupValue{Label: s}
	}
	return LookupValue{ID: n, Label: label}
}

// ParseLookupValues decodes a multi-valued reference string of the form
// `1;#a;#2;#b` into its id/label pairs.
func ParseLookupValues(s string) []LookupValue {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, RefSeparator)
	if len(parts) == 1 {
		return []LookupValue{{Label: s}}
	}
	var values []LookupValue
	for i := 0; i+1 < len(parts); i += 2 {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			continue
		}
		values = append(values, LookupValue{ID: n, Label: parts[i+1]})
	}
	return values
}

// FormatLookupValues serializes a reference collection back to the
// multi-valued wire form.
func FormatLookupValues(values []LookupValue) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, RefSeparator)
}

// JoinLabels concatenates the display labels of a reference collection
// with `;`, matching the flattened text form.
func JoinLabels(values []LookupValue) string {
	var b strings.Builder
	for _, v := range values {
		b.WriteString(";")
		b.WriteString(v.Label)
	}
	return strings.TrimPrefix(b.String(), ";")
}

// FormatTermValue builds the taxonomy storage string
// `{wssID};#{label}|{guid}`.
func FormatTermValue(wssID int, label, guid string) string {
	return fmt.Sprintf("%d%s%s%s%s", wssID, RefSeparator, label, TermLabelDelimiter, guid)
}

// URLValue is a hyperlink field value: an address plus a description.
type URLValue struct {
	URL         string
	Description string
}

// String serializes the hyperlink in the store's `url, description` form.
func (v URLValue) String() string {
	return v.URL + ", " + v.Description
}

// SubstringBefore returns the portion of s before the first occurrence
// of any character in pattern, or all of s when none occurs.
func SubstringBefore(s, pattern string) string {
	if i := strings.IndexAny(s, pattern); i >= 0 {
		return s[:i]
	}
	return s
}

// SubstringAfter splits s on the characters of pattern, drops the first
// two segments, and rejoins the rest with pattern. A value containing no
// pattern character is returned unchanged. For the common `id;#label`
// encoding this yields the label; a multi-valued reference collection
// flattens to its `;`-joined labels.
func SubstringAfter(s, pattern string) string {
	if pattern == RefSeparator {
		if values := ParseLookupValues(s); len(values) > 1 {
			return JoinLabels(values)
		}
	}
	parts := splitAny(s, pattern)
	if len(parts) == 1 {
		return s
	}
	out := strings.Join(parts[2:], pattern)
	return strings.TrimRight(out, pattern)
}

// splitAny splits s at every occurrence of any character in chars,
// keeping empty segments.
func splitAny(s, chars string) []string {
	parts := []string{}
	start := 0
	for i, r := range s {
		if strings.ContainsRune(chars, r) {
			parts = append(parts, s[start:i])
			start = i + len(string(r))
		}
	}
	return append(parts, s[start:])
}
