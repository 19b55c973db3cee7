package domain

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

// RoutingRule binds a content type name, with an optional condition, to a
// destination library and folder. Rules are authored by administrators
// and read-only to the engine.
type RoutingRule struct {
	// ID identifies the rule in its store.
	ID string
	// Name is the administrator-chosen rule name.
	Name string
	// Description is free text shown in rule listings.
	Description string
	// ContentTypeName is the submission content type the rule matches.
	ContentTypeName string
	// WebURL is the site the rule's target library lives under.
	WebURL string
	// TargetLibrary is the destination library title.
	TargetLibrary string
	// TargetFolder is an optional library-relative folder path. Empty
	// means the library root, with folder drill-down left to the engine.
	TargetFolder string
	// Priority orders rules; lower values match first.
	Priority int
	// Enabled rules participate in matching; disabled rules are skipped.
	Enabled bool
	// ConditionsXML is the serialized condition predicate.
	ConditionsXML string
	// CreatedAt records when the rule was stored.
	CreatedAt time.Time
	// UpdatedAt records the last change.
	UpdatedAt time.Time
}

// Matches reports whether the rule applies to the given content type
// name. Comparison trims whitespace and accepts a rule value that
// contains the name, matching the store's loose convention.
func (r RoutingRule) Matches(contentTypeName string) bool {
	return strings.Contains(strings.TrimSpace(r.ContentTypeName), strings.TrimSpace(contentTypeName))
}

// RuleCondition compares one field against a literal value. Only the
// equality operator is exercised by the transform logic.
type RuleCondition struct {
	// FieldID is the condition field's schema identifier.
	FieldID string
	// FieldInternalName is the condition field's internal name.
	FieldInternalName string
	// FieldTitle is the condition field's display title.
	FieldTitle string
	// Operator names the comparison, conventionally "EqualsOrIsAChildOf".
	Operator string
	// Value is the literal compared against.
	Value string
}

// conditionsDoc mirrors the serialized rule condition layout.
type conditionsDoc struct {
	XMLName    xml.Name       `xml:"Conditions"`
	Conditions []conditionElt `xml:"Condition"`
}

type conditionElt struct {
	Column   string `xml:"Column,attr"`
	Operator string `xml:"Operator,attr"`
	Value    string `xml:"Value,attr"`
}

// ConditionsXML serializes the condition in the store's
// `<Conditions><Condition Column="id|internal|title" .../></Conditions>`
// convention.
func (c RuleCondition) ConditionsXML() (string, error) {
	if c.FieldID == "" || c.FieldInternalName == "" || c.FieldTitle == "" {
		return "", fmt.Errorf("%w: condition field identifiers required", ErrInvalidInput)
	}
	if c.Operator == "" || c.Value == "" {
		return "", fmt.Errorf("%w: condition operator and value required", ErrInvalidInput)
	}
	doc := conditionsDoc{Conditions: []conditionElt{{
		Column:   c.FieldID + "|" + c.FieldInternalName + "|" + c.FieldTitle,
		Operator: c.Operator,
		Value:    c.Value,
	}}}
	out, err := xml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshalling conditions: %w", err)
	}
	return string(out), nil
}

// ParseConditions decodes a serialized condition predicate. An empty
// string yields no conditions.
func ParseConditions(s string) ([]RuleCondition, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var doc conditionsDoc
	if err := xml.Unmarshal([]byte(s), &doc); err != nil {
		return nil, fmt.Errorf("unmarshalling conditions: %w", err)
	}
	conditions := make([]RuleCondition, 0, len(doc.Conditions))
	for _, elt := range doc.Conditions {
		cond := RuleCondition{Operator: elt.Operator, Value: elt.Value}
		parts := strings.SplitN(elt.Column, "|", 3)
		if len(parts) == 3 {
			cond.FieldID = parts[0]
			cond.FieldInternalName = parts[1]
			cond.FieldTitle = parts[2]
		} else {
			cond.FieldTitle = elt.Column
		}
		conditions = append(conditions, cond)
	}
	return conditions, nil
}
