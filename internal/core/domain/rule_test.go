package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleConditionRoundTrip(t *testing.T) {
	cond := RuleCondition{
		FieldID:           "f1",
		FieldInternalName: "StudyNumber",
		FieldTitle:        "Study Number",
		Operator:          "EqualsOrIsAChildOf",
		Value:             "ST-001",
	}

	raw, err := cond.ConditionsXML()
	require.NoError(t, err)
	assert.Contains(t, raw, `Column="f1|StudyNumber|Study Number"`)

	parsed, err := ParseConditions(raw)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, cond, parsed[0])
}

func TestConditionsXMLRequiresIdentifiers(t *testing.T) {
	_, err := RuleCondition{Operator: "Equals", Value: "x"}.ConditionsXML()
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = RuleCondition{FieldID: "a", FieldInternalName: "b", FieldTitle: "c"}.ConditionsXML()
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseConditionsEmpty(t *testing.T) {
	conds, err := ParseConditions("  ")
	require.NoError(t, err)
	assert.Nil(t, conds)
}

func TestRuleMatchesTrimsAndContains(t *testing.T) {
	rule := RoutingRule{ContentTypeName: " Safety Document "}
	assert.True(t, rule.Matches("Safety Document"))
	assert.True(t, rule.Matches("Safety"))
	assert.False(t, rule.Matches("Protocol"))
}
