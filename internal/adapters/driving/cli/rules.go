package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clinidocs/docrouter/internal/core/domain"
)

var (
	ruleName        string
	ruleDescription string
	ruleContentType string
	ruleLibrary     string
	ruleFolder      string
	rulePriority    int
	ruleDisabled    bool

	condFieldID   string
	condInternal  string
	condTitle     string
	condOperator  string
	condValue     string
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage routing rules",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List routing rules in matching order",
	RunE:  runRulesList,
}

var rulesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a routing rule",
	RunE:  runRulesAdd,
}

var rulesDeleteCmd = &cobra.Command{
	Use:   "delete <rule-id>",
	Short: "Delete a routing rule",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesDelete,
}

func init() {
	rulesAddCmd.Flags().StringVar(&ruleName, "name", "", "rule name (required)")
	rulesAddCmd.Flags().StringVar(&ruleDescription, "description", "", "rule description")
	rulesAddCmd.Flags().StringVar(&ruleContentType, "content-type", "", "content type the rule matches (required)")
	rulesAddCmd.Flags().StringVar(&ruleLibrary, "library", "", "destination library title (required)")
	rulesAddCmd.Flags().StringVar(&ruleFolder, "folder", "", "destination folder path under the library")
	rulesAddCmd.Flags().IntVar(&rulePriority, "priority", 0, "matching priority, lower matches first")
	rulesAddCmd.Flags().BoolVar(&ruleDisabled, "disabled", false, "store the rule disabled")

	rulesAddCmd.Flags().StringVar(&condFieldID, "condition-field-id", "", "condition field schema id")
	rulesAddCmd.Flags().StringVar(&condInternal, "condition-field-internal", "", "condition field internal name")
	rulesAddCmd.Flags().StringVar(&condTitle, "condition-field-title", "", "condition field display title")
	rulesAddCmd.Flags().StringVar(&condOperator, "condition-operator", "EqualsOrIsAChildOf", "condition operator")
	rulesAddCmd.Flags().StringVar(&condValue, "condition-value", "", "condition literal value")

	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesAddCmd)
	rulesCmd.AddCommand(rulesDeleteCmd)
	rootCmd.AddCommand(rulesCmd)
}

func runRulesList(cmd *cobra.Command, _ []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	rules, err := a.rules.ListRules(cmd.Context())
	if err != nil {
		return err
	}
	if len(rules) == 0 {
		cmd.Println("No routing rules stored.")
		return nil
	}
	for _, r := range rules {
		state := "enabled"
		if !r.Enabled {
			state = "disabled"
		}
		target := r.TargetLibrary
		if r.TargetFolder != "" {
			target += "/" + r.TargetFolder
		}
		cmd.Printf("%s  p%d  %-10s %q -> %s (%s)\n", r.ID, r.Priority, state, r.ContentTypeName, target, r.Name)
	}
	return nil
}

func runRulesAdd(cmd *cobra.Command, _ []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	rule := domain.RoutingRule{
		Name:            ruleName,
		Description:     ruleDescription,
		ContentTypeName: ruleContentType,
		WebURL:          a.site.URL,
		TargetLibrary:   ruleLibrary,
		TargetFolder:    ruleFolder,
		Priority:        rulePriority,
		Enabled:         !ruleDisabled,
	}
	if condValue != "" {
		xml, err := domain.RuleCondition{
			FieldID:           condFieldID,
			FieldInternalName: condInternal,
			FieldTitle:        condTitle,
			Operator:          condOperator,
			Value:             condValue,
		}.ConditionsXML()
		if err != nil {
			return fmt.Errorf("building rule condition: %w", err)
		}
		rule.ConditionsXML = xml
	}

	saved, err := a.rules.AddRule(cmd.Context(), rule)
	if err != nil {
		return err
	}
	cmd.Printf("Stored rule %s (%s)\n", saved.ID, saved.Name)
	return nil
}

func runRulesDelete(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.rules.DeleteRule(cmd.Context(), args[0]); err != nil {
		return err
	}
	cmd.Printf("Deleted rule %s\n", args[0])
	return nil
}
