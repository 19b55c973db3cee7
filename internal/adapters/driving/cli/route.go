package cli

import (
	"github.com/spf13/cobra"

	"github.com/clinidocs/docrouter/internal/core/domain"
	"github.com/clinidocs/docrouter/internal/core/ports/driving"
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Route the fixture's pending submissions",
	Long: `Loads the site fixture and routes every pending submission it lists,
printing the outcome of each.`,
	RunE: runRoute,
}

func init() {
	rootCmd.AddCommand(routeCmd)
}

func runRoute(cmd *cobra.Command, _ []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	subs := a.site.DomainSubmissions()
	if len(subs) == 0 {
		cmd.Println("No pending submissions in the fixture.")
		return nil
	}

	for _, sub := range subs {
		routeOne(cmd, a.router, sub)
	}
	return nil
}

// routeOne routes one submission and prints its outcome. Routing
// failures are reported per submission and do not stop the pass.
func routeOne(cmd *cobra.Command, router driving.Router, sub domain.Submission) {
	name := sub.SourceURL
	result, err := router.Route(cmd.Context(), sub)
	if err != nil {
		cmd.Printf("%s: error: %v\n", name, err)
		return
	}
	switch result.Signal {
	case domain.CancelFurtherProcessing:
		cmd.Printf("%s -> %s (%s)\n", name, result.NewURL, result.Decision.Mode)
	default:
		cmd.Printf("%s: %s: %s\n", name, result.Signal, result.Details)
	}
	for _, w := range result.Warnings {
		cmd.Printf("  %s\n", w)
	}
}
