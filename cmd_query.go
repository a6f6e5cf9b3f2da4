package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"multilaunch/internal/hints"
)

var queryFlags struct {
	launch bool
}

var queryCmd = &cobra.Command{
	Use:   "query <terms...>",
	Short: "Classify and resolve a query, optionally launching the result",
	Example: `  multilaunch query work
  multilaunch query "firefox + terminal" --launch`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().BoolVarP(&queryFlags.launch, "launch", "l", false, "Launch the resolved applications")
}

func runQuery(cmd *cobra.Command, args []string) error {
	e, err := setupEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.catalog.Refresh(context.Background()); err != nil {
		return fmt.Errorf("scan applications: %w", err)
	}
	if err := e.provider.Enable(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	outcome := e.provider.Search(args)
	hint := hints.Analyze(args, outcome)

	if !outcome.Matched {
		fmt.Fprintln(out, hint.Message)
		return nil
	}

	c := outcome.Classification
	fmt.Fprintf(out, "Query:  %s\n", c.Query)
	fmt.Fprintf(out, "Match:  %s\n", c.Kind)
	if c.Group != "" {
		fmt.Fprintf(out, "Group:  %s\n", c.Group)
	}
	fmt.Fprintf(out, "Tokens: %s\n", strings.Join(c.Tokens, ", "))

	if len(outcome.Apps) > 0 {
		t := newTable("#", "ID", "Name")
		for i, app := range outcome.Apps {
			t.AppendRow([]any{i + 1, app.ID(), app.Name()})
		}
		fmt.Fprintln(out, t.Render())
	}
	fmt.Fprintln(out, hint.Message)

	if !queryFlags.launch {
		return nil
	}
	if !outcome.Present {
		return fmt.Errorf("nothing to launch")
	}

	failed, err := e.provider.Launch(outcome)
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d launches failed", failed, len(outcome.Apps))
	}
	fmt.Fprintf(out, "Launched %d apps\n", len(outcome.Apps))
	return nil
}
