package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"multilaunch/internal/catalog"
)

var appsFlags struct {
	terminal bool
	icon     string
}

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List the application catalog",
	Args:  cobra.NoArgs,
	RunE:  runApps,
}

var appsAddCmd = &cobra.Command{
	Use:     "add <name> <command...>",
	Short:   "Add a custom application",
	Example: `  multilaunch apps add --terminal "Top" btop --utf-force`,
	Args:    cobra.MinimumNArgs(2),
	RunE:    runAppsAdd,
}

var appsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a custom application",
	Args:  cobra.ExactArgs(1),
	RunE:  runAppsRm,
}

func init() {
	f := appsAddCmd.Flags()
	f.BoolVarP(&appsFlags.terminal, "terminal", "t", false, "Run the command in a terminal")
	f.StringVar(&appsFlags.icon, "icon", "", "Icon name or path")
	// Flags after the name belong to the command being added
	f.SetInterspersed(false)

	appsCmd.AddCommand(appsAddCmd, appsRmCmd)
}

func runApps(cmd *cobra.Command, _ []string) error {
	e, err := setupEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.catalog.Refresh(context.Background()); err != nil {
		return fmt.Errorf("scan applications: %w", err)
	}

	t := newTable("ID", "Name", "Source", "Exec")
	limitColumn(t, 4, 50)
	entries := e.catalog.Entries()
	for _, entry := range entries {
		t.AppendRow([]any{entry.ShortID(), entry.DisplayName, entry.Source, entry.Exec})
	}
	t.AppendFooter([]any{"", fmt.Sprintf("%d apps", len(entries)), "", ""})
	fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return nil
}

func runAppsAdd(cmd *cobra.Command, args []string) error {
	e, err := setupEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()

	def, err := catalog.BuildDefinition(args[0], joinCommand(args[1:]), appsFlags.terminal)
	if err != nil {
		return err
	}
	def.Icon = strings.TrimSpace(appsFlags.icon)

	if err := e.custom.Add(def); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", def.Name, def.ID)
	return nil
}

func runAppsRm(cmd *cobra.Command, args []string) error {
	e, err := setupEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()

	removed, err := e.custom.Remove(args[0])
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("no custom app with id %q", args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
	return nil
}

// joinCommand rebuilds an Exec line from shell arguments, quoting the ones
// that contain spaces or quotes
func joinCommand(args []string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\"'\\") {
			a = `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(a) + `"`
		}
		parts[i] = a
	}
	return strings.Join(parts, " ")
}
