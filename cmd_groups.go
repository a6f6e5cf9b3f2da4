package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"multilaunch/internal/groups"
	"multilaunch/internal/settings"
	"multilaunch/internal/ui"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Manage saved groups",
}

var groupsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved groups",
	Args:  cobra.NoArgs,
	RunE:  runGroupsList,
}

var groupsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the group configuration",
	Args:  cobra.NoArgs,
	RunE:  runGroupsShow,
}

var groupsSetCmd = &cobra.Command{
	Use:     "set <name> <apps>",
	Short:   "Create or replace a group",
	Example: `  multilaunch groups set work "firefox, terminal, calc"`,
	Args:    cobra.MinimumNArgs(2),
	RunE:    runGroupsSet,
}

var groupsRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a group",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroupsRm,
}

var groupsRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a group, keeping its position",
	Args:  cobra.ExactArgs(2),
	RunE:  runGroupsRename,
}

func init() {
	groupsCmd.AddCommand(groupsListCmd, groupsShowCmd, groupsSetCmd, groupsRmCmd, groupsRenameCmd)
}

// loadGroups reads the persisted mapping. A malformed value is reported as a
// warning and the default mapping used.
func loadGroups(e *env) groups.Mapping {
	raw, err := e.settings.GetString(settings.KeyGroups)
	if err != nil {
		e.logger.Warn("group config unavailable, using defaults", "error", err)
		return groups.Default()
	}
	m, err := groups.Load(raw)
	if err != nil {
		e.logger.Warn("group config malformed, using defaults", "error", err)
	}
	return m
}

func runGroupsList(cmd *cobra.Command, _ []string) error {
	e, err := setupEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()

	m := loadGroups(e)
	out := cmd.OutOrStdout()
	if m.Len() == 0 {
		fmt.Fprintln(out, "No groups saved")
		return nil
	}

	t := newTable("Group", "Apps")
	limitColumn(t, 2, 60)
	for _, g := range m.Groups() {
		t.AppendRow([]any{g.Name, strings.Join(g.Tokens, ", ")})
	}
	fmt.Fprintln(out, t.Render())
	return nil
}

func runGroupsShow(cmd *cobra.Command, _ []string) error {
	e, err := setupEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()

	h := ui.NewJSONHighlighter()
	fmt.Fprintln(cmd.OutOrStdout(), h.Highlight(groups.Indent(loadGroups(e))))
	return nil
}

// editGroups applies fn to an editor seeded with the persisted groups,
// commits and prints the resulting change
func editGroups(cmd *cobra.Command, fn func(*groups.Editor) error) error {
	e, err := setupEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()

	ed := groups.NewEditor(e.settings, settings.KeyGroups, loadGroups(e))
	if err := fn(ed); err != nil {
		return err
	}
	if err := ed.Commit(); err != nil {
		return err
	}
	printChange(cmd.OutOrStdout(), ed.LastChange())
	return nil
}

func printChange(w io.Writer, cs groups.ChangeSet) {
	if !cs.HasChanges() {
		fmt.Fprintln(w, cs.Summary())
		return
	}
	for _, line := range cs.Lines {
		switch line.Kind {
		case groups.ChangeAdded:
			fmt.Fprintln(w, ui.AddedStyle.Render("+"+line.Text))
		case groups.ChangeRemoved:
			fmt.Fprintln(w, ui.RemovedStyle.Render("-"+line.Text))
		default:
			fmt.Fprintln(w, " "+line.Text)
		}
	}
	fmt.Fprintln(w, cs.Summary())
}

func runGroupsSet(cmd *cobra.Command, args []string) error {
	return editGroups(cmd, func(ed *groups.Editor) error {
		tokens := strings.Join(args[1:], ",")
		if !ed.Upsert(args[0], tokens) {
			return fmt.Errorf("group name must not be empty")
		}
		return nil
	})
}

func runGroupsRm(cmd *cobra.Command, args []string) error {
	return editGroups(cmd, func(ed *groups.Editor) error {
		if _, ok := ed.Working().Get(strings.TrimSpace(args[0])); !ok {
			return fmt.Errorf("no group named %q", args[0])
		}
		ed.Remove(args[0])
		return nil
	})
}

func runGroupsRename(cmd *cobra.Command, args []string) error {
	return editGroups(cmd, func(ed *groups.Editor) error {
		tokens, ok := ed.Working().Get(strings.TrimSpace(args[0]))
		if !ok {
			return fmt.Errorf("no group named %q", args[0])
		}
		if !ed.Rename(args[0], args[1], strings.Join(tokens, ",")) {
			return fmt.Errorf("group name must not be empty")
		}
		return nil
	})
}
