package groups

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ChangeKind is the kind of a ChangeLine
type ChangeKind int

const (
	ChangeEqual ChangeKind = iota
	ChangeAdded
	ChangeRemoved
)

// ChangeLine is one line of the indented configuration
type ChangeLine struct {
	Kind ChangeKind
	Text string
}

// ChangeSet is a line diff between two configurations
type ChangeSet struct {
	Lines   []ChangeLine
	Added   int
	Removed int
}

// Changes diffs two mappings line by line using their Indent form
func Changes(before, after Mapping) ChangeSet {
	oldText := Indent(before)
	newText := Indent(after)

	var cs ChangeSet
	if oldText == newText {
		return cs
	}

	dmp := diffmatchpatch.New()
	chars1, chars2, lineArray := dmp.DiffLinesToChars(oldText+"\n", newText+"\n")
	diffs := dmp.DiffMain(chars1, chars2, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	for _, d := range diffs {
		lines := strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n")
		for _, line := range lines {
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				cs.Lines = append(cs.Lines, ChangeLine{Kind: ChangeAdded, Text: line})
				cs.Added++
			case diffmatchpatch.DiffDelete:
				cs.Lines = append(cs.Lines, ChangeLine{Kind: ChangeRemoved, Text: line})
				cs.Removed++
			default:
				cs.Lines = append(cs.Lines, ChangeLine{Kind: ChangeEqual, Text: line})
			}
		}
	}
	return cs
}

// HasChanges returns true if anything was added or removed
func (c ChangeSet) HasChanges() bool {
	return c.Added > 0 || c.Removed > 0
}

// Summary returns a brief summary of changes
func (c ChangeSet) Summary() string {
	if !c.HasChanges() {
		return "No changes"
	}
	return fmt.Sprintf("+%d -%d", c.Added, c.Removed)
}

// Unified formats the change set as unified diff lines
func (c ChangeSet) Unified() string {
	var sb strings.Builder
	for _, line := range c.Lines {
		switch line.Kind {
		case ChangeAdded:
			sb.WriteString("+" + line.Text + "\n")
		case ChangeRemoved:
			sb.WriteString("-" + line.Text + "\n")
		default:
			sb.WriteString(" " + line.Text + "\n")
		}
	}
	return sb.String()
}
