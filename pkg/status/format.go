package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/scriptkit/scriptkit/pkg/rename"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // base width for the original name
	arrowWidth  = 4  // width of the rename arrow column
	statusWidth = 14 // width for status text
)

// 🎯 FormatResult formats one execution result for display. In dry-run mode
// applied entries read as "would rename" so the output never overstates what
// happened.
func FormatResult(r rename.Result, mode rename.Mode) string {
	var prefix, text string
	switch r.Status {
	case rename.StatusApplied:
		prefix = color.GreenString("✓")
		text = "renamed"
		if mode == rename.DryRun {
			text = "would rename"
		}
	case rename.StatusSkipped:
		prefix = color.HiBlackString("-")
		text = "unchanged"
	case rename.StatusFailed:
		prefix = color.RedString("✗")
		text = string(r.Reason)
	default:
		prefix = color.YellowString("?")
		text = string(r.Status)
	}

	namePart := fmt.Sprintf("%-*s", nameWidth, r.Entry.Candidate.Name)

	arrow := strings.Repeat(" ", arrowWidth)
	target := ""
	if !r.Entry.Unchanged() {
		arrow = fmt.Sprintf("%-*s", arrowWidth, "→")
		target = r.Entry.ProposedName
	}

	return fmt.Sprintf("%s%s %s %s%-*s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		namePart,
		arrow,
		nameWidth, target,
		fmt.Sprintf("%-*s", statusWidth, text),
	)
}

// 📊 FormatSummary formats the closing line of a run.
func FormatSummary(results []rename.Result, mode rename.Mode) string {
	var applied, skipped, failed int
	for _, r := range results {
		switch r.Status {
		case rename.StatusApplied:
			applied++
		case rename.StatusSkipped:
			skipped++
		case rename.StatusFailed:
			failed++
		}
	}

	verb := "renamed"
	if mode == rename.DryRun {
		verb = "would rename"
	}

	line := fmt.Sprintf("%s %d file(s), %d unchanged", verb, applied, skipped)
	if failed > 0 {
		line += ", " + color.RedString("%d failed", failed)
	}
	return line
}

// ❌ FormatError formats an error for user-facing output.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return color.RedString("✗ %v", err)
}
