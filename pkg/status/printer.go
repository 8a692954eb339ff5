package status

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/scriptkit/scriptkit/pkg/rename"
)

// 🖨️ Printer writes user-facing plan and result output. It is the
// human-readable channel; structured logging goes through zerolog and stays
// separate so scripts can consume one without the other.
type Printer struct {
	out  io.Writer
	zlog zerolog.Logger
}

// 🏭 NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer, zlog zerolog.Logger) *Printer {
	return &Printer{out: out, zlog: zlog}
}

// 📢 Banner announces the run before any entry is printed.
func (p *Printer) Banner(root string, mode rename.Mode, total int) {
	if mode == rename.DryRun {
		pterm.Info.WithWriter(p.out).Printfln("dry run — no files will be renamed (pass --apply to rename)")
	} else {
		pterm.Warning.WithWriter(p.out).Printfln("applying renames")
	}
	fmt.Fprintf(p.out, "    directory: %s\n    files:     %d\n\n", root, total)
}

// 📋 PlanTable renders the whole plan as a table, for dry-run display.
func (p *Printer) PlanTable(plan *rename.Plan) error {
	data := pterm.TableData{{"#", "current name", "proposed name"}}
	for _, entry := range plan.Entries {
		proposed := entry.ProposedName
		if entry.Unchanged() {
			proposed = "(unchanged)"
		}
		data = append(data, []string{
			fmt.Sprintf("%d", entry.SequenceIndex+1),
			entry.Candidate.Name,
			proposed,
		})
	}

	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(p.out, rendered)
	return nil
}

// 📝 Results prints one line per result plus the closing summary, and mirrors
// each outcome into the structured log.
func (p *Printer) Results(results []rename.Result, mode rename.Mode) {
	for _, r := range results {
		fmt.Fprintln(p.out, FormatResult(r, mode))

		event := p.zlog.Info()
		if r.Status == rename.StatusFailed {
			event = p.zlog.Error().Err(r.Err).Str("reason", string(r.Reason))
		}
		event.
			Str("file", r.Entry.Candidate.Path).
			Str("proposed", r.Entry.ProposedPath).
			Str("status", string(r.Status)).
			Str("mode", mode.String()).
			Msg("rename result")
	}

	fmt.Fprintf(p.out, "\n%s\n", FormatSummary(results, mode))
}

// ❌ Error prints a fatal, plan-level error.
func (p *Printer) Error(err error) {
	pterm.Error.WithWriter(p.out).Println(err.Error())
}
