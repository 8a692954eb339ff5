package commands

import (
	"time"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/scriptkit/scriptkit/cmd/scriptkit/opts"
	"github.com/scriptkit/scriptkit/pkg/rename"
)

// NewRenameCmd creates a new rename command
func NewRenameCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		prefix       string
		suffix       string
		replaceFrom  string
		replaceTo    string
		sanitize     bool
		number       bool
		numberStart  int
		numberWidth  int
		date         bool
		datePosition string
		recursive    bool
		ignore       []string
		dryRun       bool
		apply        bool
	)

	cmd := &cobra.Command{
		Use:   "rename DIR",
		Short: "Batch-rename files from composable rules",
		Long: `Rename builds a plan from the enabled rules, then either prints it
(dry run, the default) or applies it. Rules compose in a fixed order:
replace, sanitize, prefix, suffix, numbering, date stamp. The plan is
rejected before anything is touched if two files would end up with the
same name. Nothing on disk changes unless --apply is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			root := args[0]
			defaults := ro.RenameDefaults()

			rules := rename.RuleSet{
				Prefix:   prefix,
				Suffix:   suffix,
				Sanitize: sanitize,
			}
			if replaceFrom != "" || replaceTo != "" {
				rules.Replace = &rename.ReplaceRule{From: replaceFrom, To: replaceTo}
			}
			if number {
				rules.Numbering = rename.NumberingRule{
					Enabled: true,
					Start:   pickInt(cmd, "number-start", numberStart, defaults.NumberStart, 1),
					Width:   pickInt(cmd, "number-width", numberWidth, defaults.NumberWidth, 3),
				}
			}
			if date {
				position := datePosition
				if !cmd.Flags().Changed("date-position") && defaults.DatePosition != "" {
					position = defaults.DatePosition
				}
				rules.DateStamp = rename.DateStampRule{
					Enabled:  true,
					Position: rename.DatePosition(position),
				}
			}

			if rules.Empty() {
				return errors.New("no rename rule enabled, nothing to do")
			}

			patterns := ignore
			if len(patterns) == 0 {
				patterns = defaults.Ignore
			}

			candidates, err := rename.Collect(ctx, root, rename.CollectOptions{
				Recursive: recursive,
				Ignore:    patterns,
			})
			if err != nil {
				return errors.Errorf("collecting files: %w", err)
			}

			plan, err := rename.BuildPlan(candidates, rules, time.Now())
			if err != nil {
				ro.Printer.Error(err)
				return errors.Errorf("planning renames: %w", err)
			}

			// Dry run stays in force unless --apply is given; an explicit
			// --dry-run always wins over --apply.
			mode := rename.DryRun
			if apply && !cmd.Flags().Changed("dry-run") {
				mode = rename.Apply
			} else if cmd.Flags().Changed("dry-run") && !dryRun {
				mode = rename.Apply
			}

			ro.Printer.Banner(root, mode, len(plan.Entries))
			if mode == rename.DryRun {
				if err := ro.Printer.PlanTable(plan); err != nil {
					return errors.Errorf("rendering plan: %w", err)
				}
			}

			results := rename.Execute(ctx, plan, mode)
			ro.Printer.Results(results, mode)

			if rename.Failed(results) {
				return errors.New("some files could not be renamed")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "add prefix to file names")
	cmd.Flags().StringVar(&suffix, "suffix", "", "add suffix to file names (before the extension)")
	cmd.Flags().StringVar(&replaceFrom, "replace-from", "", "text to replace in file names")
	cmd.Flags().StringVar(&replaceTo, "replace-to", "", "replacement text (used with --replace-from)")
	cmd.Flags().BoolVar(&sanitize, "sanitize", false, "strip unsafe characters and replace spaces with underscores")
	cmd.Flags().BoolVar(&number, "number", false, "add sequential numbers in traversal order")
	cmd.Flags().IntVar(&numberStart, "number-start", 1, "first sequence number")
	cmd.Flags().IntVar(&numberWidth, "number-width", 3, "zero-padding width for sequence numbers")
	cmd.Flags().BoolVar(&date, "date", false, "add a date stamp (YYYYMMDD)")
	cmd.Flags().StringVar(&datePosition, "date-position", string(rename.DateSuffix), "date stamp position: prefix or suffix")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "process subdirectories recursively")
	cmd.Flags().StringSliceVar(&ignore, "ignore", nil, "glob patterns for files to skip")
	cmd.Flags().BoolVar(&dryRun, "dry-run", true, "only show what would be renamed")
	cmd.Flags().BoolVar(&apply, "apply", false, "actually rename files")

	return cmd
}

// pickInt resolves a numeric flag against the config default: an explicit
// flag wins, then the config value, then the fallback.
func pickInt(cmd *cobra.Command, flag string, flagValue, configValue, fallback int) int {
	if cmd.Flags().Changed(flag) {
		return flagValue
	}
	if configValue != 0 {
		return configValue
	}
	if flagValue != 0 {
		return flagValue
	}
	return fallback
}
