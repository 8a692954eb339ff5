package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/scriptkit/scriptkit/cmd/scriptkit/opts"
	"github.com/scriptkit/scriptkit/pkg/fetch"
	"github.com/scriptkit/scriptkit/pkg/report"
)

// NewReportCmd creates a new report command
func NewReportCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		source string
		title  string
		output string
		send   bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render fetched records as an HTML report and mail or save it",
		Long: `Report fetches records from the configured source, renders them as a
standalone HTML document and either mails it (when SMTP is configured and
--send is given) or writes it to a file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			reportDefaults := ro.ReportDefaults()

			ds, err := fetchSource(cmd, ro, source)
			if err != nil {
				return err
			}

			if title == "" {
				title = reportDefaults.Title
			}
			r := report.Report{
				Title:       title,
				GeneratedAt: time.Now(),
				Dataset:     ds,
			}

			if send {
				smtp := reportDefaults.SMTP
				if smtp == nil {
					return errors.New("--send requires report.smtp in the config file")
				}
				err := report.Send(ctx, report.SMTPSettings{
					Host:     smtp.Host,
					Port:     smtp.Port,
					Username: smtp.Username,
					Password: smtp.Password,
				}, report.Envelope{
					From: reportDefaults.From,
					To:   reportDefaults.To,
				}, r)
				if err != nil {
					return errors.Errorf("sending report: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "report sent to %v\n", reportDefaults.To)
				return nil
			}

			path := output
			if path == "" {
				path = reportDefaults.Output
			}
			if path == "" {
				path = "report.html"
			}
			if err := report.WriteFile(path, r); err != nil {
				return errors.Errorf("writing report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "github", "data source: github, weather or crypto")
	cmd.Flags().StringVar(&title, "title", "", "report title")
	cmd.Flags().StringVar(&output, "output", "", "output file path (default report.html)")
	cmd.Flags().BoolVar(&send, "send", false, "send the report via the configured SMTP endpoint")

	return cmd
}

// fetchSource pulls the dataset for the chosen report source, reusing the
// fetch defaults from the config file.
func fetchSource(cmd *cobra.Command, ro *opts.RootOpts, source string) (*fetch.Dataset, error) {
	ctx := cmd.Context()
	defaults := ro.FetchDefaults()

	switch source {
	case "github":
		client := fetch.NewGithubClient(ctx)
		ds, err := fetch.GithubRepos(ctx, client, defaults.GithubUser, defaults.MaxRepos)
		if err != nil {
			return nil, errors.Errorf("fetching repositories: %w", err)
		}
		return ds, nil
	case "weather":
		client := &fetch.WeatherClient{APIKey: defaults.WeatherAPIKey}
		ds, err := client.Current(ctx, defaults.WeatherCity, time.Now())
		if err != nil {
			return nil, errors.Errorf("fetching weather: %w", err)
		}
		return ds, nil
	case "crypto":
		coins := defaults.Coins
		if len(coins) == 0 {
			coins = []string{"bitcoin", "ethereum", "cardano"}
		}
		client := &fetch.CryptoClient{}
		ds, err := client.Prices(ctx, coins)
		if err != nil {
			return nil, errors.Errorf("fetching prices: %w", err)
		}
		return ds, nil
	default:
		return nil, errors.Errorf("unknown report source %q", source)
	}
}
