package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/scriptkit/scriptkit/cmd/scriptkit/opts"
	"github.com/scriptkit/scriptkit/pkg/fetch"
)

// NewFetchCmd creates a new fetch command with one subcommand per API
func NewFetchCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		exportFormat string
		outputPath   string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch records from public APIs and export them",
	}

	cmd.PersistentFlags().StringVar(&exportFormat, "export", "", "export format: json or csv")
	cmd.PersistentFlags().StringVar(&outputPath, "output", "", "export file path")

	// deliver prints or exports the dataset depending on the export flags.
	deliver := func(cmd *cobra.Command, ds *fetch.Dataset) error {
		if exportFormat == "" {
			return printDataset(cmd, ds)
		}

		path := outputPath
		if path == "" {
			path = "export." + exportFormat
		}
		if err := fetch.Export(path, fetch.Format(exportFormat), ds); err != nil {
			return errors.Errorf("exporting data: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %d record(s) to %s\n", len(ds.Rows), path)
		return nil
	}

	githubCmd := &cobra.Command{
		Use:   "github",
		Short: "List a user's public repositories",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			defaults := ro.FetchDefaults()

			user, err := cmd.Flags().GetString("username")
			if err != nil {
				return err
			}
			if user == "" {
				user = defaults.GithubUser
			}
			max, err := cmd.Flags().GetInt("max-repos")
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("max-repos") && defaults.MaxRepos > 0 {
				max = defaults.MaxRepos
			}

			client := fetch.NewGithubClient(ctx)
			ds, err := fetch.GithubRepos(ctx, client, user, max)
			if err != nil {
				return errors.Errorf("fetching repositories: %w", err)
			}
			return deliver(cmd, ds)
		},
	}
	githubCmd.Flags().String("username", "", "GitHub username")
	githubCmd.Flags().Int("max-repos", 10, "maximum repositories to fetch")

	weatherCmd := &cobra.Command{
		Use:   "weather",
		Short: "Fetch current weather for a city",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			defaults := ro.FetchDefaults()

			city, err := cmd.Flags().GetString("city")
			if err != nil {
				return err
			}
			if city == "" {
				city = defaults.WeatherCity
			}
			apiKey, err := cmd.Flags().GetString("api-key")
			if err != nil {
				return err
			}
			if apiKey == "" {
				apiKey = defaults.WeatherAPIKey
			}
			if apiKey == "" {
				apiKey = os.Getenv("OPENWEATHER_API_KEY")
			}

			client := &fetch.WeatherClient{APIKey: apiKey}
			ds, err := client.Current(ctx, city, time.Now())
			if err != nil {
				return errors.Errorf("fetching weather: %w", err)
			}
			return deliver(cmd, ds)
		},
	}
	weatherCmd.Flags().String("city", "", "city name")
	weatherCmd.Flags().String("api-key", "", "OpenWeatherMap API key (falls back to OPENWEATHER_API_KEY)")

	cryptoCmd := &cobra.Command{
		Use:   "crypto [COIN...]",
		Short: "Fetch cryptocurrency prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			defaults := ro.FetchDefaults()

			coins := args
			if len(coins) == 0 {
				coins = defaults.Coins
			}
			if len(coins) == 0 {
				coins = []string{"bitcoin", "ethereum", "cardano"}
			}

			client := &fetch.CryptoClient{}
			ds, err := client.Prices(ctx, coins)
			if err != nil {
				return errors.Errorf("fetching prices: %w", err)
			}
			return deliver(cmd, ds)
		},
	}

	cmd.AddCommand(githubCmd, weatherCmd, cryptoCmd)
	return cmd
}

// printDataset renders the dataset as a table on stdout.
func printDataset(cmd *cobra.Command, ds *fetch.Dataset) error {
	data := pterm.TableData{ds.Columns}
	for _, row := range ds.Rows {
		cells := make([]string, len(ds.Columns))
		for i, column := range ds.Columns {
			cells[i] = row[column]
		}
		data = append(data, cells)
	}

	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Errorf("rendering table: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}
