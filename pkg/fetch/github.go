package fetch

import (
	"context"
	"fmt"
	"os"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/oauth2"
)

// githubColumns is the export order for repository records.
var githubColumns = []string{"name", "description", "language", "stars", "forks", "url", "updated"}

// 🏭 NewGithubClient creates a GitHub API client. A GITHUB_TOKEN in the
// environment raises the rate limit; without one the client is anonymous,
// which is enough for public repository listings.
func NewGithubClient(ctx context.Context) *github.Client {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return github.NewClient(nil)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return github.NewClient(oauth2.NewClient(ctx, ts))
}

// 📦 GithubRepos lists up to max public repositories of user, most recently
// updated first.
func GithubRepos(ctx context.Context, client *github.Client, user string, max int) (*Dataset, error) {
	logger := zerolog.Ctx(ctx)

	if user == "" {
		return nil, errors.New("github user is required")
	}
	if max <= 0 {
		max = 10
	}

	repos, _, err := client.Repositories.ListByUser(ctx, user, &github.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: max},
	})
	if err != nil {
		return nil, errors.Errorf("listing repositories for %s: %w", user, err)
	}

	logger.Debug().Str("user", user).Int("repos", len(repos)).Msg("fetched repositories")

	ds := NewDataset(githubColumns...)
	for _, repo := range repos {
		description := repo.GetDescription()
		if description == "" {
			description = "No description"
		}
		language := repo.GetLanguage()
		if language == "" {
			language = "Unknown"
		}

		ds.Append(map[string]string{
			"name":        repo.GetName(),
			"description": description,
			"language":    language,
			"stars":       fmt.Sprintf("%d", repo.GetStargazersCount()),
			"forks":       fmt.Sprintf("%d", repo.GetForksCount()),
			"url":         repo.GetHTMLURL(),
			"updated":     repo.GetUpdatedAt().Format("2006-01-02T15:04:05Z"),
		})
	}

	return ds, nil
}
