package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/CompassSecurity/commitleak/pkg/config"
	"github.com/CompassSecurity/commitleak/pkg/git"
	"github.com/CompassSecurity/commitleak/pkg/logging"
	"github.com/CompassSecurity/commitleak/pkg/report"
	"github.com/CompassSecurity/commitleak/pkg/scan"
	"github.com/CompassSecurity/commitleak/pkg/scanner/analyzer"
	"github.com/CompassSecurity/commitleak/pkg/scanner/rules"
	"github.com/CompassSecurity/commitleak/pkg/scanner/types"
	"github.com/CompassSecurity/commitleak/pkg/system"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type ScanOptions struct {
	Repo        string
	CommitCount int
	Out         string
	Debug       bool
	TruffleHog  bool
	Verify      bool
	Analyzer    string
	Rules       string
	MaxThreads  int
}

var scanOptions = ScanOptions{}

func NewScanCmd() *cobra.Command {
	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a repository's recent commits for secrets",
		Long: `Scan the last N commits of a git repository for secrets.

The repository is a local path or an http(s)/git URL; URLs are cloned into a
temporary directory that is removed when the scan finishes. History is walked
on the main branch, falling back to master. Every commit message and changed
file diff is matched against the built-in rule set; files without diff text
are scanned from their full blob content instead.`,
		Example: `
# Scan the last 5 commits of a local repository
commitleak scan --repo /path/to/repo

# Scan the last 20 commits of a remote repository and write a custom report
commitleak scan --repo https://github.com/org/repo --n 20 --out audit.json

# Add the TruffleHog detectors as a second signal, with verification
commitleak scan --repo /path/to/repo --trufflehog --verify

# Merge findings from an external contextual analyzer command
commitleak scan --repo /path/to/repo --analyzer "secret-judge --json"

# Append extended rules from a secrets-patterns-db style YAML file
commitleak scan --repo /path/to/repo --rules rules.yml
		`,
		Run: Scan,
	}

	scanCmd.Flags().StringVarP(&scanOptions.Repo, "repo", "r", "", "Repository path or URL")
	err := scanCmd.MarkFlagRequired("repo")
	if err != nil {
		log.Error().Err(err).Msg("Unable to require repo flag")
	}

	scanCmd.Flags().IntVarP(&scanOptions.CommitCount, "n", "n", 5, "Number of commits to scan")
	scanCmd.Flags().StringVarP(&scanOptions.Out, "out", "o", "report.json", "Report output file")
	scanCmd.Flags().BoolVarP(&scanOptions.Debug, "debug", "d", false, "Verbose diagnostic output")
	scanCmd.Flags().BoolVarP(&scanOptions.TruffleHog, "trufflehog", "", false, "Run the TruffleHog detectors as an additional signal")
	scanCmd.Flags().BoolVarP(&scanOptions.Verify, "verify", "", false, "Verify TruffleHog detector hits against their services")
	scanCmd.Flags().StringVarP(&scanOptions.Analyzer, "analyzer", "a", "", "External contextual analyzer command, receives text on stdin and prints JSON findings")
	scanCmd.Flags().StringVarP(&scanOptions.Rules, "rules", "", "", "Extended rules YAML file path or URL, appended to the built-in rules")
	scanCmd.Flags().IntVarP(&scanOptions.MaxThreads, "threads", "t", 4, "Max parallel commit scans")

	return scanCmd
}

func Scan(cmd *cobra.Command, args []string) {
	logging.SetLogLevel(scanOptions.Debug)

	if err := config.ValidateRepo(scanOptions.Repo); err != nil {
		log.Fatal().Err(err).Msg("Invalid repository")
	}
	if err := config.ValidateCommitCount(scanOptions.CommitCount); err != nil {
		log.Fatal().Err(err).Msg("Invalid commit count")
	}
	if err := config.ValidateThreadCount(scanOptions.MaxThreads); err != nil {
		log.Fatal().Err(err).Msg("Invalid thread count")
	}
	if err := config.ValidateOutputPath(scanOptions.Out); err != nil {
		log.Fatal().Err(err).Msg("Invalid output path")
	}

	ruleSet := rules.Default()
	if scanOptions.Rules != "" {
		patterns, err := rules.LoadPatterns(scanOptions.Rules)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed loading extended rules")
		}
		ruleSet = ruleSet.Extend(patterns)
	}
	log.Debug().Int("count", ruleSet.Len()).Msg("Loaded rules")

	repo, err := git.Open(scanOptions.Repo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed acquiring repository")
	}
	defer repo.Close()
	system.RegisterGracefulShutdownHandler(repo.Close)

	start := time.Now()

	commits, err := git.RecentCommits(repo, scanOptions.CommitCount)
	if errors.Is(err, git.ErrNoCommits) {
		// A walkable branch with zero commits still produces a report, which
		// keeps the scan composable in automation. A missing branch does not.
		log.Warn().Msg("No commits to analyze")
		writeReport(0, nil)
		return
	}
	if errors.Is(err, git.ErrNoBranch) {
		log.Fatal().Err(err).Msg("No scannable branch")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed walking history")
	}

	logging.RegisterStatusHook(func() *zerolog.Event {
		return log.Info().Int64("scanned", scan.CommitsScanned()).Int("total", len(commits))
	})
	go logging.ShortcutListeners(logging.GetStatusHook())

	findings := scan.Run(context.Background(), commits, scan.Options{
		RuleSet:    ruleSet,
		TruffleHog: scanOptions.TruffleHog,
		Verify:     scanOptions.Verify,
		Analyzer:   analyzer.New(scanOptions.Analyzer),
		MaxThreads: scanOptions.MaxThreads,
	})

	writeReport(len(commits), findings)
	log.Info().
		Int("findings", len(findings)).
		Int("commits", len(commits)).
		Str("report", scanOptions.Out).
		Str("duration", time.Since(start).Round(time.Millisecond).String()).
		Msg("Scan finished")
}

func writeReport(commitsScanned int, findings []types.Finding) {
	doc := report.New(commitsScanned, findings)
	if err := doc.Write(scanOptions.Out); err != nil {
		log.Fatal().Err(err).Msg("Failed writing report")
	}
}
