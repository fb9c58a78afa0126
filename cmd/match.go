package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/studentos/internal/catalog"
	"github.com/spigell/studentos/internal/explain"
	"github.com/spigell/studentos/internal/filtering"
	"github.com/spigell/studentos/internal/matching"
	"github.com/spigell/studentos/internal/profile"
	"github.com/spigell/studentos/internal/selection"
)

const (
	PromptExit              = "Exit"
	PromptDetails           = "Show job details"
	PromptDismiss           = "Dismiss this job"
	PromptReportByCompanies = "Report by companies"
	PromptJobsToFile        = "Dump evaluated jobs to file"
)

var errExit = errors.New("exit requested")

var matchPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptDetails, PromptDismiss, PromptReportByCompanies, PromptJobsToFile, PromptExit},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Show the single best job for your profile right now",
	Run: func(cmd *cobra.Command, _ []string) {
		runMatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().Int("hour", -1, "rotation hour for medium matches (default is the current hour)")
	matchCmd.Flags().Bool("no-ai", false, "skip generated explanations and use offline text")
	matchCmd.Flags().BoolP("yes", "y", false, "do not ask what to do after showing the match")
}

func runMatch(cmd *cobra.Command) {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	s := newSession(ctx)
	defer s.Close()

	p := s.profiles.Get(ctx)
	if p.Incomplete() {
		s.logger.Info("exiting",
			zap.String("reason", "profile is not set up"),
			zap.String("hint", "run `studentos profile init`"))
		return
	}

	jobs := s.filteredCatalog(ctx)

	policy := selection.NewPolicy(s.lastShown, s.logger)
	var sel selection.Selection
	if hour, _ := cmd.Flags().GetInt("hour"); hour >= 0 {
		sel = policy.SelectAt(ctx, jobs.Items, p, hour)
	} else {
		sel = policy.Select(ctx, jobs.Items, p)
	}

	if sel.Selected == nil {
		printNoMatch(out, sel.TotalEvaluated)
		return
	}

	match := sel.Selected
	printMatch(out, match, viper.GetBool("debug"))

	offline, _ := cmd.Flags().GetBool("no-ai")
	adapter := s.newAdapter(ctx, offline)
	printPending(out, match, adapter.Online())
	hint := enrich(ctx, adapter, match, p, matching.EvaluateAll(jobs.Items, p))

	fmt.Fprintf(out, "Why this job: %s\n", match.Explanation)
	fmt.Fprintf(out, "Career direction: %s\n", hint)

	if yes, _ := cmd.Flags().GetBool("yes"); yes || !interactive() {
		return
	}

	for {
		_, action, err := matchPrompt.Run()
		if err != nil {
			s.logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleMatchAction(out, action, s, match, jobs); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			s.logger.Fatal("exiting", zap.Error(err))
		}
	}
}

// enrich fills in the explanation for match and returns the career hint.
// Both are generated concurrently; neither affects the selection.
func enrich(ctx context.Context, adapter *explain.Adapter, match *matching.MatchResult, p *profile.Profile, results []*matching.MatchResult) string {
	var (
		explanation explain.Explanation
		hint        string
	)

	pending := adapter.Start(ctx, match, p)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		explanation = pending.Wait(gctx)
		return nil
	})
	g.Go(func() error {
		hint = adapter.CareerHint(gctx, results)
		return nil
	})
	_ = g.Wait()

	adapter.Apply(match, explanation)
	return hint
}

func handleMatchAction(out io.Writer, action string, s *session, match *matching.MatchResult, jobs *catalog.Jobs) error {
	switch action {
	case PromptExit:
		return errExit
	case PromptDetails:
		pretty, _ := json.MarshalIndent(match, "", "  ")
		fmt.Fprintln(out, string(pretty))
		return nil
	case PromptDismiss:
		if err := filtering.Dismiss(s.config.DismissedFile, match.Job, time.Now()); err != nil {
			return fmt.Errorf("dismiss job: %w", err)
		}
		s.logger.Info("job dismissed, it will not be shown again",
			zap.String("job_id", match.Job.ID),
			zap.String("filename", s.config.DismissedFile))
		return errExit
	case PromptReportByCompanies:
		pretty, _ := json.MarshalIndent(jobs.ReportByCompany(), "", "  ")
		fmt.Fprintln(out, string(pretty))
		return nil
	case PromptJobsToFile:
		filename, err := jobs.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump jobs to file: %w", err)
		}
		s.logger.Info("dumping jobs to file", zap.String("filename", filename))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}
