package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hire-matcher/internal/logger"
	"github.com/spigell/hire-matcher/internal/marketplace"
	"github.com/spigell/hire-matcher/internal/matching"
)

var errNothingToSelect = errors.New("nothing to select")

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Run a match query against the configured store and print JSON",
}

var matchJobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Recommend active jobs for a job seeker",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMatch(cmd, matchJobs)
	},
}

var matchCandidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "Rank job seekers for a job",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMatch(cmd, matchCandidates)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.AddCommand(matchJobsCmd, matchCandidatesCmd)

	matchJobsCmd.Flags().StringP("seeker", "s", "", "job seeker user id (prompted when empty)")
	matchJobsCmd.Flags().IntP("limit", "n", 0, "how many active jobs to consider (default matching.jobs-limit)")

	matchCandidatesCmd.Flags().String("job", "", "job id (prompted when empty)")
	matchCandidatesCmd.Flags().String("owner", "", "startup user id posting the job (defaults to the job poster)")
}

// matchSession is what a match subcommand needs besides its flags.
type matchSession struct {
	ctx    context.Context
	cmd    *cobra.Command
	config *Config
	store  matching.Store
	svc    *matching.Service
	log    *zap.Logger
}

func runMatch(cmd *cobra.Command, run func(*matchSession) (any, error)) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		stdlog.Fatalf("creating a logger: %s", err)
	}
	defer log.Sync()

	config, err := getConfig()
	if err != nil {
		return fmt.Errorf("getting a config: %w", err)
	}

	st, closeStore, err := openStore(ctx, config, log)
	if err != nil {
		return err
	}
	defer closeStore(context.Background())

	narrator, closeNarrator, err := newNarrator(ctx, config, log)
	if err != nil {
		return err
	}
	defer closeNarrator(context.Background())

	session := &matchSession{
		ctx:    ctx,
		cmd:    cmd,
		config: config,
		store:  st,
		svc:    matching.New(st, narrator, config.Matching, logger.Named(log, "matching"), nil),
		log:    log,
	}

	result, err := run(session)
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), result)
}

func matchJobs(s *matchSession) (any, error) {
	seekerID, _ := s.cmd.Flags().GetString("seeker")
	limit, _ := s.cmd.Flags().GetInt("limit")

	if seekerID == "" {
		seekers, err := s.store.UsersByRole(s.ctx, marketplace.RoleJobSeeker, s.config.Matching.CandidatePoolLimit)
		if err != nil {
			return nil, fmt.Errorf("listing job seekers: %w", err)
		}

		labels := make([]string, 0, len(seekers))
		for _, seeker := range seekers {
			labels = append(labels, fmt.Sprintf("%s (%s)", orUnknown(seeker.FullName), seeker.ID))
		}

		idx, err := choose("Job seeker", labels)
		if err != nil {
			return nil, err
		}
		seekerID = seekers[idx].ID
	}

	s.log.Info("recommending jobs", logger.SeekerFields(seekerID)...)
	return s.svc.RecommendJobs(s.ctx, seekerID, limit)
}

func matchCandidates(s *matchSession) (any, error) {
	jobID, _ := s.cmd.Flags().GetString("job")
	ownerID, _ := s.cmd.Flags().GetString("owner")

	if jobID == "" {
		jobs, err := s.store.ActiveJobs(s.ctx, 0)
		if err != nil {
			return nil, fmt.Errorf("listing jobs: %w", err)
		}

		labels := make([]string, 0, len(jobs))
		for _, job := range jobs {
			labels = append(labels, fmt.Sprintf("%s at %s (%s)", job.Title, orUnknown(job.Company), job.ID))
		}

		idx, err := choose("Job", labels)
		if err != nil {
			return nil, err
		}
		jobID = jobs[idx].ID
	}

	if ownerID == "" {
		job, err := s.store.Job(s.ctx, jobID)
		if err != nil {
			return nil, fmt.Errorf("loading job %s: %w", jobID, err)
		}
		ownerID = job.PostedBy
	}

	s.log.Info("ranking candidates", logger.JobFields(jobID, ownerID)...)
	return s.svc.RankCandidates(s.ctx, ownerID, jobID)
}

func choose(label string, items []string) (int, error) {
	if len(items) == 0 {
		return 0, fmt.Errorf("%s: %w", strings.ToLower(label), errNothingToSelect)
	}

	prompt := promptui.Select{
		Label: label,
		Items: items,
		Size:  min(len(items), 15),
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return 0, fmt.Errorf("selecting %s: %w", strings.ToLower(label), err)
	}
	return idx, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func orUnknown(v string) string {
	if strings.TrimSpace(v) == "" {
		return "Unknown"
	}
	return v
}
