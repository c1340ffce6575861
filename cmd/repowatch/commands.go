package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/repowatch/repowatch/internal/config"
	"github.com/repowatch/repowatch/internal/domain"
	"github.com/repowatch/repowatch/internal/gitclient"
	"github.com/repowatch/repowatch/internal/hosted"
	"github.com/repowatch/repowatch/internal/manifest"
	"github.com/repowatch/repowatch/internal/notify"
	"github.com/repowatch/repowatch/internal/report"
	"github.com/repowatch/repowatch/internal/runner"
	"github.com/repowatch/repowatch/internal/runstore"
	"github.com/repowatch/repowatch/internal/schedule"
	"github.com/repowatch/repowatch/internal/watcher"
	"github.com/repowatch/repowatch/web/api"
)

var (
	checkBaseDir string
	checksFile   string
	historyLimit int
)

func init() {
	// check command
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Run all checks once and print the report",
		RunE:  runCheck,
	}
	checkCmd.Flags().StringVarP(&checkBaseDir, "base-dir", "b", "", "base directory for clone workspaces")
	checkCmd.Flags().StringVar(&checksFile, "checks", "", "check manifest path")
	rootCmd.AddCommand(checkCmd)

	// report command
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Run all checks, persist the run and deliver the report",
		RunE:  runReport,
	}
	reportCmd.Flags().StringVarP(&checkBaseDir, "base-dir", "b", "", "base directory for clone workspaces")
	reportCmd.Flags().StringVar(&checksFile, "checks", "", "check manifest path")
	rootCmd.AddCommand(reportCmd)

	// history command
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		RunE:  runHistory,
	}
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of runs to show")
	rootCmd.AddCommand(historyCmd)

	// daemon command
	daemonCmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run scheduled checks with the status server",
		RunE:  runDaemon,
	}
	rootCmd.AddCommand(daemonCmd)
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if checkBaseDir != "" {
		cfg.General.BaseDir = config.ExpandPath(checkBaseDir)
	}
	if checksFile != "" {
		cfg.General.ChecksFile = config.ExpandPath(checksFile)
	}
	return cfg, nil
}

// runCycle executes one full reporting cycle against the real collaborators.
func runCycle(cfg *config.Config) (*runner.Outcome, error) {
	if err := os.MkdirAll(cfg.General.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("creating base dir: %w", err)
	}

	m, err := manifest.Load(cfg.General.ChecksFile)
	if err != nil {
		return nil, err
	}

	r := runner.New(gitclient.New(), hosted.NewGitHub(), cfg.General.BaseDir, verbose)
	return r.Run(m), nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out, err := runCycle(cfg)
	if err != nil {
		return err
	}

	fmt.Println(out.Report)

	if out.ExitCode != 0 {
		os.Exit(out.ExitCode)
	}
	return nil
}

func buildReport(cfg *config.Config, out *runner.Outcome) notify.Report {
	r := notify.Report{
		Subject: report.Subject(cfg.Email.SubjectPrefix, out.StartedAt),
		Body:    out.Report,
	}
	r.TallyFrom(out.Tally())
	return r
}

func persistRun(store *runstore.Store, out *runner.Outcome) error {
	tally := out.Tally()

	run := &runstore.Run{
		ID:         out.ID,
		StartedAt:  out.StartedAt,
		FinishedAt: out.FinishedAt,
		Passed:     tally[domain.VerdictPass],
		Failed:     tally[domain.VerdictFail],
		Errors:     tally[domain.VerdictError],
		Warnings:   tally[domain.VerdictWarning],
		Report:     out.Report,
	}

	var results []runstore.TaskResult
	for _, t := range out.SyncTasks {
		results = append(results, runstore.TaskResult{
			RunID: out.ID, Name: t.Name(), Kind: "sync",
			Verdict: t.Verdict(), Output: t.Result(),
		})
	}
	for _, t := range out.StatusTasks {
		results = append(results, runstore.TaskResult{
			RunID: out.ID, Name: t.Name(), Kind: "status",
			Verdict: t.Verdict(), Output: t.Result(),
		})
	}

	return store.SaveRun(run, results)
}

func buildNotifier(cfg *config.Config) notify.Notifier {
	notifiers := []notify.Notifier{notify.NewEmailNotifier(cfg.Email)}
	if cfg.Notifications.SlackWebhook != "" {
		notifiers = append(notifiers, notify.NewSlackNotifier(cfg.Notifications.SlackWebhook))
	}
	return notify.NewMultiNotifier(notifiers...)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := runstore.New(cfg.General.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	out, err := runCycle(cfg)
	if err != nil {
		return err
	}

	if err := persistRun(store, out); err != nil {
		return fmt.Errorf("persisting run: %w", err)
	}

	if err := buildNotifier(cfg).Send(buildReport(cfg, out)); err != nil {
		log.Printf("delivering report: %v", err)
	}

	if out.ExitCode != 0 {
		os.Exit(out.ExitCode)
	}
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := runstore.New(cfg.General.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(historyLimit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tDURATION\tPASS\tFAIL\tERROR\tWARN\tID")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			run.StartedAt.Format(time.RFC3339),
			run.FinishedAt.Sub(run.StartedAt).Round(time.Second),
			run.Passed, run.Failed, run.Errors, run.Warnings, run.ID)
	}
	w.Flush()

	return nil
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := runstore.New(cfg.General.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	sched, err := schedule.New(cfg.Schedule.Cron)
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", cfg.Schedule.Cron, err)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	server := api.NewServer(store, addr)

	cycle := func() error {
		out, err := runCycle(cfg)
		if err != nil {
			return err
		}
		if err := persistRun(store, out); err != nil {
			return fmt.Errorf("persisting run: %w", err)
		}
		rep := buildReport(cfg, out)
		if err := buildNotifier(cfg).Send(rep); err != nil {
			log.Printf("delivering report: %v", err)
		}
		server.Broadcast(api.Event{Type: "run_completed", Data: map[string]interface{}{
			"id":       out.ID,
			"passed":   rep.Passed,
			"failed":   rep.Failed,
			"errors":   rep.Errors,
			"warnings": rep.Warnings,
		}})
		return nil
	}

	// Reload is implicit: runCycle re-reads the manifest every cycle. The
	// watcher just surfaces edits in the log right away.
	mw, err := watcher.New(cfg.General.ChecksFile, func(path string) {
		log.Printf("check manifest %s changed, next cycle will pick it up", path)
	})
	if err != nil {
		return err
	}
	defer mw.Close()

	g, ctx := errgroup.WithContext(context.Background())
	mw.Start(ctx)

	g.Go(server.Start)
	g.Go(func() error {
		log.Printf("scheduler started, next run at %s", sched.NextRun().Format(time.RFC3339))
		sched.Start(ctx, cycle)
		return nil
	})

	return g.Wait()
}
