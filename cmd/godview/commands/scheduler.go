package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/perfhelf/FXview/internal/contracts"
	"github.com/perfhelf/FXview/internal/scheduler"
	"github.com/perfhelf/FXview/internal/scheduler/jobs"
	"github.com/perfhelf/FXview/internal/store"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 관리",
	Long: `스케줄러를 시작하거나 작업을 관리합니다.

Subcommands:
  start   - 스케줄러 시작
  list    - 등록된 작업 목록
  run     - 특정 작업 즉시 실행 (동기)
  status  - 작업 실행 상태 조회

Example:
  go run ./cmd/godview scheduler start
  go run ./cmd/godview scheduler run godview_snapshot`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		Long: `스케줄러를 시작하고 등록된 모든 작업을 스케줄합니다.

등록되는 작업:
- godview_snapshot: SNAPSHOT_SCHEDULE (기본 평일 22:30)
- snapshot_cache_refresh: 6시간마다 (Redis 활성 시 캐시 재적재)

스케줄러는 Ctrl+C로 종료할 수 있습니다.`,
		RunE: runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "등록된 작업 목록",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "특정 작업 즉시 실행",
		Args:  cobra.ExactArgs(1),
		RunE:  runJob,
	}

	schedulerStatusCmd = &cobra.Command{
		Use:   "status",
		Short: "작업 실행 상태 조회",
		RunE:  showStatus,
	}
)

const cacheRefreshSchedule = "0 0 */6 * * *"

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
	schedulerCmd.AddCommand(schedulerStatusCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), "=== GodView Scheduler ===")

	a, sched, err := initScheduler(cmd.Context())
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer a.close()

	sched.Start()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\n✅ Scheduler started successfully")
	fmt.Fprintln(out, "\nRegistered jobs:")
	for _, name := range sched.Jobs() {
		fmt.Fprintf(out, "  - %s\n", name)
	}
	fmt.Fprintln(out, "\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Fprintln(out, "\nShutting down scheduler...")
	sched.Stop()
	fmt.Fprintln(out, "Scheduler stopped")

	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	a, sched, err := initScheduler(cmd.Context())
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer a.close()

	out := cmd.OutOrStdout()
	widths := []int{24, 20, 19}
	PrintTableHeader(out, []string{"JOB", "SCHEDULE", "NEXT RUN"}, widths)
	stats := sched.Stats()
	for _, name := range sched.Jobs() {
		st := stats[name]
		PrintTableRow(out, []string{name, st.Schedule, formatTime(st.NextRun)}, widths)
	}
	return nil
}

func runJob(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	a, sched, err := initScheduler(cmd.Context())
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer a.close()

	fmt.Fprintf(cmd.OutOrStdout(), "Running job: %s\n", jobName)

	result, err := sched.RunNow(cmd.Context(), jobName)
	if err != nil {
		return fmt.Errorf("run job: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("job %s failed after %d attempts: %s", jobName, result.Attempts, result.Error)
	}

	PrintJobCompletion(cmd.OutOrStdout(), jobName, result.Duration.Seconds())
	return nil
}

func showStatus(cmd *cobra.Command, args []string) error {
	a, sched, err := initScheduler(cmd.Context())
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer a.close()

	out := cmd.OutOrStdout()
	stats := sched.Stats()

	fmt.Fprintln(out, "Job Statistics:")
	fmt.Fprintln(out)

	for _, name := range sortedKeys(stats) {
		stat := stats[name]
		fmt.Fprintf(out, "📊 %s\n", name)
		fmt.Fprintf(out, "   Schedule: %s\n", stat.Schedule)
		fmt.Fprintf(out, "   Total Runs: %d\n", stat.TotalRuns)
		fmt.Fprintf(out, "   Success: %d (%.1f%%)\n", stat.SuccessCount, stat.SuccessRate*100)
		fmt.Fprintf(out, "   Failures: %d\n", stat.FailureCount)
		fmt.Fprintf(out, "   Last Run: %s\n", formatTime(stat.LastRun))
		fmt.Fprintf(out, "   Next Run: %s\n", formatTime(stat.NextRun))
		fmt.Fprintln(out)
	}

	return nil
}

// initScheduler wires the snapshot and cache jobs. The caller closes the app.
func initScheduler(ctx context.Context) (*app, *scheduler.Scheduler, error) {
	a, err := newApp(ctx, true)
	if err != nil {
		return nil, nil, err
	}

	sched := newScheduler(a)
	return a, sched, nil
}

func newScheduler(a *app) *scheduler.Scheduler {
	return buildScheduler(a, a.sink(nil))
}

// newMemoryScheduler writes batches to memory as well as the regular sink
func newMemoryScheduler(a *app, memory *store.MemoryStore) *scheduler.Scheduler {
	return buildScheduler(a, store.MultiSink{memory, a.sink(nil)})
}

func buildScheduler(a *app, sink contracts.SnapshotSink) *scheduler.Scheduler {
	sched := scheduler.New(a.log)

	snapshotJob := jobs.NewSnapshotJob(a.collector, a.engine, sink, a.cfg.Engine.Schedule, nil, a.log)
	if err := sched.AddJob(snapshotJob); err != nil {
		a.log.WithError(err).Error("Failed to register snapshot job")
	}

	if a.repo != nil && a.cache.Enabled() {
		refresh := jobs.NewCacheRefreshJob(a.repo, a.cache, cacheRefreshSchedule, a.log)
		if err := sched.AddJob(refresh); err != nil {
			a.log.WithError(err).Error("Failed to register cache refresh job")
		}
	}

	return sched
}
