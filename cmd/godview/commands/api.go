package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/perfhelf/FXview/internal/api"
	"github.com/perfhelf/FXview/internal/api/handlers"
	"github.com/perfhelf/FXview/internal/scheduler"
	"github.com/perfhelf/FXview/internal/store"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `스냅샷 조회 REST API 서버를 시작합니다.

DATABASE_URL이 없으면 메모리 저장소를 사용하며 --with-scheduler로
배치 결과를 같은 프로세스에서 채웁니다.

Endpoints:
  GET  /health                  - Health check
  GET  /api/snapshots           - 전체 스냅샷 (symbol -> snapshot)
  GET  /api/snapshots/{symbol}  - 단일 심볼 스냅샷
  GET  /api/symbols             - 설정된 심볼 목록
  GET  /api/jobs                - 스케줄러 작업 통계

Example:
  go run ./cmd/godview api
  go run ./cmd/godview api --port 8080 --with-scheduler`,
	RunE: runAPIServer,
}

var (
	apiPort          string
	apiWithScheduler bool
)

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (default: PORT)")
	apiCmd.Flags().BoolVar(&apiWithScheduler, "with-scheduler", false, "run the snapshot scheduler in-process")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), "=== GodView API Server ===")

	a, err := newApp(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.close()

	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	// Without Postgres the in-process batch writes to memory
	memory := store.NewMemoryStore()
	reader := a.reader(memory)

	var stats handlers.StatsProvider
	if apiWithScheduler {
		var sched *scheduler.Scheduler
		if a.repo != nil {
			sched = newScheduler(a)
		} else {
			sched = newMemoryScheduler(a, memory)
		}
		sched.Start()
		defer sched.Stop()
		stats = sched
	}

	var health handlers.HealthChecker
	if a.db != nil {
		health = a.db
	}

	router := api.NewRouter(api.Handlers{
		Snapshots: handlers.NewSnapshotHandler(reader, a.log),
		Symbols:   handlers.NewSymbolHandler(a.engineCfg),
		System:    handlers.NewSystemHandler(health, stats),
	}, a.log)
	server := api.New(a.cfg, a.log, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "\n✅ Server running on http://localhost:%s\n", a.cfg.Port)
	fmt.Fprintln(cmd.OutOrStdout(), "\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	a.log.Info("Server stopped")
	return nil
}
