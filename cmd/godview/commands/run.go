package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "스냅샷 배치 1회 실행",
	Long: `시세를 수집하고 모든 심볼의 스냅샷을 계산합니다.

저장 위치:
- --dry-run 또는 DATABASE_URL 미설정: JSON listing (stdout 또는 --output)
- 그 외: Postgres godview_snapshot 테이블 (+ Redis 캐시)

Example:
  go run ./cmd/godview run --dry-run
  go run ./cmd/godview run --symbols AUD,EUR,XAU
  go run ./cmd/godview run --output godview.json`,
	RunE: runSnapshot,
}

var (
	runSymbols string
	runDryRun  bool
	runOutput  string
	runWorkers int
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runSymbols, "symbols", "", "comma separated symbols (default: all)")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "print the listing instead of writing to Postgres")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "write the listing to a file")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "concurrent symbols and fetches (default: ENGINE_WORKERS)")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	start := time.Now()

	a, err := newApp(ctx, !runDryRun && runOutput == "")
	if err != nil {
		return err
	}
	defer a.close()

	symbols := parseSymbols(runSymbols)
	for _, s := range symbols {
		if _, ok := a.engineCfg.Symbol(s); !ok {
			return fmt.Errorf("unknown symbol %q", s)
		}
	}

	// Listing goes to stdout, so progress goes to stderr
	out := cmd.ErrOrStderr()
	PrintJobHeader(out, JobMetadata{
		JobType:    "GodView Snapshot",
		Tag:        "Run",
		Timestamp:  start.Format("2006-01-02 15:04:05"),
		ConfigHash: a.engine.ConfigHash(),
		Symbols:    strings.Join(symbols, ","),
	})

	var listing io.Writer
	switch {
	case runOutput != "":
		f, err := os.Create(runOutput)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		listing = f
	case runDryRun || a.repo == nil:
		listing = cmd.OutOrStdout()
	}

	tickers := a.engine.Tickers(symbols)
	table, failures := a.collector.FetchAll(ctx, tickers)
	if len(failures) > 0 {
		a.log.Warnf("%d of %d tickers failed to fetch", len(failures), len(tickers))
	}
	if len(table) == 0 {
		return fmt.Errorf("no market data: %d of %d tickers failed", len(failures), len(tickers))
	}

	res, err := a.engine.Run(ctx, table, symbols)
	if err != nil {
		return err
	}
	if err := a.sink(listing).Save(ctx, res.Snapshots); err != nil {
		return fmt.Errorf("save snapshots: %w", err)
	}

	PrintRunSummary(out, res, failures)
	PrintJobCompletion(out, "Snapshot batch", elapsed(start))
	return nil
}
