package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/perfhelf/FXview/internal/engineconfig"
	"github.com/perfhelf/FXview/pkg/config"
)

// symbolsCmd represents the symbols command
var symbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "심볼 목록 조회",
	RunE:  listSymbols,
}

// configCmd groups engine configuration commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "엔진 설정 관리",
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "엔진 설정 검증 및 해시 출력",
	RunE:  checkConfig,
}

var configPrintDefault bool

func init() {
	rootCmd.AddCommand(symbolsCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configCheckCmd)

	configCheckCmd.Flags().BoolVar(&configPrintDefault, "print-default", false, "print the embedded default YAML")
}

// loadEngineConfig resolves --engine-config, then ENGINE_CONFIG, then the embedded default
func loadEngineConfig() (*engineconfig.Config, error) {
	path := engineConfigPath
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		path = cfg.Engine.ConfigPath
	}
	return engineconfig.LoadOrDefault(path)
}

func listSymbols(cmd *cobra.Command, args []string) error {
	cfg, err := loadEngineConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	widths := []int{8, 10, 5, 60}
	PrintTableHeader(out, []string{"SYMBOL", "CLASS", "MIN", "FORMULA"}, widths)
	for _, s := range cfg.Symbols {
		PrintTableRow(out, []string{
			s.Name,
			string(s.Class),
			strconv.Itoa(cfg.MinBars.For(s.Class)),
			truncate(s.Formula, widths[3]),
		}, widths)
	}
	return nil
}

func checkConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if configPrintDefault {
		_, err := out.Write(engineconfig.DefaultYAML())
		return err
	}

	cfg, err := loadEngineConfig()
	if err != nil {
		return err
	}
	hash, err := engineconfig.Hash(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "✅ %s v%s: %d symbols, %d components\n",
		cfg.Meta.ConfigID, cfg.Meta.Version, len(cfg.Symbols), len(cfg.Components))
	fmt.Fprintf(out, "   hash: %s\n", hash)
	return nil
}
