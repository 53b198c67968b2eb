package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rennsax/beancount-importer-sjtu-ecard/internal/common"
	"github.com/rennsax/beancount-importer-sjtu-ecard/internal/importer"
	"github.com/rennsax/beancount-importer-sjtu-ecard/internal/ledger"
	"github.com/rennsax/beancount-importer-sjtu-ecard/internal/rules"
)

func init() {
	extractCmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract beancount transactions from an ecard bill",
		Long: `Extract beancount transactions from an exported ecard bill.

Examples:
  # Print extracted transactions to stdout
  ecard extract ~/Downloads/bill-2025-03.html

  # Write them to a file instead
  ecard extract ~/Downloads/bill-2025-03.html -o march.beancount`,
		Args: cobra.ExactArgs(1),
		RunE: runExtract,
	}

	extractCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	info, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", inputPath, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s: %w", inputPath, common.ErrNotRegularFile)
	}

	cfg := importer.DefaultConfig()
	if account := viper.GetString("importer.card_account"); account != "" {
		cfg.CardAccount = account
	}
	if currency := viper.GetString("importer.currency"); currency != "" {
		cfg.Currency = currency
	}

	imp := importer.New(cfg, rules.NewDefaultClassifier())
	if !imp.Identify(inputPath) {
		return fmt.Errorf("%s does not look like an ecard bill (expected .html)", inputPath)
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", inputPath, err)
	}
	defer func() { _ = f.Close() }()

	transactions, err := imp.Extract(cmd.Context(), f, inputPath, nil)
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", inputPath, err)
	}

	out := os.Stdout
	if outputPath, _ := cmd.Flags().GetString("output"); outputPath != "" {
		outFile, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", outputPath, err)
		}
		defer func() { _ = outFile.Close() }()
		out = outFile
	}

	if err := ledger.NewWriter(out).Write(transactions); err != nil {
		return err
	}

	slog.Info("Extraction complete",
		"source", filepath.Base(inputPath),
		"transactions", len(transactions))

	return nil
}
