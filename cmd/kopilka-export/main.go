// Command kopilka-export dumps the stored ledger as CSV, to stdout or to a
// file, without starting the server.
package main

import (
	"context"
	"flag"
	"io"
	"os"

	"kopilka/internal/cli"
	"kopilka/internal/export"
	"kopilka/internal/ledger"
	"kopilka/internal/log"
)

func main() {
	outPath := flag.String("o", "", "output file (default stdout)")
	flag.Parse()

	cli.LoadEnvFile()

	logger := cli.SetupLogger("info")
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg.LogLevel)

	store, closeStore := cli.OpenStore(logger, cfg)
	defer closeStore()

	var out io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			logger.Error("Failed to create output file", log.FieldError, err, "path", *outPath)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	ctx := context.Background()
	txs := ledger.New(store).List(ctx)
	if err := export.WriteCSV(out, txs); err != nil {
		logger.Error("Export failed", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Export complete", "transactions", len(txs), "path", *outPath)
}
