package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Cortexa-LLC/mcp/src/invoicegen/config"
	"github.com/Cortexa-LLC/mcp/src/invoicegen/invoice"
)

// Server identity constants.
const (
	serverName    = "invoicegen"
	serverVersion = "0.1.0"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "invoicegen [spreadsheets...]",
		Short: "Render invoice spreadsheets as PDF documents",
		Long: `invoicegen reads invoice spreadsheets named "{number}-{date}.xlsx" and writes
one PDF per spreadsheet, named "{number}-{date}.pdf", into the output directory.

Without arguments every file matching the input glob (default Excel_Files/*.xlsx)
under the base directory is processed. A failing spreadsheet is reported and
skipped; the exit status is nonzero when any spreadsheet failed.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			used, err := config.ReadInConfig(v, cfgFile)
			if err != nil {
				return fmt.Errorf("read config: %w", err)
			}
			if used != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", used)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if noHeader, _ := cmd.Flags().GetBool("no-header"); noHeader {
				v.Set(config.KeyHeaderRow, false)
			}
			return runBatch(cmd, v, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./invoicegen.yaml)")
	pf.String("base-dir", ".", "directory that relative paths are resolved against")
	pf.String("output-dir", config.DefaultOutputDir, "existing directory receiving the PDFs")
	pf.Bool("verbose", false, "enable debug logging")
	_ = v.BindPFlag(config.KeyBaseDir, pf.Lookup("base-dir"))
	_ = v.BindPFlag(config.KeyOutputDir, pf.Lookup("output-dir"))
	_ = v.BindPFlag(config.KeyVerbose, pf.Lookup("verbose"))

	cmd.Flags().Int("workers", 1, "number of spreadsheets processed concurrently")
	cmd.Flags().Bool("no-header", false, "omit the column title row from the table")
	_ = v.BindPFlag(config.KeyWorkers, cmd.Flags().Lookup("workers"))

	cmd.AddCommand(newInspectCmd(v), newServeCmd(v))
	return cmd
}

func newInspectCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <pdf>...",
		Short: "Read rendered invoices back and print their totals",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, log, err := newGenerator(v)
			if err != nil {
				return err
			}
			defer syncLogger(log)

			out := cmd.OutOrStdout()
			failed := 0
			for _, p := range args {
				sum, err := gen.Inspect(commandContext(cmd), p)
				if err != nil {
					failed++
					fmt.Fprintf(out, "failed:  %s (%s: %v)\n", filepath.Base(p), invoice.Kind(err), err)
					continue
				}
				fmt.Fprintf(out, "%s  nr. %s  date %s  total due $%s\n",
					filepath.Base(p), sum.Number, sum.Date, sum.TotalDue)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d invoices failed inspection", failed, len(args))
			}
			return nil
		},
	}
}

func runBatch(cmd *cobra.Command, v *viper.Viper, args []string) error {
	gen, log, err := newGenerator(v)
	if err != nil {
		return err
	}
	defer syncLogger(log)

	paths := args
	if len(paths) == 0 {
		if paths, err = gen.Discover(); err != nil {
			return err
		}
		if len(paths) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no spreadsheets found")
			return nil
		}
	}

	res := gen.Batch(commandContext(cmd), paths)
	report(cmd.OutOrStdout(), res)
	if res.HasFailures() {
		return fmt.Errorf("%d of %d invoices failed", res.Failed, res.Total())
	}
	return nil
}

// report prints one status line per spreadsheet and a batch summary.
func report(w io.Writer, res invoice.BatchResult) {
	for _, r := range res.Results {
		name := filepath.Base(r.Source)
		if r.Err != nil {
			fmt.Fprintf(w, "failed:    %s (%s: %v)\n", name, invoice.Kind(r.Err), r.Err)
			continue
		}
		fmt.Fprintf(w, "generated: %s -> %s\n", name, r.Output)
	}
	fmt.Fprintf(w, "\nBatch summary: %d generated, %d failed (total: %d)\n",
		res.Generated, res.Failed, res.Total())
}

// newGenerator builds the generator and the logger it reports through.
// Callers sync the logger when done.
func newGenerator(v *viper.Viper) (*invoice.Generator, *zap.Logger, error) {
	cfg := config.Load(v)
	log, err := newLogger(cfg.Verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	return invoice.NewGenerator(cfg, log), log, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
