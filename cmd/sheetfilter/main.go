// Package main provides the CLI entry point for sheetfilter.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ukaji3/sheetfilter-go/internal/config"
	"github.com/ukaji3/sheetfilter-go/internal/logging"
	"github.com/ukaji3/sheetfilter-go/internal/web"
	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter"
	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter/models"
	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter/output"
)

var (
	cfg config.Config

	logLevel string
	maxBytes int64
	pretty   bool
	asJSON   bool

	addr string

	sheetName string
	maxRows   int
	color     bool

	primary   string
	columns   string
	mode      string
	nullTest  string
	format    string
	filename  string
	outDir    string
	printRows bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheetfilter",
		Short: "Filter spreadsheet rows by null checks and export the result",
		Long: `sheetfilter loads an xlsx, xls or csv workbook from a path or URL,
shows a sheet as a table, keeps the rows whose primary column is set and
whose chosen columns pass a null / not-null test, and exports them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if cmd.Flags().Changed("log-level") {
				loaded.LogLevel = logLevel
			}
			if cmd.Flags().Changed("max-bytes") {
				loaded.MaxBytes = maxBytes
			}
			if cmd.Flags().Changed("addr") {
				loaded.Addr = addr
			}
			if err := loaded.Validate(); err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "INFO", "Log level: ERROR, WARN, INFO, DEBUG")
	rootCmd.PersistentFlags().Int64Var(&maxBytes, "max-bytes", sheetfilter.DefaultMaxBytes, "Maximum workbook size in bytes")

	rootCmd.AddCommand(newServeCmd(), newSheetsCmd(), newShowCmd(), newFilterCmd())
	return rootCmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [source]",
		Short: "Serve the filter page over HTTP",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runServe,
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	return cmd
}

func newSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets [source]",
		Short: "List the sheets of a workbook",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSheets,
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [source]",
		Short: "Print a sheet as a table",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShow,
	}
	cmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet to show (default: first sheet)")
	cmd.Flags().IntVar(&maxRows, "max-rows", 50, "Maximum rows to print (0 for all)")
	cmd.Flags().BoolVar(&color, "color", false, "Style header and NULL cells")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func newFilterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter [source]",
		Short: "Filter a sheet and export the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runFilter,
	}
	cmd.Flags().StringVarP(&primary, "primary", "p", "", "Primary column (must be non-empty)")
	cmd.Flags().StringVarP(&columns, "columns", "c", "", "Comma separated operation columns")
	cmd.Flags().StringVar(&mode, "mode", "and", "Combine mode: and, or")
	cmd.Flags().StringVar(&nullTest, "test", "not-null", "Null test: null, not-null")
	cmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet to filter (default: first sheet)")
	cmd.Flags().StringVarP(&format, "format", "f", "xlsx", "Export format: xlsx, csv")
	cmd.Flags().StringVarP(&filename, "filename", "o", sheetfilter.DefaultFileName, "Export file name without extension")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "Directory for the exported file")
	cmd.Flags().BoolVar(&printRows, "print", false, "Print the filtered table instead of exporting")
	return cmd
}

// sourceArg returns the positional source or the configured default.
func sourceArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Source != "" {
		return cfg.Source, nil
	}
	return "", fmt.Errorf("no source given (pass a path or URL, or set %s)", config.EnvSource)
}

// loader returns a workbook loader bound to source and the configuration.
func loader(source string, log *logging.Logger) web.LoadFunc {
	opts := cfg.LoadOptions()
	opts.Client = &http.Client{Timeout: cfg.FetchTimeout}
	return func(ctx context.Context) (*models.Workbook, error) {
		log.Info("Loading %s", source)
		return sheetfilter.Load(ctx, source, opts)
	}
}

// openSession loads source and activates the requested sheet.
func openSession(ctx context.Context, args []string) (*sheetfilter.Session, error) {
	source, err := sourceArg(args)
	if err != nil {
		return nil, err
	}
	wb, err := loader(source, cfg.Logger().With("Loader"))(ctx)
	if err != nil {
		return nil, err
	}

	sess := sheetfilter.NewSession()
	if err := sess.Open(wb); err != nil {
		return nil, fmt.Errorf("%s: %w", wb.Name, err)
	}
	if sheetName != "" {
		active, err := sess.SelectSheet(sheetName)
		if err != nil {
			return nil, err
		}
		if active != sheetName {
			cfg.Logger().Warn("Sheet %q not found, using %q", sheetName, active)
		}
	}
	return sess, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	log := cfg.Logger()
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	webCfg := web.Config{
		Addr:       cfg.Addr,
		SessionTTL: cfg.SessionTTL,
		Logger:     log,
	}
	if source, err := sourceArg(args); err == nil {
		webCfg.Load = loader(source, log.With("Loader"))
	} else {
		log.Warn("%v; serving an empty page", err)
	}

	app, err := web.NewApp(webCfg)
	if err != nil {
		return fmt.Errorf("failed to create web app: %w", err)
	}
	return app.ListenAndServe(ctx)
}

func runSheets(cmd *cobra.Command, args []string) error {
	source, err := sourceArg(args)
	if err != nil {
		return err
	}
	wb, err := loader(source, cfg.Logger().With("Loader"))(cmd.Context())
	if err != nil {
		return err
	}

	jsonData, err := output.WorkbookToJSON(wb, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context(), args)
	if err != nil {
		return err
	}

	if asJSON {
		jsonData, err := output.ToJSON(sess.Filtered(), pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
		return nil
	}
	return sess.Render(output.TextRenderer{MaxRows: maxRows, Color: color}, cmd.OutOrStdout())
}

func runFilter(cmd *cobra.Command, args []string) error {
	c, err := sheetfilter.ParseCriteria(primary, columns, mode, nullTest)
	if err != nil {
		return err
	}
	exportFormat, err := sheetfilter.ParseFormat(format)
	if err != nil {
		return err
	}

	sess, err := openSession(cmd.Context(), args)
	if err != nil {
		return err
	}
	out, err := sess.ApplyFilter(c)
	if err != nil {
		return err
	}

	if printRows {
		return sess.Render(output.TextRenderer{MaxRows: maxRows}, cmd.OutOrStdout())
	}

	name, err := sess.Download(sheetfilter.DirSink(outDir), filename, exportFormat)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d row(s) to %s\n", out.Len(), filepath.Join(outDir, name))
	return nil
}
