// Package cli implements the datax command line
package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"datax/internal/adapters/source"
	"datax/internal/platform/config"
	"datax/internal/platform/logger"
	"datax/internal/services/coverage/service"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app is the state shared by every subcommand of one invocation
type app struct {
	v       *viper.Viper
	cfgFile string
	verbose bool
	svc     *service.Svc
}

// NewRootCmd builds the datax command tree
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "datax",
		Short: "Filter, aggregate and annotate article coverage time series",
		Long: `datax loads a coverage dataset (csv file, http(s) URL, postgres or clickhouse table),
buckets it into fixed-width day windows and renders, exports or prints the result.

Example usage:
  datax chart --source data/green_deal_data.csv --bucket-days 7 --trend --events --out chart.png
  datax export --source data/green_deal_data.csv --out coverage.xlsx
  datax table --start 2021-01-01 --end 2021-03-31 --bucket-days 7
  datax events`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "yaml config file; keys match flag names")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging on stderr")
	pf.String("source", "", "dataset source: path, file://, http(s)://, postgres:// or clickhouse:// (env DATAX_SOURCE)")
	pf.String("events-file", "", "yaml events table replacing the built-in one (env DATAX_EVENTS_FILE)")
	pf.Int("timeout-seconds", int(source.DefaultTimeout/time.Second), "bound for one remote load (env DATAX_HTTP_TIMEOUT_SECONDS)")
	pf.String("sql-table", "", "table used when a SQL source names none (env DATAX_SQL_TABLE)")

	a.v.SetEnvPrefix("DATAX")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	_ = a.v.BindEnv("timeout-seconds", "DATAX_HTTP_TIMEOUT_SECONDS")
	_ = a.v.BindPFlags(pf)

	root.AddCommand(
		newChartCmd(a),
		newExportCmd(a),
		newTableCmd(a),
		newEventsCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree and returns the process exit code
func Execute(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, errorLine(err))
		return exitCode(err)
	}
	return 0
}

func (a *app) init(cmd *cobra.Command) error {
	if _, err := config.LoadDotenv(); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", a.cfgFile, err)
		}
	}
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	opt := logger.FromEnv()
	opt.Level, opt.Service, opt.Writer = "warn", "datax", cmd.ErrOrStderr()
	if a.verbose || a.v.GetBool("verbose") {
		opt.Level = "debug"
	}
	logger.Init(opt)
	return nil
}

// service builds the coverage service on first use
func (a *app) service() (*service.Svc, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	s := service.Settings{
		Source:       a.v.GetString("source"),
		EventsFile:   a.v.GetString("events-file"),
		Timeout:      time.Duration(a.v.GetInt("timeout-seconds")) * time.Second,
		SQLTable:     a.v.GetString("sql-table"),
		CacheEntries: 1,
	}
	opt, err := s.Options(*logger.Named("cli"))
	if err != nil {
		return nil, err
	}
	a.svc = service.New(opt)
	return a.svc, nil
}
