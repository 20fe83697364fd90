package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cleared-dev/smsledger/internal/buildinfo"
	"github.com/cleared-dev/smsledger/internal/classify"
	"github.com/cleared-dev/smsledger/internal/config"
	"github.com/cleared-dev/smsledger/internal/logging"
	"github.com/cleared-dev/smsledger/internal/refdata"
)

// app holds state shared by one command tree.
type app struct {
	v       *viper.Viper
	cfgFile string
}

// project is a resolved project directory with its effective configuration.
type project struct {
	root string
	cfg  *config.Config
	log  zerolog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:     "smsledger",
		Short:   "Classify financial SMS into transactions, promotions and fraud alerts",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: <dir>/"+config.FileName+")")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (console, json)")
	_ = a.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", flags.Lookup("log-format"))

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newClassifyCommand(a))
	rootCmd.AddCommand(newBatchCommand(a))
	rootCmd.AddCommand(newStatsCommand(a))
	rootCmd.AddCommand(newExportCommand(a))
	rootCmd.AddCommand(newRisksCommand(a))

	return rootCmd
}

// project resolves dir and loads its configuration. Logs go to the
// command's stderr.
func (a *app) project(cmd *cobra.Command, dir string) (*project, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := a.cfgFile
	if path == "" {
		path = filepath.Join(root, config.FileName)
	}
	cfg, err := config.Resolve(a.v, path)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, fmt.Errorf("configuring logger: %w", err)
	}
	log = logging.WithFields(log, map[string]any{"root": root})
	cmd.SetContext(logging.WithContext(cmd.Context(), log))

	return &project{root: root, cfg: cfg, log: log}, nil
}

// classifier compiles the project's reference tables. A project without a
// reference directory runs on the built-in tables.
func (p *project) classifier() (*classify.Classifier, error) {
	dir := p.cfg.ReferenceDir(p.root)

	var ref *refdata.ReferenceData
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		p.log.Debug().Str("dir", dir).Msg("reference dir not found, using built-in tables")
		ref = refdata.Default()
	} else {
		ref, err = refdata.Load(dir)
		if err != nil {
			return nil, fmt.Errorf("loading reference data: %w", err)
		}
	}

	return classify.New(ref, classify.Options{
		PromoThreshold: p.cfg.Thresholds.Promotional,
		LargeAmount:    decimal.NewFromFloat(p.cfg.Thresholds.LargeAmount),
	}), nil
}
