package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/smsledger/internal/config"
	"github.com/cleared-dev/smsledger/internal/inbox"
	"github.com/cleared-dev/smsledger/internal/refdata"
)

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new smsledger project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			existed, err := runInit(absDir)
			if err != nil {
				return err
			}
			if existed {
				fmt.Fprintf(cmd.OutOrStdout(), "Repaired smsledger project at %s\n", absDir)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized smsledger project at %s\n", absDir)
			return nil
		},
	}
	return cmd
}

// runInit lays out a project in dir. An existing project keeps its
// smsledger.yaml and reference tables; only missing pieces are created.
func runInit(dir string) (bool, error) {
	cfgPath := filepath.Join(dir, config.FileName)
	cfg := config.Default()
	existed := false
	if _, err := os.Stat(cfgPath); err == nil {
		existed = true
		if cfg, err = config.Load(cfgPath); err != nil {
			return true, err
		}
	}

	dirs := []string{
		cfg.ReferenceDir(dir),
		filepath.Join(dir, inbox.Dir),
		filepath.Join(dir, inbox.Dir, "processed"),
		filepath.Join(dir, "logs"),
		filepath.Dir(cfg.StorePath(dir)),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return existed, fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if !existed {
		if err := config.Save(cfgPath, cfg); err != nil {
			return false, fmt.Errorf("writing config: %w", err)
		}
	}

	refDir := cfg.ReferenceDir(dir)
	if _, err := os.Stat(filepath.Join(refDir, refdata.KeywordsFile)); os.IsNotExist(err) {
		if err := refdata.Save(refDir, refdata.DefaultTables()); err != nil {
			return existed, fmt.Errorf("writing reference tables: %w", err)
		}
	}

	files := []struct {
		path    string
		content string
	}{
		{filepath.Join(dir, ".gitignore"), "data/\nlogs/\nexports/\n.env\n"},
		{filepath.Join(dir, inbox.Dir, ".gitkeep"), ""},
	}
	for _, f := range files {
		if _, err := os.Stat(f.path); err == nil {
			continue
		}
		if err := os.WriteFile(f.path, []byte(f.content), 0o644); err != nil {
			return existed, fmt.Errorf("writing %s: %w", filepath.Base(f.path), err)
		}
	}

	return existed, nil
}
