package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/todo/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend  string `yaml:"backend"`
	DataDir  string `yaml:"data_dir,omitempty"`
	LogLevel string `yaml:"log_level,omitempty"`
}

func newInitCmd(a *app) *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and task storage",
		Long:  "Create the config directory with a default config.yaml, then create an empty task file if none exists.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if backend != "" {
				a.cfg.Backend = backend
				if err := a.cfg.Validate(); err != nil {
					return userError("--backend %q: %w (valid: %s, %s)", backend, err, types.BackendJSON, types.BackendSQLite)
				}
			}
			return runInit(cmd, a)
		},
	}

	cmd.Flags().StringVar(&backend, "backend", "", "storage backend: json or sqlite")
	return cmd
}

func runInit(cmd *cobra.Command, a *app) error {
	if err := os.MkdirAll(a.resolvedConfigDir, 0o755); err != nil {
		return sysError("create config directory: %w", err)
	}

	configPath := filepath.Join(a.resolvedConfigDir, configFileExt)
	cf := configFile{Backend: a.cfg.Backend}
	if a.dataDir != "" {
		cf.DataDir = a.cfg.DataDir
	}
	written, err := writeConfigIfMissing(configPath, cf)
	if err != nil {
		return sysError("write config: %w", err)
	}
	if written {
		a.logger.Info("wrote config", "path", configPath)
	}

	s, err := a.openStore()
	if err != nil {
		return err
	}
	if _, err := os.Stat(s.Location()); errors.Is(err, os.ErrNotExist) {
		if err := s.Save(); err != nil {
			return sysError("initialize storage: %w", err)
		}
	}

	if a.jsonMode {
		return writeJSON(cmd, map[string]any{
			"config":  configPath,
			"backend": a.cfg.Backend,
			"data":    s.Location(),
			"tasks":   s.Len(),
		})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config: %s\n", configPath)
	fmt.Fprintf(out, "Tasks:  %s (%s, %d tasks)\n", s.Location(), a.cfg.Backend, s.Len())
	fmt.Fprintln(out, "todo initialized successfully")
	return nil
}

// writeConfigIfMissing creates config.yaml with cf if the file does not exist.
// It reports whether the file was written.
func writeConfigIfMissing(path string, cf configFile) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	data, err := yaml.Marshal(&cf)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
