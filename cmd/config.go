package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/rexview/internal/config"
)

const defaultConfigPath = ".rexview/config.yaml"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init [PATH]",
	Short: "Write a commented default config file",
	Long: `Write a commented default config file to PATH, or to .rexview/config.yaml
when PATH is omitted. An existing file is never overwritten unless --force
is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set one value in the config file, keeping its comments",
	Long: `Set one value, such as match.flags or theme.highlight, in the config file
in use (or .rexview/config.yaml when none exists). The resulting
configuration is validated before anything is written.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitForce bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)

	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configErr != nil {
		return configErr
	}

	out := cmd.OutOrStdout()
	if used := viper.ConfigFileUsed(); used != "" {
		_, _ = fmt.Fprintf(out, "# %s\n", used)
	} else {
		_, _ = fmt.Fprintln(out, "# no config file found; showing defaults")
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := defaultConfigPath
	if len(args) > 0 {
		path = args[0]
	}

	if err := writeConfigFile(path, configInitForce); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if !config.IsSettableKey(key) {
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(config.SettableKeys(), ", "))
	}

	path := viper.ConfigFileUsed()
	if path == "" {
		path = defaultConfigPath
	}

	if err := validateSetting(path, key, value); err != nil {
		return err
	}
	if err := config.SaveValue(path, key, value); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "set %s in %s\n", key, path)
	return nil
}

// validateSetting loads path with key overridden and validates the result.
func validateSetting(path, key, value string) error {
	v := viper.New()
	setDefaults(v)
	if fileExists(path) {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	v.Set(key, value)

	candidate := config.Defaults()
	if err := v.Unmarshal(&candidate); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := config.Validate(candidate); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return nil
}

func writeConfigFile(path string, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.WriteDefaultConfig(path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
