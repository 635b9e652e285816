// Package cli implements the snowcover command-line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lsrd/snowcover/internal/config"
	scaerrors "github.com/lsrd/snowcover/internal/errors"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "snowcover",
	Short: "Scene-based snow cover processing for Landsat scenes",
	Long: `snowcover orchestrates the scene-based DEM and snow cover
applications against a single Landsat scene.

The external executables do the scientific work; snowcover locates the
scene from its MTL metadata file, runs the tools in the scene directory,
captures their output, and propagates their exit status.

Quick start:
  snowcover run -f scene_MTL.txt -t toa.hdf -b btemp.hdf -s snow.hdf
  snowcover dem -f scene_MTL.txt     Derive the scene-based DEM only
  snowcover config                   Show the effective configuration`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./snowcover.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newDEMCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.snowcover")
		viper.SetConfigType("yaml")
		viper.SetConfigName("snowcover")
	}

	viper.SetEnvPrefix("SNOWCOVER")
	viper.AutomaticEnv()

	// The upstream processing scripts located the executables through
	// the BIN environment variable; honor it alongside SNOWCOVER_BIN_DIR.
	cobra.CheckErr(viper.BindEnv("bin_dir", "SNOWCOVER_BIN_DIR", "BIN"))

	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// loadConfig builds the effective configuration: file values over
// defaults, environment values over the file.
func loadConfig() (*config.Config, error) {
	path := viper.ConfigFileUsed()
	if path == "" {
		path = filepath.Join(".", config.ConfigFileName)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, scaerrors.Wrap(err, "could not load configuration")
	}

	if v := viper.GetString("bin_dir"); v != "" {
		cfg.BinDir = v
	}
	if v := viper.GetString("tool_mode"); v != "" {
		cfg.ToolMode = v
	}
	if v := viper.GetString("sca_tool"); v != "" {
		cfg.SCATool = v
	}
	if v := viper.GetString("log_file"); v != "" {
		cfg.LogFile = v
	}
	if viper.IsSet("write_binary") {
		cfg.WriteBinary = viper.GetBool("write_binary")
	}
	if viper.IsSet("tool_timeout") {
		cfg.ToolTimeout = viper.GetDuration("tool_timeout")
	}

	return cfg, nil
}
