package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lsrd/snowcover/internal/logging"
	"github.com/lsrd/snowcover/internal/sca"
	"github.com/lsrd/snowcover/internal/tool"
)

// newDEMCmd creates the dem command
func newDEMCmd() *cobra.Command {
	var (
		metadataFile string
		logFile      string
		useBinDir    bool
	)

	cmd := &cobra.Command{
		Use:   "dem",
		Short: "Derive the scene-based DEM for one scene",
		Long: `Derive a scene-based DEM from a Landsat MTL metadata file.

The elevation tool chain runs in the metadata file's directory and
leaves an ENVI-format DEM raster there for use by the snow cover step.

Example:
  snowcover dem -f LT50370292010222_MTL.txt --use-bin-directory`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if useBinDir {
				cfg.ToolMode = tool.ModeBinDir.String()
			}
			if logFile != "" {
				cfg.LogFile = logFile
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			sink, err := logging.New(cfg.LogFile)
			if err != nil {
				return err
			}
			defer sink.Close()

			runner := &tool.ExecRunner{Timeout: cfg.ToolTimeout}
			orch := sca.New(runner, cfg.Locator(), cfg.SCATool, sink)

			demFile, err := orch.DeriveDEM(context.Background(), metadataFile)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), demFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&metadataFile, "metadata-file", "f", "", "name of the Landsat MTL file")
	cmd.Flags().StringVarP(&logFile, "log-file", "l", "", "name of optional log file (default: stdout)")
	cmd.Flags().BoolVar(&useBinDir, "use-bin-directory", false, "resolve the DEM executables via the configured bin directory")

	return cmd
}
