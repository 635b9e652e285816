package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lsrd/snowcover/internal/logging"
	"github.com/lsrd/snowcover/internal/sca"
	"github.com/lsrd/snowcover/internal/tool"
)

// newRunCmd creates the run command
func newRunCmd() *cobra.Command {
	var (
		metadataFile string
		toaFile      string
		btempFile    string
		demFile      string
		outputFile   string
		logFile      string
		useBinDir    bool
		writeBinary  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run snow cover processing for one scene",
		Long: `Run the scene-based snow cover algorithm for one Landsat scene.

When --dem-file is omitted, a scene-based DEM is derived first from the
MTL metadata; a DEM failure aborts the run before the snow cover step.
All tools execute in the metadata file's directory and their output is
logged to --log-file (default: standard output).

Example:
  snowcover run -f LT50370292010222_MTL.txt -t toa.hdf -b btemp.hdf -s snow.hdf
  snowcover run -f scene_MTL.txt -t toa.hdf -b btemp.hdf -s snow.hdf \
      --dem-file dem.bin --use-bin-directory -l sca.log`,
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
			if writeBinary {
				cfg.WriteBinary = true
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

			return orch.Run(context.Background(), sca.Request{
				MetadataFile: metadataFile,
				TOAFile:      toaFile,
				BTempFile:    btempFile,
				DEMFile:      demFile,
				OutputFile:   outputFile,
				WriteBinary:  cfg.WriteBinary,
			})
		},
	}

	cmd.Flags().StringVarP(&metadataFile, "metadata-file", "f", "", "name of the Landsat MTL file")
	cmd.Flags().StringVarP(&toaFile, "toa-input-file", "t", "", "name of the TOA reflectance HDF file")
	cmd.Flags().StringVarP(&btempFile, "brightness-temp-file", "b", "", "name of the brightness temperature HDF file")
	cmd.Flags().StringVar(&demFile, "dem-file", "", "name of an ENVI formatted DEM file (derived from the metadata when omitted)")
	cmd.Flags().StringVarP(&outputFile, "output-file", "s", "", "name of the output snow cover HDF file")
	cmd.Flags().StringVarP(&logFile, "log-file", "l", "", "name of optional log file (default: stdout)")
	cmd.Flags().BoolVar(&useBinDir, "use-bin-directory", false, "resolve the DEM and SCA executables via the configured bin directory")
	cmd.Flags().BoolVar(&writeBinary, "write-binary", false, "also write the raw binary side products")

	return cmd
}
