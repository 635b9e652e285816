// Package sca orchestrates one scene-based snow-cover processing run.
//
// A run validates its inputs, resolves the scene directory from the
// metadata file, changes into it for the duration of the external tool
// invocations, and restores the original working directory on every
// exit path. The snow-cover classifier is an opaque executable; when no
// DEM is supplied, a scene-based DEM is derived first and a failure
// there aborts the run before the classifier is attempted.
package sca

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lsrd/snowcover/internal/dem"
	scaerrors "github.com/lsrd/snowcover/internal/errors"
	"github.com/lsrd/snowcover/internal/logging"
	"github.com/lsrd/snowcover/internal/mtl"
	"github.com/lsrd/snowcover/internal/tool"
	"github.com/lsrd/snowcover/internal/workdir"
)

// Request describes one snow-cover processing run. All paths except
// DEMFile are required; an empty DEMFile requests scene-based DEM
// derivation before classification.
type Request struct {
	MetadataFile string
	TOAFile      string
	BTempFile    string
	DEMFile      string
	OutputFile   string

	// WriteBinary adds the raw-binary side products to the classifier
	// invocation.
	WriteBinary bool
}

// demGenerator derives a scene-based DEM in sceneDir and returns the
// ENVI raster name. Satisfied by *dem.Generator; stubbed in tests.
type demGenerator interface {
	Generate(ctx context.Context, sceneDir, metaName string, meta *mtl.Metadata) (string, error)
}

// Orchestrator drives snow-cover processing runs.
type Orchestrator struct {
	runner  tool.Runner
	locator tool.Locator
	sink    *logging.Sink
	scaTool string

	demGen    demGenerator
	parseMeta func(path string) (*mtl.Metadata, error)
}

// New creates an Orchestrator. scaTool is the classifier executable
// name, resolved through the locator at invocation time.
func New(runner tool.Runner, locator tool.Locator, scaTool string, sink *logging.Sink) *Orchestrator {
	return &Orchestrator{
		runner:    runner,
		locator:   locator,
		sink:      sink,
		scaTool:   scaTool,
		demGen:    dem.NewGenerator(runner, locator, sink),
		parseMeta: mtl.Parse,
	}
}

// Run executes one processing run. A nil return means the snow-cover
// product was written into the scene directory. Every failure is
// terminal for the run; no retry, and partial artifacts from a failed
// tool are left in place for diagnosis.
func (o *Orchestrator) Run(ctx context.Context, req Request) error {
	// Usage validation first, before any side effect.
	for _, p := range []struct {
		value, name string
	}{
		{req.MetadataFile, "metadata-file"},
		{req.TOAFile, "toa-input-file"},
		{req.BTempFile, "brightness-temp-file"},
		{req.OutputFile, "output-file"},
	} {
		if p.value == "" {
			err := scaerrors.ErrMissingArgument(p.name)
			o.sink.Logger.Error(err.What)
			return err
		}
	}

	if err := o.locator.Validate(); err != nil {
		o.sink.Logger.Error("tool location not configured", "error", err)
		return err
	}

	o.sink.Logger.Info("SCA processing of Landsat metadata file", "metadata", req.MetadataFile)
	o.logToolMode()

	sc, err := o.resolveScene(req.MetadataFile)
	if err != nil {
		return err
	}

	o.sink.Logger.Info("changing directories for snow cover processing", "dir", sc.dir)
	restore, err := workdir.Enter(sc.dir)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := restore(); rerr != nil {
			o.sink.Logger.Warn("failed to restore working directory", "error", rerr)
		}
	}()

	demFile := req.DEMFile
	if demFile == "" {
		demFile, err = o.deriveDEM(ctx, sc)
		if err != nil {
			return err
		}
	}

	if err := o.runSCA(ctx, sc.dir, req, demFile); err != nil {
		return err
	}

	o.sink.Logger.Info("completion of scene-based snow cover", "output", req.OutputFile)
	return nil
}

// DeriveDEM runs the DEM-derivation half of the pipeline on its own,
// for callers that only want the scene-based DEM. The same directory
// discipline applies: the run executes in the scene directory and the
// original working directory is restored on every path.
func (o *Orchestrator) DeriveDEM(ctx context.Context, metadataFile string) (string, error) {
	if metadataFile == "" {
		err := scaerrors.ErrMissingArgument("metadata-file")
		o.sink.Logger.Error(err.What)
		return "", err
	}
	if err := o.locator.Validate(); err != nil {
		o.sink.Logger.Error("tool location not configured", "error", err)
		return "", err
	}

	o.sink.Logger.Info("processing scene-based DEM for Landsat metadata file", "metadata", metadataFile)
	o.logToolMode()

	sc, err := o.resolveScene(metadataFile)
	if err != nil {
		return "", err
	}

	o.sink.Logger.Info("changing directories for DEM processing", "dir", sc.dir)
	restore, err := workdir.Enter(sc.dir)
	if err != nil {
		return "", err
	}
	defer func() {
		if rerr := restore(); rerr != nil {
			o.sink.Logger.Warn("failed to restore working directory", "error", rerr)
		}
	}()

	return o.deriveDEM(ctx, sc)
}

func (o *Orchestrator) logToolMode() {
	if o.locator.Mode == tool.ModeBinDir {
		o.sink.Logger.Info("resolving executables via bin directory", "bin_dir", o.locator.BinDir)
	} else {
		o.sink.Logger.Info("DEM and SCA executables expected to be in the PATH")
	}
}

// scene is a resolved metadata location.
type scene struct {
	dir     string
	name    string
	absMeta string
}

// resolveScene validates the metadata file and its directory. Checked
// before any directory change so a failure leaves the process exactly
// as it was.
func (o *Orchestrator) resolveScene(metadataFile string) (scene, error) {
	info, err := os.Stat(metadataFile)
	if err != nil || info.IsDir() {
		scaErr := scaerrors.ErrMetadataNotFound(metadataFile)
		o.sink.Logger.Error(scaErr.What)
		return scene{}, scaErr
	}

	// Resolve to an absolute path so a bare filename in the current
	// directory still yields a usable scene directory.
	absMeta, err := filepath.Abs(metadataFile)
	if err != nil {
		return scene{}, fmt.Errorf("resolve metadata path: %w", err)
	}
	s := scene{
		dir:     filepath.Dir(absMeta),
		name:    filepath.Base(absMeta),
		absMeta: absMeta,
	}
	o.sink.Logger.Info("processing metadata file", "metadata", s.name)

	// Outputs land in the scene directory; the tools need write access.
	if !workdir.IsWritable(s.dir) {
		scaErr := scaerrors.ErrSceneDirNotWritable(s.dir)
		o.sink.Logger.Error(scaErr.What)
		return scene{}, scaErr
	}
	return s, nil
}

// deriveDEM parses the scene metadata and runs DEM generation.
func (o *Orchestrator) deriveDEM(ctx context.Context, s scene) (string, error) {
	meta, err := o.parseMeta(s.absMeta)
	if err != nil {
		o.sink.Logger.Error("error parsing the metadata, processing will terminate", "error", err)
		return "", err
	}
	demFile, err := o.demGen.Generate(ctx, s.dir, s.name, meta)
	if err != nil {
		o.sink.Logger.Error("error creating scene-based DEM, processing will terminate", "error", err)
		return "", err
	}
	return demFile, nil
}

// runSCA invokes the snow-cover classifier and interprets its exit code.
func (o *Orchestrator) runSCA(ctx context.Context, sceneDir string, req Request, demFile string) error {
	args := []string{
		"--toa=" + req.TOAFile,
		"--btemp=" + req.BTempFile,
		"--dem=" + demFile,
		"--snow_cover=" + req.OutputFile,
	}
	if req.WriteBinary {
		args = append(args, "--write_binary")
	}
	args = append(args, "--verbose")

	invocation := o.locator.Resolve(o.scaTool)
	o.sink.Logger.Info("running snow cover classification", "tool", o.scaTool)

	res, err := o.runner.Run(ctx, sceneDir, invocation, args...)
	if err != nil {
		o.sink.Logger.Error("could not execute snow cover tool", "tool", o.scaTool, "error", err)
		return scaerrors.ErrToolUnavailable(o.scaTool).WithCause(err)
	}

	o.sink.Raw(res.Output)
	if res.ExitCode != 0 {
		o.sink.Logger.Error("error running snow cover tool, processing will terminate", "tool", o.scaTool, "exit_code", res.ExitCode)
		return scaerrors.ErrToolFailed(o.scaTool, res.ExitCode)
	}
	return nil
}
