// Package dem derives a scene-based DEM for a Landsat scene.
//
// The heavy lifting is done by the LPGS elevation tool chain, driven
// here as opaque executables: retrieve_elevation pulls the source DEM
// for the scene's bounding box, makegeomgrid builds the geometric
// resampling grid, geomresample produces the scene-based DEM, and
// gdal_translate converts it to an ENVI-format raster. The tools read
// their parameters from OMF/ODL files this package writes into the
// scene directory, and the GDAL-written ENVI header is patched
// afterwards because GDAL records the raster as Geographic rather than
// the scene's true projection.
package dem

import (
	"context"
	"fmt"
	"path/filepath"

	scaerrors "github.com/lsrd/snowcover/internal/errors"
	"github.com/lsrd/snowcover/internal/logging"
	"github.com/lsrd/snowcover/internal/mtl"
	"github.com/lsrd/snowcover/internal/tool"
)

// External tool names.
const (
	ToolRetrieveElevation = "retrieve_elevation"
	ToolMakeGeomGrid      = "makegeomgrid"
	ToolGeomResample      = "geomresample"
	ToolGDALTranslate     = "gdal_translate"
)

// Fixed artifact names, written in the scene directory.
const (
	RetrieveElevODL = "retrieve_elevation.odl"
	MakeGeomGridODL = "makegeomgrid.odl"
	GeomResampleODL = "geomresample.odl"
	OMFFile         = "LSRD.omf"
	SourceDEM       = "lsrd_source_dem.h5"
	SceneDEM        = "lsrd_scene_based_dem.h5"
	SceneDEMENVI    = "lsrd_scene_based_dem.bin"
	SceneDEMHeader  = "lsrd_scene_based_dem.hdr"
	GeomGrid        = "lsrd_geomgrid.h5"
)

// Generator runs the scene-based DEM derivation.
type Generator struct {
	runner  tool.Runner
	locator tool.Locator
	sink    *logging.Sink
}

// NewGenerator creates a Generator.
func NewGenerator(runner tool.Runner, locator tool.Locator, sink *logging.Sink) *Generator {
	return &Generator{runner: runner, locator: locator, sink: sink}
}

// Generate derives the scene-based DEM in sceneDir for the scene
// described by metaName (the base MTL filename, relative to sceneDir)
// and its parsed metadata. It returns the name of the ENVI DEM raster,
// relative to sceneDir. Any tool failure aborts the sequence; partial
// artifacts are left in place for diagnosis.
func (g *Generator) Generate(ctx context.Context, sceneDir, metaName string, meta *mtl.Metadata) (string, error) {
	g.sink.Logger.Info("processing scene-based DEM", "metadata", metaName)

	if err := g.writeParams(sceneDir, metaName, meta); err != nil {
		return "", fmt.Errorf("write DEM parameter files: %w", err)
	}

	steps := []struct {
		name string
		args []string
	}{
		{ToolRetrieveElevation, []string{RetrieveElevODL}},
		{ToolMakeGeomGrid, []string{MakeGeomGridODL}},
		{ToolGeomResample, []string{GeomResampleODL}},
	}
	for _, step := range steps {
		if err := g.runTool(ctx, sceneDir, g.locator.Resolve(step.name), step.name, step.args); err != nil {
			return "", err
		}
	}

	// gdal_translate is a system tool, resolved via the search path
	// regardless of mode; it is not part of the LPGS bin directory.
	gdalArgs := []string{"-of", "ENVI", fmt.Sprintf("HDF5:%s://B01", SceneDEM), SceneDEMENVI}
	if err := g.runTool(ctx, sceneDir, ToolGDALTranslate, ToolGDALTranslate, gdalArgs); err != nil {
		return "", err
	}

	// GDAL writes the header as Geographic; rewrite the projection to
	// match the scene.
	hdrPath := filepath.Join(sceneDir, SceneDEMHeader)
	if err := FixENVIHeader(hdrPath, meta); err != nil {
		return "", fmt.Errorf("update ENVI header: %w", err)
	}

	g.sink.Logger.Info("completion of scene-based DEM generation", "dem", SceneDEMENVI)
	return SceneDEMENVI, nil
}

// runTool invokes one tool, logs its combined output verbatim, and
// fails fast on a non-zero exit.
func (g *Generator) runTool(ctx context.Context, dir, invocation, name string, args []string) error {
	g.sink.Logger.Info("running DEM tool", "tool", name)

	res, err := g.runner.Run(ctx, dir, invocation, args...)
	if err != nil {
		g.sink.Logger.Error("could not execute tool", "tool", name, "error", err)
		return scaerrors.ErrToolUnavailable(name).WithCause(err)
	}

	g.sink.Raw(res.Output)
	if res.ExitCode != 0 {
		g.sink.Logger.Error("error running tool, processing will terminate", "tool", name, "exit_code", res.ExitCode)
		return scaerrors.ErrToolFailed(name, res.ExitCode)
	}
	return nil
}
