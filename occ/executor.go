package occ

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sraesch/raycasting-occlusion/geom"
	"github.com/sraesch/raycasting-occlusion/occerr"
	"github.com/sraesch/raycasting-occlusion/scene"
	"github.com/sraesch/raycasting-occlusion/stats"
)

// View is a single camera setup to test every engine against.
type View struct {
	ViewMatrix       geom.Mat4
	ProjectionMatrix geom.Mat4
}

// Executor runs a set of engine setups against one scene across a set
// of views, optionally exporting each view's ID buffer as an image.
type Executor struct {
	Scene       *scene.Scene
	Setups      []Setup
	Views       []View
	OutDir      string
	WriteFrames bool
	Palette     func(objectID uint32) [3]uint8

	// TotalStats accumulates every tester's EngineStats across every
	// setup and view run so far.
	TotalStats EngineStats
}

// Run drives every configured setup against every view, reporting
// timing into root.
func (e *Executor) Run(root *stats.Node) error {
	for _, setup := range e.Setups {
		if err := e.runSetup(setup, root); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) runSetup(setup Setup, root *stats.Node) error {
	node := root.Child(setup.Name)

	buildTimer := node.Child("build_scene").Start()
	indexed, err := setup.BuildScene(e.Scene)
	buildTimer.Stop()
	if err != nil {
		return fmt.Errorf("building indexed scene for %s: %w", setup.Name, err)
	}

	accelTimer := node.Child("build_acceleration_structures").Start()
	err = indexed.BuildAccelerationStructures(nil)
	accelTimer.Stop()
	if err != nil {
		return fmt.Errorf("building acceleration structures for %s: %w", setup.Name, err)
	}

	tester, err := setup.NewTester(indexed)
	if err != nil {
		return fmt.Errorf("constructing tester %s: %w", setup.Name, err)
	}

	var outDir string
	if e.WriteFrames {
		outDir = filepath.Join(e.OutDir, setup.Name)
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("%w: creating output directory: %w", occerr.ErrIO, err)
		}
	}

	for i, view := range e.Views {
		viewTimer := node.Child("compute_visibility").Start()
		result, err := tester.ComputeVisibility(view.ViewMatrix, view.ProjectionMatrix)
		viewTimer.Stop()
		if err != nil {
			return fmt.Errorf("computing visibility for %s view %d: %w", setup.Name, i, err)
		}
		e.TotalStats.NumTriangles += result.Stats.NumTriangles
		e.TotalStats.NumVolumeTests += result.Stats.NumVolumeTests

		if e.WriteFrames && result.Frame != nil {
			if err := e.writeFrame(outDir, i, result); err != nil {
				return err
			}
		}
	}

	return nil
}

func (e *Executor) writeFrame(outDir string, viewIndex int, result Result) error {
	path := filepath.Join(outDir, fmt.Sprintf("view_%d.png", viewIndex))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating frame output %s: %w", occerr.ErrIO, path, err)
	}
	palette := e.Palette
	if palette == nil {
		palette = defaultPalette
	}
	writeErr := result.Frame.WritePNG(f, palette)
	closeErr := f.Close()
	if writeErr != nil {
		return fmt.Errorf("%w: writing frame %s: %w", occerr.ErrIO, path, writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("%w: closing frame %s: %w", occerr.ErrIO, path, closeErr)
	}
	return nil
}

func defaultPalette(objectID uint32) [3]uint8 {
	r := uint8((objectID * 37) % 256)
	g := uint8((objectID * 91) % 256)
	b := uint8((objectID * 193) % 256)
	return [3]uint8{r, g, b}
}
