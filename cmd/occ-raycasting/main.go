// Command occ-raycasting runs the occlusion-testing benchmark harness:
// it loads one or more CAD scenes, rasterizes or raycasts them under a
// set of views, and reports triangle and volume-test totals and timing.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/sraesch/raycasting-occlusion/config"
	"github.com/sraesch/raycasting-occlusion/cull"
	"github.com/sraesch/raycasting-occlusion/geom"
	"github.com/sraesch/raycasting-occlusion/occ"
	"github.com/sraesch/raycasting-occlusion/raycast"
	"github.com/sraesch/raycasting-occlusion/scene"
	"github.com/sraesch/raycasting-occlusion/stats"
)

var logLevel string

func main() {
	root := newRootCmd()
	if err := fang.Execute(context.Background(), root); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "occ-raycasting",
		Short: "Occlusion-testing benchmark harness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return cmd.Help()
			}
			setupLogging(logLevel)
			return runFromConfig(configPath)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: trace|debug|info|warn|error")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML benchmark config")

	cmd.AddCommand(newEngineCmd("rasterizer", "rasterizer_occ"))
	cmd.AddCommand(newEngineCmd("naive-raycaster", "naive_raycaster_occ"))

	return cmd
}

// newEngineCmd builds the direct-argument subcommand form for a single
// engine: --input-files=<glob> <engine> --image-size=<N>, no config
// file involved.
func newEngineCmd(use, name string) *cobra.Command {
	var inputFiles string
	var imageSize int
	var numThreads int

	cmd := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("Run the %s engine directly against a glob of input files", name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(logLevel)
			return runDirect(name, inputFiles, imageSize, numThreads)
		},
	}
	cmd.Flags().StringVar(&inputFiles, "input-files", "", "glob of scene files to load")
	cmd.Flags().IntVar(&imageSize, "image-size", config.DefaultFrameSize, "square frame size in pixels")
	cmd.Flags().IntVar(&numThreads, "num-threads", config.DefaultNumThreads, "worker threads (naive-raycaster only)")
	cmd.MarkFlagRequired("input-files")

	return cmd
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "trace", "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}

func runFromConfig(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	sc, err := loadScenes(cfg.Input)
	if err != nil {
		return err
	}

	views := make([]occ.View, len(cfg.Views))
	for i, v := range cfg.Views {
		views[i] = occ.View{
			ViewMatrix:       geom.Mat4(v.ViewMatrix),
			ProjectionMatrix: geom.Mat4(v.ProjectionMatrix),
		}
	}

	setups := make([]occ.Setup, 0, len(cfg.Setups))
	for _, s := range cfg.Setups {
		switch s.Kind() {
		case "rasterizer":
			frameSize := s.Rasterizer.FrameSize
			if frameSize == 0 {
				frameSize = cfg.FrameSize
			}
			setups = append(setups, rasterizerSetup(frameSize))
		case "naive_raycaster":
			frameSize := s.NaiveRaycaster.FrameSize
			if frameSize == 0 {
				frameSize = cfg.FrameSize
			}
			setups = append(setups, naiveRaycasterSetup(frameSize, cfg.NumThreads))
		default:
			return fmt.Errorf("config setup with neither engine configured")
		}
	}

	exec := &occ.Executor{
		Scene:       sc,
		Setups:      setups,
		Views:       views,
		OutDir:      "frames",
		WriteFrames: cfg.WriteFrames,
	}

	root := stats.NewRoot()
	if err := exec.Run(root); err != nil {
		return err
	}

	slog.Info("run complete",
		"num_triangles", exec.TotalStats.NumTriangles,
		"num_volume_tests", exec.TotalStats.NumVolumeTests)
	fmt.Println(root.String())
	return nil
}

func runDirect(engine, glob string, frameSize, numThreads int) error {
	sc, err := loadScenes([]string{glob})
	if err != nil {
		return err
	}

	var setup occ.Setup
	switch engine {
	case "rasterizer_occ":
		setup = rasterizerSetup(frameSize)
	case "naive_raycaster_occ":
		setup = naiveRaycasterSetup(frameSize, numThreads)
	}

	exec := &occ.Executor{
		Scene:  sc,
		Setups: []occ.Setup{setup},
		Views:  []occ.View{defaultView()},
		OutDir: "frames",
	}

	root := stats.NewRoot()
	if err := exec.Run(root); err != nil {
		return err
	}

	slog.Info("run complete",
		"num_triangles", exec.TotalStats.NumTriangles,
		"num_volume_tests", exec.TotalStats.NumVolumeTests)
	fmt.Println(root.String())
	return nil
}

// defaultView supplies a view/projection pair for the direct-argument
// invocation form, which names no views of its own: a camera at world
// (0, 0, 5) looking toward the origin, through a 60 degree vertical
// field of view.
func defaultView() occ.View {
	view := geom.Identity4()
	view[14] = -5

	fovy := float32(math.Pi) / 3
	near, far := float32(0.1), float32(100.0)
	f := float32(1 / math.Tan(float64(fovy)/2))
	nf := 1 / (near - far)
	proj := geom.Mat4{
		f, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}

	return occ.View{ViewMatrix: view, ProjectionMatrix: proj}
}

func rasterizerSetup(frameSize int) occ.Setup {
	return occ.Setup{
		Name:      "rasterizer_occ",
		FrameSize: frameSize,
		BuildScene: func(s *scene.Scene) (occ.IndexedScene, error) {
			return &cull.IdentityScene{Scene: s}, nil
		},
		NewTester: func(is occ.IndexedScene) (occ.Tester, error) {
			return cull.NewRasterizerTester(is.(*cull.IdentityScene), frameSize)
		},
	}
}

func naiveRaycasterSetup(frameSize, numThreads int) occ.Setup {
	return occ.Setup{
		Name:      "naive_raycaster_occ",
		FrameSize: frameSize,
		BuildScene: func(s *scene.Scene) (occ.IndexedScene, error) {
			return &raycast.VolumeScene{Scene: s}, nil
		},
		NewTester: func(is occ.IndexedScene) (occ.Tester, error) {
			return raycast.NewNaiveRaycasterTester(is.(*raycast.VolumeScene), frameSize, numThreads)
		},
	}
}

// loadScenes expands every glob pattern in globs, loads each matching
// file, and merges them into a single scene: later files' objects
// reference mesh indices offset by the meshes already accumulated.
func loadScenes(globs []string) (*scene.Scene, error) {
	merged := &scene.Scene{}

	for _, pattern := range globs {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid input glob %q: %w", pattern, err)
		}
		for _, path := range matches {
			s, err := scene.LoadFile(path)
			if err != nil {
				return nil, err
			}
			meshOffset := uint32(len(merged.Meshes))
			merged.Meshes = append(merged.Meshes, s.Meshes...)
			for _, obj := range s.Objects {
				obj.MeshIndex += meshOffset
				merged.Objects = append(merged.Objects, obj)
			}
		}
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}
