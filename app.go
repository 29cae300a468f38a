package main

import (
	"fmt"
	"io"
	"os"

	"github.com/chazu/cvoxel/pkg/engine"
	"github.com/chazu/cvoxel/pkg/meshgen"
	sdfxgen "github.com/chazu/cvoxel/pkg/meshgen/sdfx"
	"github.com/chazu/cvoxel/pkg/scene"
)

// App wires the scripting engine and the mesh generator together and
// renders scan reports. It is pure orchestration: all geometry work
// happens in pkg/voxel and pkg/scene.
type App struct {
	engine *engine.Engine
	gen    meshgen.Generator
}

// NewApp creates an App with the sdfx mesh generator.
func NewApp() *App {
	gen := sdfxgen.New()
	return &App{
		engine: engine.NewEngine(gen),
		gen:    gen,
	}
}

// RunScript evaluates a scene script and writes the scan report to w.
func (a *App) RunScript(source string, w io.Writer) error {
	s, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(w, "error: %s\n", e.Error())
		}
		return fmt.Errorf("script had %d error(s)", len(evalErrs))
	}
	return a.report(s, w)
}

// RunScriptFile evaluates a scene script loaded from path.
func (a *App) RunScriptFile(path string, w io.Writer) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return a.RunScript(string(src), w)
}

// RunSceneFile builds a YAML scene file and writes the scan report to w.
func (a *App) RunSceneFile(path string, w io.Writer) error {
	cfg, err := scene.LoadFile(path)
	if err != nil {
		return err
	}
	s, err := cfg.Build(a.gen)
	if err != nil {
		return err
	}
	return a.report(s, w)
}

// demoScript reproduces the reference scene: capsule, sphere and torus
// voxelized at dx = 0.05 and spread out along the X axis.
const demoScript = `
(object "capsule" (capsule :height 0.7 :radius 0.3) :dx 0.05 :at (vec3 -0.9 0 0))
(object "sphere"  (sphere :radius 0.3)              :dx 0.05 :at (vec3 0 0 0))
(object "torus"   (torus :major 0.5 :minor 0.2)     :dx 0.05 :at (vec3 0.9 0 0))
`

// RunDemo builds the default three-shape scene and reports on it.
func (a *App) RunDemo(w io.Writer) error {
	return a.RunScript(demoScript, w)
}

// report prints per-object grid diagnostics and the all-pairs
// intersection scan.
func (a *App) report(s *scene.Scene, w io.Writer) error {
	for _, obj := range s.Objects() {
		g := obj.Grid
		shape := g.Shape()
		hs := g.HalfSize()
		fmt.Fprintf(w, "object %-10q shape=(%d,%d,%d) area=%d dx=%.3f half=(%.3f,%.3f,%.3f) occupied=%d/%d\n",
			obj.Name, shape[0], shape[1], shape[2], g.Area(), g.DX(),
			hs[0], hs[1], hs[2], g.OccupiedCount(), g.Len())
	}

	contacts := s.Scan()
	if len(contacts) == 0 {
		fmt.Fprintln(w, "no bounding-box overlaps")
		return nil
	}
	for _, c := range contacts {
		center := c.Overlap.Center()
		size := c.Overlap.Size()
		fmt.Fprintf(w, "overlap %q x %q center=(%.3f,%.3f,%.3f) size=(%.3f,%.3f,%.3f)",
			c.A, c.B, center[0], center[1], center[2], size[0], size[1], size[2])
		if c.Touching {
			fmt.Fprintf(w, " voxels=(%d,%d) at=(%.3f,%.3f,%.3f)/(%.3f,%.3f,%.3f)",
				c.VoxelA, c.VoxelB,
				c.WorldA[0], c.WorldA[1], c.WorldA[2],
				c.WorldB[0], c.WorldB[1], c.WorldB[2])
		} else {
			fmt.Fprint(w, " no voxel contact")
		}
		fmt.Fprintln(w)
	}
	return nil
}
