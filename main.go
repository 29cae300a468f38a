// cvoxel voxelizes primitive solids into rigid occupancy grids and
// reports world-space intersections between them. With no arguments it
// runs a built-in demo scene; otherwise it evaluates a scene script or a
// YAML scene file.
package main

import (
	"flag"
	"log"
	"os"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("cvoxel: ")

	scriptPath := flag.String("script", "", "scene script to evaluate")
	scenePath := flag.String("scene", "", "YAML scene file to build")
	flag.Parse()

	app := NewApp()

	var err error
	switch {
	case *scriptPath != "" && *scenePath != "":
		log.Fatal("use either -script or -scene, not both")
	case *scriptPath != "":
		err = app.RunScriptFile(*scriptPath, os.Stdout)
	case *scenePath != "":
		err = app.RunSceneFile(*scenePath, os.Stdout)
	default:
		err = app.RunDemo(os.Stdout)
	}
	if err != nil {
		log.Fatal(err)
	}
}
