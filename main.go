/*
 * This file is part of the Go Cesium Point Cloud Tiler distribution (https://github.com/mfbonfigli/gocesiumtiler).
 * Copyright (c) 2019 Massimo Federico Bonfigli - m.federico.bonfigli@gmail.com
 *
 * This program is free software; you can redistribute it and/or modify it
 * under the terms of the GNU Lesser General Public License Version 3 as
 * published by the Free Software Foundation;
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
 * Lesser General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program. If not, see <http://www.gnu.org/licenses/>.
 *
 * This software also uses third party components. You can find information
 * on their credits and licensing in the file LICENSE-3RD-PARTIES.md that
 * you should have received togheter with the source code.
 */

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/ecopia-map/las_voxelizer/internal/config"
	"github.com/ecopia-map/las_voxelizer/internal/voxelizer"
	"github.com/ecopia-map/las_voxelizer/pkg"
	"github.com/ecopia-map/las_voxelizer/pkg/algorithm_manager/std_algorithm_manager"
	"github.com/ecopia-map/las_voxelizer/tools"
)

const VERSION = "1.0.0"

const logo = `
  _                               _ _
 | | __ _ ___  __   _______  ____| (_)_______ _ __
 | |/ _  / __| \ \ / / _ \ \/ / _ \ | |_  / _ \ '__|
 | | (_| \__ \  \ V / (_) >  <  __/ | |/ /  __/ |
 |_|\__,_|___/   \_/ \___/_/\_\___|_|_/___\___|_|
  A LiDAR voxel grid downsampler written in golang
  Copyright YYYY - Ecopia Map
`

var exit = os.Exit

// Flushes glog before exiting with status 1, deferred calls do not run on exit
func fatal(v ...interface{}) {
	glog.Flush()
	_ = log.Output(2, fmt.Sprint(v...))
	exit(1)
}

func main() {
	defer glog.Flush()

	log.SetPrefix("[las_voxelizer] ")
	log.SetFlags(log.LUTC | log.Ldate | log.Lmicroseconds | log.Lshortfile)

	flagsGlobal := tools.ParseFlagsGlobal()
	if *flagsGlobal.Help {
		showHelp()
		return
	}
	if *flagsGlobal.Version {
		printVersion()
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		fatal("Please specify a subcommand [voxelize|inspect].")
	}
	cmd, args := args[0], args[1:]

	switch voxelizer.ParseCommand(cmd) {
	case voxelizer.CommandVoxelize:
		mainCommandVoxelize(args)
	case voxelizer.CommandInspect:
		mainCommandInspect(args)
	default:
		fatal(fmt.Sprintf("Unrecognized command [%q]. Command must be one of [voxelize|inspect]", cmd))
	}
}

func mainCommandVoxelize(args []string) {
	// Retrieve command line args
	flags, err := tools.ParseFlagsForCommandVoxelize(args)
	if err != nil {
		fatal("Error parsing input parameters: ", err)
	}

	// Prints the command line flag description
	if *flags.Help {
		showHelp()
		fmt.Println("voxelize flags: ")
		flags.PrintDefaults(os.Stdout)
		return
	}

	if *flags.Version {
		printVersion()
		return
	}

	// set logging and timestamp logging
	if *flags.Silent {
		tools.DisableLogger()
	} else {
		printLogo()
	}
	if !*flags.LogTimestamp {
		tools.DisableLoggerTimestamp()
	}

	// defaults, then config file, then flags given on the command line
	opts := voxelizer.DefaultVoxelizerOptions()
	if *flags.Config != "" {
		cfg, err := config.LoadConfig(*flags.Config)
		if err != nil {
			fatal("Error loading config: ", err)
		}
		cfg.ApplyTo(opts)
	}
	flags.ApplyTo(opts)
	log.Println("options", tools.FmtJSONString(opts))

	if msg, res := validateOptionsForCommandVoxelize(opts); !res {
		fatal("Error parsing input parameters: " + msg)
	}

	defer timeTrack(time.Now(), "voxelization")
	err = pkg.NewVoxelizer(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(opts)).RunVoxelizer(opts)

	if err != nil {
		fatal("Error while voxelizing: ", err)
	} else {
		tools.LogOutput("Voxelization Completed")
	}
}

// Validates the input options provided to the command line tool checking
// that the input file exists and the numeric parameters are in range
func validateOptionsForCommandVoxelize(opts *voxelizer.VoxelizerOptions) (string, bool) {
	if _, err := os.Stat(opts.Input); os.IsNotExist(err) {
		return "Input file/folder not found", false
	}

	if err := opts.Validate(); err != nil {
		return err.Error(), false
	}

	return "", true
}

func mainCommandInspect(args []string) {
	flags, err := tools.ParseFlagsForCommandInspect(args)
	if err != nil {
		fatal("Error parsing input parameters: ", err)
	}

	if *flags.Help {
		showHelp()
		fmt.Println("inspect flags: ")
		flags.PrintDefaults(os.Stdout)
		return
	}

	tools.DisableLoggerTimestamp()

	opts := flags.ToOptions()
	if msg, res := validateOptionsForCommandInspect(opts); !res {
		fatal("Error parsing input parameters: " + msg)
	}

	report, err := pkg.NewInspector(std_algorithm_manager.NewAlgorithmManager(opts)).RunInspector(opts)
	if err != nil {
		fatal("Error while inspecting: ", err)
	}

	fmt.Printf("point #%d at (%.3f, %.3f, %.3f)\n", report.Index, report.Position.X, report.Position.Y, report.Position.Z)
	fmt.Printf("height above ground: %.2f m (ground level %.2f)\n", report.Height, report.GroundLevel)
	if report.Geographic != nil {
		fmt.Printf("EPSG:%d: %.8f, %.8f\n", report.TargetSrid, report.Geographic.X, report.Geographic.Y)
	}
}

func validateOptionsForCommandInspect(opts *voxelizer.VoxelizerOptions) (string, bool) {
	if _, err := os.Stat(opts.Input); os.IsNotExist(err) {
		return "Input file not found", false
	}

	if err := opts.ValidateInspect(); err != nil {
		return err.Error(), false
	}

	return "", true
}

func timeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	tools.LogOutput(fmt.Sprintf("%s took %s", name, elapsed))
}

func printLogo() {
	fmt.Println(strings.ReplaceAll(logo, "YYYY", strconv.Itoa(time.Now().Year())))
}

func showHelp() {
	printLogo()
	fmt.Println("***")
	fmt.Println("las_voxelizer loads a LAS/LAZ point cloud, optionally samples it, reduces it on a voxel grid and writes the result as a PLY file")
	printVersion()
	fmt.Println("***")
	fmt.Println("")
	fmt.Println("Usage: las_voxelizer [global flags] voxelize|inspect [flags]")
	fmt.Println("Global flags: ")
	flag.CommandLine.SetOutput(os.Stdout)
	flag.PrintDefaults()
}

func printVersion() {
	fmt.Println("v." + VERSION)
}
