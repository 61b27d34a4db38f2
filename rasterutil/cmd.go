/*
Copyright © 2024 the RasterLab authors.
This file is part of RasterLab.

RasterLab is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

RasterLab is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with RasterLab.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package rasterutil wires the rasterlab library into a command-line
// interface, handling configuration, logging, and input fetching.
package rasterutil

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gonum.org/v1/plot/vg"

	"github.com/spatialmodel/rasterlab"
	"github.com/spatialmodel/rasterlab/gridio"
	"github.com/spatialmodel/rasterlab/ncf"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var log = logrus.New()

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to RasterLab.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "loglevel",
			usage: `
              loglevel sets the logging verbosity: debug, info, warn, or error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "var",
			usage: `
              var specifies which variable to read from a NetCDF file that
              holds more than one grid. It is ignored for other formats.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{infoCmd.Flags(), convertCmd.Flags(), plotCmd.Flags(), clipCmd.Flags()},
		},
		{
			name: "min",
			usage: `
              min specifies the smallest cell value kept by clip. Cells below
              it are replaced. NaN (the default) disables the lower bound.`,
			defaultVal: math.NaN(),
			flagsets:   []*pflag.FlagSet{clipCmd.Flags()},
		},
		{
			name: "max",
			usage: `
              max specifies the largest cell value kept by clip. Cells above
              it are replaced. NaN (the default) disables the upper bound.`,
			defaultVal: math.NaN(),
			flagsets:   []*pflag.FlagSet{clipCmd.Flags()},
		},
		{
			name: "fill",
			usage: `
              fill specifies the replacement value for clipped cells.
              NaN (the default) marks them as missing. Cells that were
              already missing in the input stay missing either way.`,
			defaultVal: math.NaN(),
			flagsets:   []*pflag.FlagSet{clipCmd.Flags()},
		},
		{
			name: "width",
			usage: `
              width specifies the plot width in centimeters.`,
			defaultVal: 15.0,
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name: "height",
			usage: `
              height specifies the plot height in centimeters.`,
			defaultVal: 12.0,
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("RASTERLAB")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(infoCmd)
	Root.AddCommand(convertCmd)
	Root.AddCommand(plotCmd)
	Root.AddCommand(diffCmd)
	Root.AddCommand(clipCmd)
	Root.AddCommand(unpackCmd)
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "rasterlab",
	Short: "A toolkit for labeled geospatial grids.",
	Long: `RasterLab manipulates labeled two-dimensional geospatial grids such as
digital elevation models and groundwater heads. Use the subcommands
specified below to access the functionality.

Configuration can be changed by using a configuration file (and providing
the path to the file using the --config flag), by using command-line
arguments, or by setting environment variables in the format
'RASTERLAB_var' where 'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		if err := setConfig(); err != nil {
			return err
		}
		return setLogLevel(Cfg.GetString("loglevel"))
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of RasterLab.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("RasterLab v%s\n", rasterlab.Version)
	},
	DisableAutoGenTag: true,
}

var infoCmd = &cobra.Command{
	Use:   "info FILE",
	Short: "Summarize a grid file",
	Long: `info prints the dimensions, bounds, and nodata-aware summary
statistics of the grid stored in FILE.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := readGrid(cmd, args[0])
		if err != nil {
			return err
		}
		b := g.Bounds()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 1, ' ', 0)
		fmt.Fprintf(w, "name\t%s\n", g.Name)
		fmt.Fprintf(w, "size\t%d x %d\n", g.Nx(), g.Ny())
		fmt.Fprintf(w, "cell\t%g x %g\n", g.Dx(), g.Dy())
		fmt.Fprintf(w, "bounds\t(%g, %g) - (%g, %g)\n", b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
		fmt.Fprintf(w, "min\t%g\n", g.Min())
		fmt.Fprintf(w, "max\t%g\n", g.Max())
		fmt.Fprintf(w, "mean\t%g\n", g.Mean())
		fmt.Fprintf(w, "nodata\t%d of %d cells\n", g.CountNoData(), g.Nx()*g.Ny())
		for _, k := range sortedAttrKeys(g.Attrs) {
			fmt.Fprintf(w, "attr %s\t%s\n", k, g.Attrs[k])
		}
		return w.Flush()
	},
	DisableAutoGenTag: true,
}

var convertCmd = &cobra.Command{
	Use:   "convert SRC DST",
	Short: "Convert a grid between file formats",
	Long: `convert reads the grid in SRC and writes it to DST, choosing both
file formats from the file name extensions (.idf, .nc, .asc, .asc.gz).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := readGrid(cmd, args[0])
		if err != nil {
			return err
		}
		dst, err := checkOutputFile(args[1])
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"grid": g.Name, "file": dst}).Info("writing grid")
		return gridio.WriteFile(dst, g)
	},
	DisableAutoGenTag: true,
}

var plotCmd = &cobra.Command{
	Use:   "plot FILE OUT.png",
	Short: "Render a grid as a heat map",
	Long: `plot renders the grid in FILE as a heat map image and writes it
to OUT.png.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := readGrid(cmd, args[0])
		if err != nil {
			return err
		}
		out, err := checkOutputFile(args[1])
		if err != nil {
			return err
		}
		w := vg.Length(Cfg.GetFloat64("width")) * vg.Centimeter
		h := vg.Length(Cfg.GetFloat64("height")) * vg.Centimeter
		log.WithFields(logrus.Fields{"grid": g.Name, "file": out}).Info("rendering grid")
		return rasterlab.SavePNG(g, out, w, h)
	},
	DisableAutoGenTag: true,
}

var diffCmd = &cobra.Command{
	Use:   "diff A B DST",
	Short: "Subtract two aligned grids",
	Long: `diff reads the grids in A and B, which must share coordinate
labels, and writes their elementwise difference A - B to DST. Cells
missing in either input are missing in the result.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := readGrid(cmd, args[0])
		if err != nil {
			return err
		}
		b, err := readGrid(cmd, args[1])
		if err != nil {
			return err
		}
		d, err := a.Sub(b)
		if err != nil {
			return err
		}
		d.Rename(a.Name + "-" + b.Name)
		dst, err := checkOutputFile(args[2])
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"grid": d.Name, "file": dst}).Info("writing difference")
		return gridio.WriteFile(dst, d)
	},
	DisableAutoGenTag: true,
}

var clipCmd = &cobra.Command{
	Use:   "clip FILE DST",
	Short: "Replace cells outside a value range",
	Long: `clip reads the grid in FILE and replaces every cell whose value
falls outside the range given by --min and --max. By default replaced
cells become missing; --fill substitutes an ordinary value instead.
Cells that were already missing in the input stay missing: because
missing values compare false against any threshold, a bare comparison
mask would otherwise overwrite them too.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		min := Cfg.GetFloat64("min")
		max := Cfg.GetFloat64("max")
		if math.IsNaN(min) && math.IsNaN(max) {
			return fmt.Errorf("rasterutil: clip requires at least one of --min and --max")
		}
		g, err := readGrid(cmd, args[0])
		if err != nil {
			return err
		}
		cond := g.NotNoData()
		if !math.IsNaN(min) {
			if cond, err = cond.And(g.GreaterEqual(min)); err != nil {
				return err
			}
		}
		if !math.IsNaN(max) {
			if cond, err = cond.And(g.LessEqual(max)); err != nil {
				return err
			}
		}
		var out *rasterlab.Grid
		if fill := Cfg.GetFloat64("fill"); math.IsNaN(fill) {
			out, err = g.Where(cond)
		} else {
			out, err = g.ReplaceWhere(cond, fill)
		}
		if err != nil {
			return err
		}
		dst, err := checkOutputFile(args[1])
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"grid": out.Name, "file": dst, "kept": cond.Count(),
		}).Info("writing clipped grid")
		return gridio.WriteFile(dst, out)
	},
	DisableAutoGenTag: true,
}

var unpackCmd = &cobra.Command{
	Use:   "unpack ARCHIVE.zip DIR",
	Short: "Extract a zip archive of grid files",
	Long: `unpack downloads ARCHIVE.zip if it is a URL and extracts its
contents into DIR, creating the directory if needed.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := maybeDownload(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"archive": src, "dir": args[1]}).Info("extracting archive")
		return Unzip(src, args[1])
	},
	DisableAutoGenTag: true,
}

// readGrid fetches path if it is remote and reads the grid it holds.
// The --var option selects the variable for NetCDF files that hold
// more than one.
func readGrid(cmd *cobra.Command, path string) (*rasterlab.Grid, error) {
	local, err := maybeDownload(cmd.Context(), os.ExpandEnv(path))
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"file": local}).Debug("reading grid")
	if v := Cfg.GetString("var"); v != "" && isNetCDF(local) {
		return ncf.ReadFile(local, v)
	}
	return gridio.ReadFile(local)
}

// setLogLevel configures the package logger verbosity.
func setLogLevel(level string) error {
	l, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("rasterutil: %v", err)
	}
	log.SetLevel(l)
	return nil
}
