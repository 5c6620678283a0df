/*
Copyright © 2019 the kappasweep authors.
This file is part of kappasweep.

kappasweep is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

kappasweep is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with kappasweep.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package kappautil contains the command-line interface to kappasweep.
package kappautil

import (
	"fmt"
	"os"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/kappasweep"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

// p1 is the reference pressure of the default sweep [Pa].
const p1 = 101325.

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to kappasweep.
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
			name: "LogLevel",
			usage: `
              LogLevel specifies the minimum level of log messages to
              print: one of debug, info, warning or error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "OutputDir",
			usage: `
              OutputDir is the directory where the result tables are
              written. It is created if it doesn't exist. It can contain
              environment variables.`,
			shorthand:  "o",
			defaultVal: "./out/",
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags(), summaryCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "DescriptorDir",
			usage: `
              DescriptorDir is the directory holding the particle and
              interaction descriptor files. It can contain environment
              variables.`,
			shorthand:  "d",
			defaultVal: "./data/",
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "ParticleFile",
			usage: `
              ParticleFile is the name of the particle descriptor file
              within DescriptorDir.`,
			defaultVal: "particles.yaml",
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "InteractionFile",
			usage: `
              InteractionFile is the name of the interaction descriptor
              file within DescriptorDir.`,
			defaultVal: "interaction.yaml",
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "Molecule",
			usage: `
              Molecule is the name of the molecular species in the mixture.`,
			defaultVal: "N2",
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "Atom",
			usage: `
              Atom is the name of the atomic species in the mixture.`,
			defaultVal: "N",
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "SpeciesSlots",
			usage: `
              SpeciesSlots is the number of molecular density columns in
              each result table. Unused columns are filled with zeros.`,
			defaultVal: kappasweep.DefaultSpeciesSlots,
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "CollisionModel",
			usage: `
              CollisionModel is the collision model used for transport
              coefficients: 'rs' (rigid sphere) or 'vss' (variable soft
              sphere).`,
			defaultVal: "rs",
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "SinglePressure",
			usage: `
              SinglePressure specifies whether to stop the sweep after the
              first pressure value. Set it to false to sweep every pressure.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "StrictExit",
			usage: `
              StrictExit specifies whether a failed sweep should cause a
              non-zero exit status. By default, errors are logged and the
              program exits normally.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "Pressure.Start",
			usage: `
              Pressure.Start is the first pressure of the sweep [Pa].`,
			defaultVal: 0.25 * p1,
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "Pressure.Step",
			usage: `
              Pressure.Step is the pressure increment of the sweep [Pa].`,
			defaultVal: 0.75 * p1,
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "Pressure.End",
			usage: `
              Pressure.End is the last pressure of the sweep [Pa]. Half a
              step is added to it to allow for rounding.`,
			defaultVal: 1.75 * p1,
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "Fraction.Start",
			usage: `
              Fraction.Start is the first molecular mole fraction of the sweep.`,
			defaultVal: 0.10,
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "Fraction.Step",
			usage: `
              Fraction.Step is the molecular mole fraction increment of the sweep.`,
			defaultVal: 0.40,
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "Fraction.End",
			usage: `
              Fraction.End is the last molecular mole fraction of the sweep.
              Half a step is added to it to allow for rounding.`,
			defaultVal: 0.90,
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "Temperature.Start",
			usage: `
              Temperature.Start is the first temperature of the sweep [K].`,
			defaultVal: 5.0,
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "Temperature.Step",
			usage: `
              Temperature.Step is the temperature increment of the sweep [K].`,
			defaultVal: 5.0,
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "Temperature.End",
			usage: `
              Temperature.End is the last temperature of the sweep [K].
              Half a step is added to it to allow for rounding.`,
			defaultVal: 10000.0,
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "Dataset",
			usage: `
              Dataset is the result table to summarize or plot. The default
              is the global table in OutputDir.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{summaryCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "XLSXFile",
			usage: `
              XLSXFile, if specified, is a Microsoft Excel file to save the
              summary table to.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{summaryCmd.Flags()},
		},
		{
			name: "Plot.X",
			usage: `
              Plot.X is the column to use for the horizontal axis.`,
			defaultVal: "T",
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name: "Plot.Y",
			usage: `
              Plot.Y is an expression of column names to use for the
              vertical axis, for example 'shear_viscosity * 1e6'.`,
			defaultVal: "shear_viscosity",
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name: "Plot.Output",
			usage: `
              Plot.Output is the image file to save the plot to. The format
              is determined by the extension.`,
			defaultVal: "plot.png",
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("KAPPASWEEP")
	Cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Cfg.AutomaticEnv()

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
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
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
	Root.AddCommand(sweepCmd)
	Root.AddCommand(summaryCmd)
	Root.AddCommand(plotCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := Cfg.ReadInConfig(); err != nil {
			return &kappasweep.ConfigurationError{Source: cfgpath,
				Err: fmt.Errorf("problem reading configuration file: %v", err)}
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "kappasweep",
	Short: "A parameter sweep of gas mixture transport coefficients.",
	Long: `kappasweep sweeps a grid of pressures, molecular mole fractions and
temperatures through a kinetic model of an atom/molecule gas mixture and
records the vibrational level populations and transport coefficients at
each point in semicolon-delimited tables.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'KAPPASWEEP_var' where 'var' is the
name of the variable to be set, with '.' replaced by '_'. Many configuration
variables are additionally allowed to contain environment variables within them.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of kappasweep.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("kappasweep v%s\n", kappasweep.Version)
	},
	DisableAutoGenTag: true,
}

// sweepCmd runs a sweep.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a measurement sweep.",
	Long: `sweep loads the particle and interaction descriptors, then evaluates
the mixture model at every point of the configured pressure, mole fraction and
temperature grid, writing the results to a global table, one table per
pressure and one table per pressure and mole fraction.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := Logger(Cfg)
		if err != nil {
			return err
		}
		log.Out = cmd.OutOrStderr()
		_, err = Sweep(Cfg, log)
		if err != nil {
			if Cfg.GetBool("StrictExit") {
				return err
			}
			log.WithError(err).Warn("sweep did not complete; exiting normally because StrictExit is false")
		}
		return nil
	},
	DisableAutoGenTag: true,
}

// summaryCmd prints column statistics of a result table.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize a result table.",
	Long: `summary prints the mean, sample standard deviation and range of every
column of a result table, and optionally saves them to a Microsoft Excel file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Summary(Cfg, cmd.OutOrStdout())
	},
	DisableAutoGenTag: true,
}

// plotCmd plots a result table.
var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Plot a result table.",
	Long: `plot creates a scatter plot of an expression of result table columns
(Plot.Y) against a column (Plot.X).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Plot(Cfg)
	},
	DisableAutoGenTag: true,
}
