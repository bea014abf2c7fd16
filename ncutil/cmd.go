/*
Copyright © 2019 the ncstructure authors.
This file is part of ncstructure.

ncstructure is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ncstructure is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ncstructure.  If not, see <http://www.gnu.org/licenses/>.
*/


// Package ncutil contains the command-line interface for ncstructure.
package ncutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lnashier/viper"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/ncstructure"
	"github.com/spatialmodel/ncstructure/cloud"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var logger *logrus.Logger

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	logger = logrus.New()
	logger.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	}
	cloud.Notify = func(err error, d time.Duration) {
		logger.WithError(err).Warnf("retrying in %v", d)
	}

	// Options are the configuration options available to ncstructure.
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
			name: "input",
			usage: `
              input specifies the structure to read. It can be a local
              file or a blob in the format 'provider://bucket/key',
              where provider is one of file, gs or s3.`,
			shorthand:  "i",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "output",
			usage: `
              output specifies where to write the result. It can be a
              local file or a blob. If it is empty or '-', the result is
              written to standard output.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "informat",
			usage: `
              informat specifies the format of the input: cdl, ncml or nc.
              If it is empty, the format is determined from the input
              file extension.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "outformat",
			usage: `
              outformat specifies the format of the output of the rename
              command: cdl or ncml. If it is empty, the format is
              determined from the output file extension, or is cdl when
              writing to standard output.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{renameCmd.Flags()},
		},
		{
			name: "plan",
			usage: `
              plan specifies a TOML file listing renames and deletions
              to perform, in order.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{renameCmd.Flags()},
		},
		{
			name: "rename.dimensions",
			usage: `
              rename.dimensions maps old to new dimension names.
              It is applied after the plan.`,
			defaultVal: map[string]string{},
			flagsets:   []*pflag.FlagSet{renameCmd.Flags()},
		},
		{
			name: "rename.variables",
			usage: `
              rename.variables maps old to new variable names.
              It is applied after the plan.`,
			defaultVal: map[string]string{},
			flagsets:   []*pflag.FlagSet{renameCmd.Flags()},
		},
		{
			name: "rename.attributes",
			usage: `
              rename.attributes maps old to new attribute names. Keys
              are of the form 'variable:attribute', or ':attribute' for
              global attributes. It is applied after the plan.`,
			defaultVal: map[string]string{},
			flagsets:   []*pflag.FlagSet{renameCmd.Flags()},
		},
		{
			name: "loglevel",
			usage: `
              loglevel specifies the level of log messages written to
              standard error: debug, info, warning or error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("NCSTRUCTURE")
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
			case map[string]string:
				// Maps are given as JSON on the command line.
				set.String(option.name, "", option.usage)
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
	Root.AddCommand(cdlCmd)
	Root.AddCommand(ncmlCmd)
	Root.AddCommand(genCmd)
	Root.AddCommand(renameCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the log level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("ncstructure: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(Cfg.GetString("loglevel"))
	if err != nil {
		return fmt.Errorf("ncstructure: %v", err)
	}
	logger.SetLevel(level)
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "ncstructure",
	Short: "Convert and edit the structure of netCDF files.",
	Long: `ncstructure reads the structure (dimensions, variables and attributes) of
a classic netCDF file from CDL, NcML or the netCDF file itself, and writes it
as CDL or NcML, or as an empty netCDF file.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'NCSTRUCTURE_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of ncstructure.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ncstructure v%s\n", ncstructure.Version)
	},
	DisableAutoGenTag: true,
}

var cdlCmd = &cobra.Command{
	Use:   "cdl [input]",
	Short: "Write a structure as CDL.",
	Long: `cdl reads a structure and writes it in the Common Data Language format
used by 'ncdump -h'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return convert(cmd, args, FormatCDL)
	},
	DisableAutoGenTag: true,
}

var ncmlCmd = &cobra.Command{
	Use:   "ncml [input]",
	Short: "Write a structure as NcML.",
	Long: `ncml reads a structure and writes it in the NcML format used by
'ncdump -x'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return convert(cmd, args, FormatNcML)
	},
	DisableAutoGenTag: true,
}

var genCmd = &cobra.Command{
	Use:   "gen [input]",
	Short: "Create an empty netCDF file.",
	Long: `gen reads a structure and creates a classic netCDF file with that
structure and no data. The unlimited dimension, if any, is created with
no records.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := load(ctx, args)
		if err != nil {
			return err
		}
		output := Cfg.GetString("output")
		if err := Generate(ctx, s, output); err != nil {
			return err
		}
		logger.WithField("output", output).Info("created netCDF file")
		return nil
	},
	DisableAutoGenTag: true,
}

var renameCmd = &cobra.Command{
	Use:   "rename [input]",
	Short: "Rename or delete parts of a structure.",
	Long: `rename reads a structure, applies the renames and deletions listed in
the --plan file followed by those given in the rename.* options, and writes
the result as CDL or NcML.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := load(ctx, args)
		if err != nil {
			return err
		}
		if path := Cfg.GetString("plan"); path != "" {
			data, err := cloud.ReadFile(ctx, path)
			if err != nil {
				return err
			}
			p, err := ReadPlan(bytes.NewReader(data))
			if err != nil {
				return err
			}
			if err := p.Apply(s); err != nil {
				return err
			}
			logger.WithFields(logrus.Fields{
				"plan":    path,
				"renames": len(p.Rename),
				"deletes": len(p.Delete),
			}).Info("applied plan")
		}

		p := new(Plan)
		var maps [3]map[string]string
		for i, name := range []string{"rename.dimensions", "rename.variables", "rename.attributes"} {
			if maps[i], err = GetStringMapString(name, Cfg); err != nil {
				return err
			}
		}
		p.AddRenames(maps[0], maps[1], maps[2])
		if err := p.Apply(s); err != nil {
			return err
		}

		output := Cfg.GetString("output")
		format := Cfg.GetString("outformat")
		if format == "" && (output == "" || output == "-") {
			format = FormatCDL
		}
		if format, err = formatOf(output, format); err != nil {
			return err
		}
		return save(ctx, cmd, s, output, format)
	},
	DisableAutoGenTag: true,
}

// convert loads the input structure and saves it in the given format.
func convert(cmd *cobra.Command, args []string, format string) error {
	ctx := context.Background()
	s, err := load(ctx, args)
	if err != nil {
		return err
	}
	return save(ctx, cmd, s, Cfg.GetString("output"), format)
}

// load reads the structure named by the first argument, or by the
// input option if there are no arguments.
func load(ctx context.Context, args []string) (*ncstructure.Structure, error) {
	input := Cfg.GetString("input")
	if len(args) > 0 {
		input = args[0]
	}
	if input == "" {
		return nil, errors.New("ncstructure: no input specified")
	}
	s, err := Load(ctx, os.ExpandEnv(input), Cfg.GetString("informat"))
	if err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"input":      input,
		"dimensions": len(s.Dimensions()),
		"variables":  len(s.Variables()),
		"attributes": len(s.Attributes()),
	}).Debug("read structure")
	return s, nil
}

func save(ctx context.Context, cmd *cobra.Command, s *ncstructure.Structure, output, format string) error {
	if err := Save(ctx, cmd.OutOrStdout(), s, os.ExpandEnv(output), format); err != nil {
		return err
	}
	if output != "" && output != "-" {
		logger.WithFields(logrus.Fields{"output": output, "format": format}).Info("wrote structure")
	}
	return nil
}
