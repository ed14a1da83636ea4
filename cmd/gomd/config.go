/*
 * config.go, part of gomd
 *
 * Copyright 2025 Raul Mera <rmeraa{at}academicosDOTutaDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/rmera/gomd/ff"
	"github.com/rmera/gomd/mm"
)

//Config holds everything the run command needs. The values mirror
//the knobs of the classic water-box protein example: PME, 1 nm
//cutoff, bonds to hydrogen constrained, Langevin middle at 300 K.
type Config struct {
	Input          string  `koanf:"input"`
	Output         string  `koanf:"output"`
	Trajectory     string  `koanf:"trajectory"` //optional compressed trajectory, empty to disable
	Steps          int     `koanf:"steps"`
	ReportInterval int     `koanf:"report_interval"`
	Temperature    float64 `koanf:"temperature"` //K
	Friction       float64 `koanf:"friction"`    //1/ps
	Timestep       float64 `koanf:"timestep"`    //ps
	Cutoff         float64 `koanf:"cutoff"`      //nm
	Method         string  `koanf:"method"`
	Constraints    string  `koanf:"constraints"`
	Seed           int64   `koanf:"seed"` //0 means unseeded
	Threads        int     `koanf:"threads"`
	FlexibleWater  bool    `koanf:"flexible_water"`
	MinimizeOnly   bool    `koanf:"minimize_only"`
}

//configDefaults are the hardcoded constants of the original protocol.
func configDefaults() map[string]interface{} {
	return map[string]interface{}{
		"input":           "input.pdb",
		"output":          "output.pdb",
		"trajectory":      "",
		"steps":           2000,
		"report_interval": 1000,
		"temperature":     300.0,
		"friction":        1.0,
		"timestep":        0.004,
		"cutoff":          1.0,
		"method":          "PME",
		"constraints":     "HBonds",
		"seed":            0,
		"threads":         0,
		"flexible_water":  false,
		"minimize_only":   false,
	}
}

//loadConfig builds the configuration with the usual precedence:
//defaults, then gomd.yaml (or the file given), then GOMD_* environment
//variables, then explicitly-set flags.
func loadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(configDefaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}
	if cfgFile == "" {
		for _, name := range []string{"gomd.yaml", "gomd.yml"} {
			if _, err := os.Stat(name); err == nil {
				cfgFile = name
				break
			}
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
	}
	if err := k.Load(env.Provider("GOMD_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "GOMD_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if _, err := cfg.nonbondedMethod(); err != nil {
		return nil, err
	}
	if _, err := cfg.constraintPolicy(); err != nil {
		return nil, err
	}
	if cfg.Steps < 0 || cfg.ReportInterval <= 0 || cfg.Timestep <= 0 {
		return nil, fmt.Errorf("steps, report-interval and timestep must be positive")
	}
	return &cfg, nil
}

func (c *Config) nonbondedMethod() (mm.NonbondedMethod, error) {
	switch strings.ToLower(c.Method) {
	case "pme":
		return mm.PME, nil
	case "ewald":
		return mm.Ewald, nil
	case "cutoffperiodic":
		return mm.CutoffPeriodic, nil
	case "cutoffnonperiodic":
		return mm.CutoffNonPeriodic, nil
	case "nocutoff":
		return mm.NoCutoff, nil
	}
	return 0, fmt.Errorf("unknown nonbonded method %q", c.Method)
}

func (c *Config) constraintPolicy() (ff.ConstraintPolicy, error) {
	switch strings.ToLower(c.Constraints) {
	case "hbonds":
		return ff.HBonds, nil
	case "none":
		return ff.NoConstraints, nil
	}
	return 0, fmt.Errorf("unknown constraint policy %q", c.Constraints)
}
