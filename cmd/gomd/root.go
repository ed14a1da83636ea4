/*
 * root.go, part of gomd
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
	"github.com/spf13/cobra"

	md "github.com/rmera/gomd"
)

//NewRootCmd returns the gomd command. Running it with no subcommand
//performs the minimize-then-simulate protocol on input.pdb.
func NewRootCmd() *cobra.Command {
	var cfgFile string
	root := &cobra.Command{
		Use:   "gomd",
		Short: "goMD - molecular dynamics of solvated proteins",
		Long: `goMD reads a protein structure in PDB format, parametrizes it with
the bundled Amber force field and TIP3P-FB water, minimizes the
energy and runs Langevin dynamics, writing a trajectory and periodic
state data.

With no flags it reproduces the classic example protocol: PME with a
1 nm cutoff, bonds to hydrogen constrained, 4 fs timestep, 300 K,
2000 steps, reporting every 1000.`,
		Version:       md.Version,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			return runSimulation(cmd.OutOrStdout(), cfg)
		},
	}
	fl := root.Flags()
	fl.String("input", "input.pdb", "input structure, PDB format")
	fl.String("output", "output.pdb", "output trajectory, PDB format")
	fl.String("trajectory", "", "also write a compressed .stf trajectory to this file")
	fl.Int("steps", 2000, "number of dynamics steps")
	fl.Int("report-interval", 1000, "steps between reports")
	fl.Float64("temperature", 300, "thermostat temperature, K")
	fl.Float64("friction", 1, "Langevin friction, 1/ps")
	fl.Float64("timestep", 0.004, "timestep, ps")
	fl.Float64("cutoff", 1, "nonbonded cutoff, nm")
	fl.String("method", "PME", "nonbonded method: PME, Ewald, CutoffPeriodic, CutoffNonPeriodic, NoCutoff")
	fl.String("constraints", "HBonds", "constraint policy: HBonds or None")
	fl.Int64("seed", 0, "random seed for the integrator, 0 for unseeded")
	fl.Int("threads", 0, "goroutines for the nonbonded loop, 0 for all CPUs")
	fl.Bool("flexible-water", false, "keep water internal degrees of freedom")
	fl.Bool("minimize-only", false, "minimize and write the structure, no dynamics")
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default gomd.yaml)")

	root.AddCommand(newPlotCmd())
	return root
}
