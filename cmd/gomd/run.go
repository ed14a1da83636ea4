/*
 * run.go, part of gomd
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
	"io"
	"time"

	md "github.com/rmera/gomd"
	"github.com/rmera/gomd/ff"
	"github.com/rmera/gomd/integrate"
	"github.com/rmera/gomd/simulate"
)

//runSimulation performs the whole protocol: read, parametrize,
//minimize, simulate, and print the timing summary.
func runSimulation(out io.Writer, cfg *Config) error {
	fmt.Fprintln(out, "Hello!")
	fmt.Fprintln(out, "goMD version:", md.Version)
	start := time.Now()

	mol, err := md.PDBRead(cfg.Input)
	if err != nil {
		return err
	}
	forcefield, err := ff.New("amber14-all", "amber14/tip3pfb")
	if err != nil {
		return err
	}
	method, err := cfg.nonbondedMethod()
	if err != nil {
		return err
	}
	policy, err := cfg.constraintPolicy()
	if err != nil {
		return err
	}
	opts := ff.DefaultOptions()
	opts.Method = method
	opts.Cutoff = cfg.Cutoff
	opts.Constraints = policy
	opts.FlexibleWater = cfg.FlexibleWater
	opts.Threads = cfg.Threads
	sys, err := forcefield.CreateSystem(mol, opts)
	if err != nil {
		return err
	}
	integrator := integrate.NewLangevinMiddle(cfg.Temperature, cfg.Friction, cfg.Timestep)
	if cfg.Seed != 0 {
		integrator.SetSeed(cfg.Seed)
	}
	sim, err := simulate.New(mol, sys, integrator)
	if err != nil {
		return err
	}
	defer sim.Close()

	minimizeStart := time.Now()
	if err := sim.MinimizeEnergy(0, 0); err != nil {
		return err
	}
	minimizeEnd := time.Now()

	if cfg.MinimizeOnly {
		if err := md.PDBWrite(cfg.Output, sim.Positions(), mol, nil); err != nil {
			return err
		}
		fmt.Fprintf(out, "Energy minimization took %.2f seconds\n", minimizeEnd.Sub(minimizeStart).Seconds())
		fmt.Fprintf(out, "Total time for the script: %.2f seconds\n", time.Since(start).Seconds())
		return nil
	}

	pdbRep, err := simulate.NewPDBReporter(cfg.Output, cfg.ReportInterval, mol)
	if err != nil {
		return err
	}
	sim.AddReporter(pdbRep)
	sim.AddReporter(simulate.NewStateDataReporter(out, cfg.ReportInterval))
	if cfg.Trajectory != "" {
		stfRep, err := simulate.NewSTFReporter(cfg.Trajectory, cfg.ReportInterval, mol.Len())
		if err != nil {
			return err
		}
		sim.AddReporter(stfRep)
	}

	simulateStart := time.Now()
	if err := sim.Step(cfg.Steps); err != nil {
		return err
	}
	simulateEnd := time.Now()
	if err := sim.Close(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Energy minimization took %.2f seconds\n", minimizeEnd.Sub(minimizeStart).Seconds())
	fmt.Fprintf(out, "Simulation steps took %.2f seconds\n", simulateEnd.Sub(simulateStart).Seconds())
	fmt.Fprintf(out, "Total time for the script: %.2f seconds\n", time.Since(start).Seconds())
	return nil
}
