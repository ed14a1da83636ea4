/*
 * plot.go, part of gomd
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

	"github.com/spf13/cobra"

	"github.com/rmera/gomd/mdplot"
)

//newPlotCmd returns the plot subcommand, which turns saved state-data
//output into energy and temperature PNGs.
func newPlotCmd() *cobra.Command {
	var prefix string
	cmd := &cobra.Command{
		Use:   "plot [statedata file]",
		Short: "Plot the state data written by a previous run",
		Long: `Plot parses a file with the comma-separated state data a run
prints to the console (redirect it to a file to keep it) and writes
potential energy and temperature plots as PNG files.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := mdplot.EnergyAndTemperature(args[0], prefix); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s_energy.png and %s_temperature.png\n", prefix, prefix)
			return nil
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "gomd", "prefix for the output PNG files")
	return cmd
}
