/*
 * mw.go, part of glassbatch.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 *
 */

package cmd

import (
	"fmt"

	batch "github.com/rmera/glassbatch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMWCmd(a *app) *cobra.Command {
	var showTerms bool
	cmd := &cobra.Command{
		Use:   "mw <formula>...",
		Short: "Molecular weight of one or more formulas",
		Long: `Print the molecular weight of each formula. Formulas are element
symbols followed by optional counts, with no parentheses or hydrates.

Example:
  glassbatch mw La2O3 CaO H3BO3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var failed int
			for _, f := range args {
				if err := batch.CheckFormula(f, a.table); err != nil {
					failed++
					a.log.Warn("invalid formula", zap.String("formula", f), zap.Error(err))
					fmt.Fprintf(out, "%s\tn/a (%s)\n", f, err)
					continue
				}
				mw, err := batch.MolecularWeight(f, a.table)
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s\tn/a (%s)\n", f, err)
					continue
				}
				fmt.Fprintf(out, "%s\t%s\n", f, a.num(mw))
				if showTerms {
					for _, t := range batch.MergeTerms(batch.ParseFormula(f)) {
						m, _ := a.table.Mass(t.Symbol)
						fmt.Fprintf(out, "  %s\t%d x %s\n", t.Symbol, t.Count, a.num(m))
					}
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d formulas could not be resolved", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showTerms, "terms", false, "also print the elements of each formula")
	return cmd
}
