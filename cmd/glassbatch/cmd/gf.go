/*
 * gf.go, part of glassbatch.
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
)

func newGFCmd(a *app) *cobra.Command {
	var precursorMoles, productMoles float64
	cmd := &cobra.Command{
		Use:   "gf <precursor> <product>",
		Short: "Gravimetric factor between a precursor and its product",
		Long: `Print the gravimetric factor
  GF = (precursor moles x MW(precursor)) / (product moles x MW(product))

Example:
  glassbatch gf H3BO3 B2O3 --precursor-moles 2 --product-moles 1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv := batch.Conversion{Precursor: args[0], Product: args[1], PrecursorMoles: precursorMoles, ProductMoles: productMoles}
			gf, err := conv.Factor(a.table)
			if err != nil {
				return fmt.Errorf("gravimetric factor: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.num(gf))
			return nil
		},
	}
	cmd.Flags().Float64Var(&precursorMoles, "precursor-moles", 1, "moles of precursor in the reaction")
	cmd.Flags().Float64Var(&productMoles, "product-moles", 1, "moles of product in the reaction")
	return cmd
}
