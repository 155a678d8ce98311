/*
 * suggest.go, part of glassbatch.
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

func newSuggestCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "suggest <partial formula>",
		Short: "Suggest elements for the last symbol of a formula",
		Long: `List the elements whose symbol or name contain the last (partial)
symbol of the given text, and the formula completed with each of them.
If the text doesn't end in a symbol, it is used as a whole.

Example:
  glassbatch suggest La2O3Ca
  glassbatch suggest boron`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := args[0]
			token := batch.LastSymbolToken(text)
			completing := token != ""
			if !completing {
				token = text
			}
			for _, e := range a.table.Suggest(token, limit) {
				if completing {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", e.Symbol, e.Name, batch.CompleteFormula(text, e.Symbol))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", e.Symbol, e.Name)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", batch.SuggestLimit, "maximum number of suggestions")
	return cmd
}
