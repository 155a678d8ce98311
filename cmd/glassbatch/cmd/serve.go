/*
 * serve.go, part of glassbatch.
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
	"github.com/rmera/glassbatch/batchjson"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Talk JSON lines over stdin/stdout with a front end",
		Long: `Start from the default batch, print its report as one JSON line, and then
read one edit per line from stdin, answering each with the new report
(or an error object). Edits look like:

  {"op":"formula","index":1,"formula":"Na2CO3"}
  {"op":"fraction","index":0,"value":25}
  {"op":"mass","value":10}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := batchjson.NewSession(a.table)
			a.log.Info("serving", zap.Int("elements", a.table.Len()))
			return s.Serve(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
