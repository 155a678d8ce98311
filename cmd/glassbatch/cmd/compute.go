/*
 * compute.go, part of glassbatch.
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
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	batch "github.com/rmera/glassbatch"
	"github.com/rmera/glassbatch/batchjson"
	"github.com/rmera/glassbatch/batchplot"
	"github.com/rmera/glassbatch/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginTop(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

func newComputeCmd(a *app) *cobra.Command {
	var (
		mass        float64
		asJSON      bool
		plotFile    string
		weightsFile string
	)
	cmd := &cobra.Command{
		Use:   "compute [batch.yaml]",
		Short: "Compute batch weights and elemental composition",
		Long: `Compute the batch weights of the components in a batch file, their
gravimetric-factor-adjusted and product weights, and the elemental
composition of the batch. Without a file, the default batch
(CaO 30, La2O3 10, H3BO3 60) is used.

Example:
  glassbatch compute mybatch.yaml --mass 20
  glassbatch compute --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			S := batch.DefaultState()
			if len(args) == 1 {
				bf, err := config.ReadBatch(args[0])
				if err != nil {
					return err
				}
				if S, err = bf.State(a.cfg.BatchMass); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("mass") {
				var err error
				if S, err = batch.Apply(S, batch.SetDesiredMass{Mass: mass}); err != nil {
					return err
				}
			}
			R := batch.Compute(S, a.table)
			a.log.Debug("batch computed",
				zap.Int("components", len(S.Components)),
				zap.Float64("desired_mass", S.DesiredMass),
				zap.Float64("total_quantity", R.Precursors.TotalQuantity))
			if R.Warning != "" {
				a.warn(cmd, R.Warning)
			}
			for _, r := range R.Precursors.Results {
				if !r.Resolved && r.Formula != "" {
					a.log.Warn("formula can't be resolved", zap.String("formula", r.Formula))
				}
			}
			if plotFile != "" {
				p, err := batchplot.CompositionChart(R.Elements, "Element composition")
				if err == nil {
					err = batchplot.Save(p, plotFile)
				}
				if err != nil {
					return err
				}
				a.log.Info("composition chart saved", zap.String("file", plotFile))
			}
			if weightsFile != "" {
				p, err := batchplot.WeightsChart(R.Adjusted, "Batch weights")
				if err == nil {
					err = batchplot.Save(p, weightsFile)
				}
				if err != nil {
					return err
				}
				a.log.Info("weights chart saved", zap.String("file", weightsFile))
			}
			if asJSON {
				if jerr := batchjson.SendReport(R, cmd.OutOrStdout()); jerr != nil {
					return jerr
				}
				return nil
			}
			a.printReport(cmd.OutOrStdout(), R)
			return nil
		},
	}
	cmd.Flags().Float64Var(&mass, "mass", 5, "desired batch mass in grams (overrides the batch file)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().StringVar(&plotFile, "plot", "", "save an element composition chart to this file (png, svg, pdf)")
	cmd.Flags().StringVar(&weightsFile, "weights-plot", "", "save a batch weight chart to this file")
	return cmd
}

func renderTable(headers []string, rows [][]string, numeric func(col int) bool) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if numeric(col) {
				return numberStyle
			}
			return cellStyle
		})
	return t.String()
}

func (a *app) mwCell(r batch.ComponentResult) string {
	if !r.Resolved {
		return mutedStyle.Render("n/a")
	}
	return a.num(r.MW)
}

func (a *app) viewTable(v batch.View, withGF bool) string {
	headers := []string{"Formula", "Matrix %", "MW", "Mol qty", "Weight (g)"}
	if withGF {
		headers = []string{"Product", "Precursor", "Matrix %", "Precursor MW", "GF", "Mol qty", "Weight (g)"}
	}
	rows := make([][]string, 0, len(v.Results)+1)
	for _, r := range v.Results {
		if withGF {
			rows = append(rows, []string{r.ProductFormula, r.Formula, a.num(r.Fraction), a.mwCell(r), a.num(r.GF), a.num(r.MolarQuantity), a.num(r.BatchWeight)})
			continue
		}
		formula := r.Formula
		if r.GFApplied {
			formula += " (GF)"
		}
		rows = append(rows, []string{formula, a.num(r.Fraction), a.mwCell(r), a.num(r.MolarQuantity), a.num(r.BatchWeight)})
	}
	total := make([]string, len(headers))
	total[0] = "Total"
	total[len(total)-2] = a.num(v.TotalQuantity)
	total[len(total)-1] = a.num(v.TotalWeight)
	rows = append(rows, total)
	firstNumeric := 1
	if withGF {
		firstNumeric = 2
	}
	return renderTable(headers, rows, func(col int) bool { return col >= firstNumeric })
}

func (a *app) printReport(out io.Writer, R *batch.Report) {
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Batch of %s g", a.num(R.DesiredMass))))
	fmt.Fprintln(out, a.viewTable(R.Precursors, false))

	conv := R.Conversion
	if R.HasGF {
		fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Gravimetric factor %s x %s -> %s x %s: %s",
			a.num(conv.PrecursorMoles), conv.Precursor, a.num(conv.ProductMoles), conv.Product, a.num(R.GF))))
		fmt.Fprintln(out, a.viewTable(R.Adjusted, false))
	} else {
		fmt.Fprintln(out, titleStyle.Render("Gravimetric factor: n/a"))
	}

	if len(R.Products.Results) > 0 {
		fmt.Fprintln(out, titleStyle.Render("Products"))
		fmt.Fprintln(out, a.viewTable(R.Products, true))
	}

	if len(R.Elements) > 0 {
		fmt.Fprintln(out, titleStyle.Render("Element composition"))
		rows := make([][]string, len(R.Elements))
		for i, e := range R.Elements {
			rows[i] = []string{lipgloss.NewStyle().Foreground(lipgloss.Color(e.Color)).Render("■") + " " + e.Element, a.num(e.Percentage)}
		}
		fmt.Fprintln(out, renderTable([]string{"Element", "%"}, rows, func(col int) bool { return col == 1 }))
	}
}
