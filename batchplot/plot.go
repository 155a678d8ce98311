/*
 * plot.go, part of glassbatch.
 *
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

// Package batchplot draws glassbatch results with gonum/plot.
package batchplot

import (
	"fmt"
	"image/color"
	"io"
	"path/filepath"

	batch "github.com/rmera/glassbatch"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Size of the saved plots.
const (
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch
)

var defaultColor = color.RGBA{R: 30, G: 136, B: 229, A: 255}

// hexColor parses a "#rrggbb" color hint. Anything else gives the default color.
func hexColor(hint string) color.Color {
	var r, g, b uint8
	if len(hint) != 7 {
		return defaultColor
	}
	if _, err := fmt.Sscanf(hint, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return defaultColor
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func basicBarPlot(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.Y.Label.Text = ylabel
	p.Y.Min = 0
	p.Add(plotter.NewGrid())
	return p
}

// barPlot adds one bar per value, so each can have its own color.
func barPlot(title, ylabel string, labels []string, values []float64, colors []color.Color) (*plot.Plot, error) {
	if len(labels) != len(values) || len(colors) != len(values) {
		panic("barPlot: labels, values and colors must have the same length")
	}
	p := basicBarPlot(title, ylabel)
	for i, v := range values {
		bar, err := plotter.NewBarChart(plotter.Values{v}, vg.Points(20))
		if err != nil {
			return nil, err
		}
		bar.XMin = float64(i)
		bar.Color = colors[i]
		bar.LineStyle.Width = vg.Length(0)
		p.Add(bar)
	}
	p.NominalX(labels...)
	return p, nil
}

// CompositionChart returns a bar chart with the percentage of each element
// in the batch, using the color hints of the elements.
func CompositionChart(elements []batch.ElementComposition, title string) (*plot.Plot, error) {
	if len(elements) == 0 {
		return nil, fmt.Errorf("CompositionChart: no elements to plot")
	}
	labels := make([]string, len(elements))
	values := make([]float64, len(elements))
	colors := make([]color.Color, len(elements))
	for i, e := range elements {
		labels[i] = e.Element
		values[i] = e.Percentage
		colors[i] = hexColor(e.Color)
	}
	p, err := barPlot(title, "Element %", labels, values, colors)
	if err != nil {
		return nil, err
	}
	p.Y.Max = 100
	return p, nil
}

// WeightsChart returns a bar chart with the batch weight, in grams, of each
// component of the view.
func WeightsChart(view batch.View, title string) (*plot.Plot, error) {
	if len(view.Results) == 0 {
		return nil, fmt.Errorf("WeightsChart: empty view")
	}
	labels := make([]string, len(view.Results))
	values := make([]float64, len(view.Results))
	colors := make([]color.Color, len(view.Results))
	for i, r := range view.Results {
		labels[i] = r.Formula
		if labels[i] == "" {
			labels[i] = fmt.Sprintf("#%d", i+1)
		}
		values[i] = r.BatchWeight
		colors[i] = defaultColor
	}
	return barPlot(title, "Weight (g)", labels, values, colors)
}

// Write renders p to w in the given format ("png", "svg", "pdf"...).
func Write(p *plot.Plot, w io.Writer, format string) error {
	wt, err := p.WriterTo(Width, Height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// Save writes p to filename. The format is taken from the extension,
// and a ".png" extension is added if there is none.
func Save(p *plot.Plot, filename string) error {
	if filepath.Ext(filename) == "" {
		filename = filename + ".png"
	}
	if err := p.Save(Width, Height, filename); err != nil {
		return fmt.Errorf("saving %s: %w", filename, err)
	}
	return nil
}
