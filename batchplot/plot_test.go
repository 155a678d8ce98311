/*
 * plot_test.go, part of glassbatch.
 *
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package batchplot

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	batch "github.com/rmera/glassbatch"
	"github.com/rmera/glassbatch/periodic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexColor(Te *testing.T) {
	assert.Equal(Te, color.RGBA{R: 255, G: 13, B: 13, A: 255}, hexColor("#ff0d0d"))
	assert.Equal(Te, defaultColor, hexColor(""))
	assert.Equal(Te, defaultColor, hexColor("red"))
	assert.Equal(Te, defaultColor, hexColor("#gg0000"))
}

func TestCompositionChart(Te *testing.T) {
	R := batch.Compute(batch.DefaultState(), periodic.Default())
	p, err := CompositionChart(R.Elements, "Default batch")
	require.NoError(Te, err)
	assert.Equal(Te, "Default batch", p.Title.Text)
	assert.Equal(Te, 100.0, p.Y.Max)

	var buf bytes.Buffer
	require.NoError(Te, Write(p, &buf, "png"))
	img, err := png.Decode(&buf)
	require.NoError(Te, err)
	assert.Greater(Te, img.Bounds().Dx(), 0)

	_, err = CompositionChart(nil, "empty")
	assert.Error(Te, err)
}

func TestWeightsChart(Te *testing.T) {
	S, err := batch.Apply(batch.DefaultState(), batch.SetCount{N: 4})
	require.NoError(Te, err)
	R := batch.Compute(S, periodic.Default())
	p, err := WeightsChart(R.Precursors, "Weights")
	require.NoError(Te, err)
	var buf bytes.Buffer
	require.NoError(Te, Write(p, &buf, "svg"))
	assert.Contains(Te, buf.String(), "<svg")

	_, err = WeightsChart(R.Products, "Products")
	assert.NoError(Te, err)
	_, err = WeightsChart(batch.View{}, "empty")
	assert.Error(Te, err)
	assert.Error(Te, Write(p, &buf, "bmp-ish"))
}

func TestSave(Te *testing.T) {
	R := batch.Compute(batch.DefaultState(), periodic.Default())
	p, err := CompositionChart(R.Elements, "")
	require.NoError(Te, err)
	dir := Te.TempDir()
	require.NoError(Te, Save(p, filepath.Join(dir, "composition")))
	_, err = os.Stat(filepath.Join(dir, "composition.png"))
	assert.NoError(Te, err)
	require.NoError(Te, Save(p, filepath.Join(dir, "composition.svg")))
	_, err = os.Stat(filepath.Join(dir, "composition.svg"))
	assert.NoError(Te, err)
}

func TestBarPlotMismatch(Te *testing.T) {
	assert.Panics(Te, func() {
		barPlot("", "", []string{"a"}, []float64{1, 2}, []color.Color{defaultColor})
	})
}
