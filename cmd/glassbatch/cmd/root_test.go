/*
 * root_test.go, part of glassbatch.
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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	batch "github.com/rmera/glassbatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the command line with args and returns what it printed.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestMW(t *testing.T) {
	out, _, err := run(t, "", "mw", "La2O3", "CaO", "--decimals", "3")
	require.NoError(t, err)
	assert.Equal(t, "La2O3\t325.807\nCaO\t56.077\n", out)

	out, _, err = run(t, "", "mw", "H3BO3", "--terms", "--decimals", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "  O\t3 x 15.999")

	out, _, err = run(t, "", "mw", "CaO", "Xx2O", "la2o3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3")
	assert.Contains(t, out, "Xx2O\tn/a")
}

func TestGF(t *testing.T) {
	out, _, err := run(t, "", "gf", "H3BO3", "B2O3", "--precursor-moles", "2", "--decimals", "3")
	require.NoError(t, err)
	assert.Equal(t, "1.776\n", out)

	_, _, err = run(t, "", "gf", "H3BO3", "B2O3", "--product-moles", "0")
	require.Error(t, err)
	assert.ErrorIs(t, err, batch.ErrDivisionGuard)

	_, _, err = run(t, "", "gf", "H3BO3")
	assert.Error(t, err)
}

func TestDecimalsFromEnvAndConfig(t *testing.T) {
	t.Setenv("GLASSBATCH_DECIMALS", "2")
	out, _, err := run(t, "", "gf", "H3BO3", "B2O3", "--precursor-moles", "2")
	require.NoError(t, err)
	assert.Equal(t, "1.78\n", out)

	cfg := filepath.Join(t.TempDir(), "glassbatch.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("decimals: 1\n"), 0644))
	out, _, err = run(t, "", "gf", "H3BO3", "B2O3", "--precursor-moles", "2", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "1.78\n", out, "the environment wins over the config file")

	t.Setenv("GLASSBATCH_DECIMALS", "")
	out, _, err = run(t, "", "gf", "H3BO3", "B2O3", "--precursor-moles", "2", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "1.8\n", out)

	_, _, err = run(t, "", "gf", "H3BO3", "B2O3", "--decimals", "99")
	assert.Error(t, err)
}

func TestSuggest(t *testing.T) {
	out, _, err := run(t, "", "suggest", "CaOL", "--limit", "3")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	for _, l := range lines {
		fields := strings.Split(l, "\t")
		require.Len(t, fields, 3)
		assert.Equal(t, "CaO"+fields[0], fields[2])
	}

	out, _, err = run(t, "", "suggest", "boron")
	require.NoError(t, err)
	assert.Equal(t, "B\tBoron\n", out)
}

func TestComputeJSON(t *testing.T) {
	out, _, err := run(t, "", "compute", "--json", "--mass", "10")
	require.NoError(t, err)
	var R batch.Report
	require.NoError(t, json.Unmarshal([]byte(out), &R))
	assert.Equal(t, 10.0, R.DesiredMass)
	assert.InDelta(t, 10, R.Precursors.TotalWeight, 1e-9)
	assert.True(t, R.HasGF)
	assert.Len(t, R.Elements, 5)
}

func TestInitAndCompute(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "batch.yaml")
	_, _, err := run(t, "", "init", file)
	require.NoError(t, err)
	_, _, err = run(t, "", "init", file)
	require.Error(t, err)
	_, _, err = run(t, "", "init", file, "--force")
	require.NoError(t, err)

	chart := filepath.Join(dir, "composition.png")
	out, _, err := run(t, "", "compute", file, "--plot", chart, "--decimals", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Batch of 5.00 g")
	assert.Contains(t, out, "H3BO3 (GF)")
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "B2O3")
	_, err = os.Stat(chart)
	assert.NoError(t, err)

	unbalanced := filepath.Join(dir, "unbalanced.yaml")
	require.NoError(t, os.WriteFile(unbalanced, []byte("components:\n  - formula: SiO2\n    fraction: 70\n  - formula: Na2O\n    fraction: 20\n"), 0644))
	_, errOut, err := run(t, "", "compute", unbalanced)
	require.NoError(t, err)
	assert.Contains(t, errOut, batch.NormWarning)

	_, _, err = run(t, "", "compute", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestTableFlag(t *testing.T) {
	table := filepath.Join(t.TempDir(), "masses.csv")
	require.NoError(t, os.WriteFile(table, []byte("symbol,mass\nO,16\nCa,40\n"), 0644))
	out, _, err := run(t, "", "mw", "CaO", "--table", table, "--decimals", "1")
	require.NoError(t, err)
	assert.Equal(t, "CaO\t56.0\n", out)

	_, _, err = run(t, "", "mw", "CaO", "--table", filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestServe(t *testing.T) {
	out, _, err := run(t, "{\"op\":\"mass\",\"value\":2}\n{\"op\":\"bogus\"}\n", "serve")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	var R batch.Report
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &R))
	assert.Equal(t, 2.0, R.DesiredMass)
	assert.Contains(t, lines[2], `"IsError":true`)
}
