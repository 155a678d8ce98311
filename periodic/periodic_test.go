/*
 * periodic_test.go, part of glassbatch.
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

package periodic

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(Te *testing.T) {
	T := Default()
	require.Equal(Te, 118, T.Len())
	assert.Same(Te, T, Default())
	masses := map[string]float64{"H": 1.008, "B": 10.81, "O": 15.999, "Ca": 40.078, "La": 138.905}
	for s, want := range masses {
		m, ok := T.Mass(s)
		assert.True(Te, ok, s)
		assert.Equal(Te, want, m, s)
	}
	e, ok := T.Element("La")
	require.True(Te, ok)
	assert.Equal(Te, "Lanthanum", e.Name)
	assert.Equal(Te, 57, e.Number)
	for i, e := range T.Elements() {
		assert.Equal(Te, i+1, e.Number)
	}
}

func TestLoadHeader(Te *testing.T) {
	data := "# a small table\nMass,Symbol\n15.999,O\n 40.078, Ca\n"
	T, err := Load(strings.NewReader(data))
	require.NoError(Te, err)
	assert.Equal(Te, 2, T.Len())
	m, ok := T.Mass("Ca")
	assert.True(Te, ok)
	assert.Equal(Te, 40.078, m)
	e, _ := T.Element("O")
	assert.Equal(Te, "", e.Name)
	assert.Equal(Te, 0, e.Number)
}

func TestLoadPositional(Te *testing.T) {
	data := "1,Hydrogen,H,1.008\n\n5,Boron,B,10.81\n8,Oxygen,O,15.999\n"
	T, err := Load(strings.NewReader(data))
	require.NoError(Te, err)
	assert.Equal(Te, 3, T.Len())
	e, ok := T.Element("B")
	require.True(Te, ok)
	assert.Equal(Te, "Boron", e.Name)
	assert.Equal(Te, 5, e.Number)
}

func TestLoadErrors(Te *testing.T) {
	bad := map[string]string{
		"missing symbol": "1,Hydrogen,,1.008\n",
		"bad mass":       "1,Hydrogen,H,heavy\n",
		"zero mass":      "1,Hydrogen,H,0\n",
		"negative mass":  "1,Hydrogen,H,-1.008\n",
		"bad number":     "one,Hydrogen,H,1.008\n",
		"duplicate":      "1,Hydrogen,H,1.008\n1,Hydrogen,H,1.008\n",
		"bad symbol":     "1,Hydrogen,h,1.008\n",
		"quotes":         "1,\"Hydrogen,H,1.008\n",
	}
	for name, data := range bad {
		_, err := Load(strings.NewReader(data))
		assert.Error(Te, err, name)
	}
	_, err := Load(strings.NewReader("8,Oxygen,O,15.999\n9,Fluorine,F,x\n"))
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), "row 2")
}

func TestCompress(Te *testing.T) {
	var buf bytes.Buffer
	require.NoError(Te, Compress(&buf, bytes.NewReader(defaultCSV)))
	assert.True(Te, bytes.HasPrefix(buf.Bytes(), zstdMagic))
	assert.Less(Te, buf.Len(), len(defaultCSV))
	T, err := Load(&buf)
	require.NoError(Te, err)
	assert.Equal(Te, 118, T.Len())
}

func TestReadFile(Te *testing.T) {
	dir := Te.TempDir()
	plain := filepath.Join(dir, "table.csv")
	require.NoError(Te, os.WriteFile(plain, []byte("symbol,atomic mass\nO,15.999\n"), 0644))
	T, err := ReadFile(plain)
	require.NoError(Te, err)
	assert.Equal(Te, 1, T.Len())

	//the extension doesn't matter
	f, err := os.Create(filepath.Join(dir, "table.dat"))
	require.NoError(Te, err)
	require.NoError(Te, Compress(f, bytes.NewReader(defaultCSV)))
	require.NoError(Te, f.Close())
	T, err = ReadFile(filepath.Join(dir, "table.dat"))
	require.NoError(Te, err)
	assert.Equal(Te, 118, T.Len())

	_, err = ReadFile(filepath.Join(dir, "nope.csv"))
	assert.Error(Te, err)
	bad := filepath.Join(dir, "bad.csv")
	require.NoError(Te, os.WriteFile(bad, []byte("O,15.999\n"), 0644))
	_, err = ReadFile(bad)
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), bad)
}
