/*
 * periodic.go, part of glassbatch.
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

// Package periodic loads atomic mass tables for glassbatch.
// Tables are CSV files, optionally zstd-compressed, with one element per row.
// The header, if present, is used to find the columns (symbol, atomic mass,
// element name and atomic number, in any order). Without a header the
// columns are taken to be: atomic number, element name, symbol, atomic mass.
package periodic

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	batch "github.com/rmera/glassbatch"
)

//go:embed data/periodic_table.csv
var defaultCSV []byte

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

var defaultTable = sync.OnceValue(func() *batch.Table {
	T, err := Load(bytes.NewReader(defaultCSV))
	if err != nil {
		panic("periodic: embedded table is broken: " + err.Error()) //the program is wrong.
	}
	return T
})

// Default returns the embedded table, with the standard atomic weights of
// all 118 elements. It is built only once.
func Default() *batch.Table {
	return defaultTable()
}

type columns struct {
	number, name, symbol, mass int
}

// positional layout, used when there is no header.
var noHeader = columns{number: 0, name: 1, symbol: 2, mass: 3}

// headerColumns finds the columns from a header row. ok is false if the row
// doesn't look like a header.
func headerColumns(row []string) (columns, bool) {
	c := columns{number: -1, name: -1, symbol: -1, mass: -1}
	for i, field := range row {
		switch strings.ToLower(strings.TrimSpace(field)) {
		case "symbol":
			c.symbol = i
		case "atomic mass", "atomicmass", "atomic_mass", "mass", "atomic weight":
			c.mass = i
		case "element", "name":
			c.name = i
		case "atomic number", "atomicnumber", "atomic_number", "number", "z":
			c.number = i
		}
	}
	return c, c.symbol >= 0 && c.mass >= 0
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Load reads a table from r. Data starting with the zstd magic number is
// decompressed on the fly.
func Load(r io.Reader) (*batch.Table, error) {
	br := bufio.NewReader(r)
	if magic, err := br.Peek(len(zstdMagic)); err == nil && bytes.Equal(magic, zstdMagic) {
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("periodic: opening zstd stream: %w", err)
		}
		defer dec.Close()
		return loadCSV(dec)
	}
	return loadCSV(br)
}

func loadCSV(r io.Reader) (*batch.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	cols := noHeader
	var elements []batch.Element
	for line := 1; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("periodic: reading row %d: %w", line, err)
		}
		if line == 1 {
			if c, ok := headerColumns(row); ok {
				cols = c
				continue
			}
		}
		if len(row) == 1 && field(row, 0) == "" {
			continue
		}
		e, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("periodic: row %d: %w", line, err)
		}
		elements = append(elements, e)
	}
	T, err := batch.NewTable(elements)
	if err != nil {
		return nil, fmt.Errorf("periodic: %w", err)
	}
	return T, nil
}

func parseRow(row []string, cols columns) (batch.Element, error) {
	e := batch.Element{Symbol: field(row, cols.symbol), Name: field(row, cols.name)}
	if e.Symbol == "" {
		return e, fmt.Errorf("missing element symbol")
	}
	mass, err := strconv.ParseFloat(field(row, cols.mass), 64)
	if err != nil {
		return e, fmt.Errorf("atomic mass of %s: %w", e.Symbol, err)
	}
	if mass <= 0 {
		return e, fmt.Errorf("atomic mass of %s must be positive, got %g", e.Symbol, mass)
	}
	e.Mass = mass
	if n := field(row, cols.number); n != "" {
		e.Number, err = strconv.Atoi(n)
		if err != nil {
			return e, fmt.Errorf("atomic number of %s: %w", e.Symbol, err)
		}
	}
	return e, nil
}

// ReadFile loads the table in the file name. Compressed files are detected
// from their content, not their extension.
func ReadFile(name string) (*batch.Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("periodic: %w", err)
	}
	defer f.Close()
	T, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return T, nil
}

// Compress writes the table data in r to w, zstd-compressed.
func Compress(w io.Writer, r io.Reader) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("periodic: %w", err)
	}
	if _, err := io.Copy(enc, r); err != nil {
		enc.Close()
		return fmt.Errorf("periodic: compressing: %w", err)
	}
	return enc.Close()
}
