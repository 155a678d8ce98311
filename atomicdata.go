/*
 * atomicdata.go, part of glassbatch.
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

package batch

import (
	"fmt"
	"math"
	"strings"
)

// SuggestLimit is the default maximum number of entries returned by Suggest.
const SuggestLimit = 14

// Element is one entry of the atomic mass table.
type Element struct {
	Symbol string  `json:"symbol" yaml:"symbol"`
	Name   string  `json:"name,omitempty" yaml:"name,omitempty"`
	Number int     `json:"number,omitempty" yaml:"number,omitempty"` //atomic number, 0 if not given
	Mass   float64 `json:"mass" yaml:"mass"`
}

// Table is an immutable lookup from element symbol to atomic mass.
// The zero value and the nil pointer are valid, empty tables: every
// lookup on them fails, which is how calculations behave before
// the mass data has been loaded.
type Table struct {
	elements []Element
	index    map[string]int
}

// NewTable builds a table from the given entries, keeping their order.
// It fails if a symbol is not a valid element symbol, if a mass is not a
// positive finite number, or if a symbol appears more than once.
func NewTable(elements []Element) (*Table, error) {
	T := &Table{
		elements: make([]Element, 0, len(elements)),
		index:    make(map[string]int, len(elements)),
	}
	for i, e := range elements {
		if !ValidSymbol(e.Symbol) {
			return nil, fmt.Errorf("NewTable: entry %d: invalid element symbol %q", i, e.Symbol)
		}
		if e.Mass <= 0 || math.IsInf(e.Mass, 0) || math.IsNaN(e.Mass) {
			return nil, fmt.Errorf("NewTable: entry %d (%s): atomic mass must be positive, got %g", i, e.Symbol, e.Mass)
		}
		if _, ok := T.index[e.Symbol]; ok {
			return nil, fmt.Errorf("NewTable: entry %d: duplicate element symbol %q", i, e.Symbol)
		}
		T.index[e.Symbol] = len(T.elements)
		T.elements = append(T.elements, e)
	}
	return T, nil
}

// ValidSymbol returns true if s is one uppercase letter followed by zero or more lowercase letters.
func ValidSymbol(s string) bool {
	if s == "" || !isUpper(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isLower(s[i]) {
			return false
		}
	}
	return true
}

// Mass returns the atomic mass of symbol. Lookups are case-sensitive.
func (T *Table) Mass(symbol string) (float64, bool) {
	e, ok := T.Element(symbol)
	if !ok {
		return 0, false
	}
	return e.Mass, true
}

// Element returns the entry for symbol.
func (T *Table) Element(symbol string) (Element, bool) {
	if T == nil || T.index == nil {
		return Element{}, false
	}
	i, ok := T.index[symbol]
	if !ok {
		return Element{}, false
	}
	return T.elements[i], true
}

// Len returns the number of elements in the table.
func (T *Table) Len() int {
	if T == nil {
		return 0
	}
	return len(T.elements)
}

// Elements returns a copy of the table entries, in table order.
func (T *Table) Elements() []Element {
	if T == nil {
		return nil
	}
	ret := make([]Element, len(T.elements))
	copy(ret, T.elements)
	return ret
}

// Suggest returns, in table order, the entries whose symbol or name contains
// query, ignoring case. At most limit entries are returned, SuggestLimit if
// limit is not positive. An empty query gives no suggestions.
func (T *Table) Suggest(query string, limit int) []Element {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || T.Len() == 0 {
		return nil
	}
	if limit <= 0 {
		limit = SuggestLimit
	}
	ret := make([]Element, 0, limit)
	for _, e := range T.elements {
		if strings.Contains(strings.ToLower(e.Symbol), query) || (e.Name != "" && strings.Contains(strings.ToLower(e.Name), query)) {
			ret = append(ret, e)
			if len(ret) == limit {
				break
			}
		}
	}
	return ret
}
