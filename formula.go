/*
 * formula.go, part of glassbatch.
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
	"strconv"
)

// Term is one (element symbol, count) pair of a formula.
type Term struct {
	Symbol string `json:"symbol"`
	Count  int    `json:"count"`
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// scanFormula walks formula left to right. It calls term for each token
// (an uppercase letter, optional lowercase letters, optional digits) and
// returns the number of bytes that did not belong to any token.
func scanFormula(formula string, term func(Term)) (skipped int) {
	for i := 0; i < len(formula); {
		if !isUpper(formula[i]) {
			skipped++
			i++
			continue
		}
		j := i + 1
		for j < len(formula) && isLower(formula[j]) {
			j++
		}
		k := j
		for k < len(formula) && isDigit(formula[k]) {
			k++
		}
		count := 1
		if k > j {
			n, err := strconv.Atoi(formula[j:k])
			if err != nil {
				//only possible on overflow; the token is dropped.
				skipped += k - i
				i = k
				continue
			}
			count = n
		}
		term(Term{Symbol: formula[i:j], Count: count})
		i = k
	}
	return skipped
}

// ParseFormula tokenizes a chemical formula such as "La2O3" into its
// (symbol, count) pairs, in formula order. Repeated symbols are not
// merged. Characters that cannot start a token are skipped, so a string
// with no valid token gives an empty slice. No table lookup is done.
func ParseFormula(formula string) []Term {
	terms := make([]Term, 0, len(formula)/2)
	scanFormula(formula, func(t Term) { terms = append(terms, t) })
	return terms
}

// MergeTerms sums the counts of repeated symbols. The order of first
// appearance is kept.
func MergeTerms(terms []Term) []Term {
	ret := make([]Term, 0, len(terms))
	pos := make(map[string]int, len(terms))
	for _, t := range terms {
		if i, ok := pos[t.Symbol]; ok {
			ret[i].Count += t.Count
			continue
		}
		pos[t.Symbol] = len(ret)
		ret = append(ret, t)
	}
	return ret
}

// CheckFormula is a strict validation of formula, meant for places where
// an input is final rather than being typed. It returns a MalformedFormula
// error if formula has no token or has characters outside the
// (Symbol Digits?)+ grammar, and an UnknownElement error if masses is not
// nil and some symbol is not in it.
func CheckFormula(formula string, masses Masser) error {
	terms := make([]Term, 0, len(formula)/2)
	skipped := scanFormula(formula, func(t Term) { terms = append(terms, t) })
	if len(terms) == 0 {
		return newCalcError(MalformedFormula, formula, "", "no element found", "CheckFormula")
	}
	if skipped > 0 {
		return newCalcError(MalformedFormula, formula, "", fmt.Sprintf("%d characters outside the formula grammar", skipped), "CheckFormula")
	}
	if masses == nil {
		return nil
	}
	for _, t := range terms {
		if _, ok := masses.Mass(t.Symbol); !ok {
			return newCalcError(UnknownElement, formula, t.Symbol, "", "CheckFormula")
		}
	}
	return nil
}

// LastSymbolToken returns the trailing, possibly partial, element symbol
// of formula ("L" for "CaOL", "" for "La2"). It is the piece of text that
// element suggestions apply to.
func LastSymbolToken(formula string) string {
	i := len(formula)
	for i > 0 && isLower(formula[i-1]) {
		i--
	}
	if i == 0 || !isUpper(formula[i-1]) {
		return ""
	}
	return formula[i-1:]
}

// CompleteFormula replaces the trailing symbol token of formula with symbol.
// If there is no such token, symbol is appended.
func CompleteFormula(formula, symbol string) string {
	last := LastSymbolToken(formula)
	return formula[:len(formula)-len(last)] + symbol
}
