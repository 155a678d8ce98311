/*
 * weight.go, part of glassbatch.
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

// MolecularWeight returns the molar mass of formula, i.e. the sum of
// count*mass over its tokens, with repeated symbols summed. If a symbol
// is not in masses (or masses is nil) it returns an UnknownElement error,
// which callers should take as "no weight to show", not as a failure.
// A formula with no tokens weights 0.
func MolecularWeight(formula string, masses Masser) (float64, error) {
	var total float64
	for _, t := range MergeTerms(ParseFormula(formula)) {
		var m float64
		var ok bool
		if masses != nil {
			m, ok = masses.Mass(t.Symbol)
		}
		if !ok {
			return 0, newCalcError(UnknownElement, formula, t.Symbol, "", "MolecularWeight")
		}
		total += m * float64(t.Count)
	}
	return total, nil
}

// GravimetricFactor returns the ratio between the mass of precursorMoles of
// precursor and the mass of productMoles of product:
//
//	GF = (precursorMoles * MW(precursor)) / (productMoles * MW(product))
//
// No rounding is done. It returns a MalformedFormula error if precursor is
// empty, an UnknownElement error if either weight can't be obtained, and a
// DivisionGuard error if productMoles, or the product weight, is zero.
func GravimetricFactor(precursor, product string, precursorMoles, productMoles float64, masses Masser) (float64, error) {
	if precursor == "" {
		return 0, newCalcError(MalformedFormula, precursor, "", "empty precursor formula", "GravimetricFactor")
	}
	mwPrecursor, err := MolecularWeight(precursor, masses)
	if err != nil {
		return 0, errDecorate(err, "GravimetricFactor: precursor")
	}
	mwProduct, err := MolecularWeight(product, masses)
	if err != nil {
		return 0, errDecorate(err, "GravimetricFactor: product")
	}
	if productMoles == 0 {
		return 0, newCalcError(DivisionGuard, product, "", "product moles are zero", "GravimetricFactor")
	}
	den := productMoles * mwProduct
	if den == 0 {
		return 0, newCalcError(DivisionGuard, product, "", "product has zero molecular weight", "GravimetricFactor")
	}
	return (precursorMoles * mwPrecursor) / den, nil
}

// Conversion describes the reaction that turns a precursor into a product,
// e.g. 2 H3BO3 -> 1 B2O3 (+ 3 H2O).
type Conversion struct {
	Precursor      string  `json:"precursor" yaml:"precursor"`
	Product        string  `json:"product" yaml:"product"`
	PrecursorMoles float64 `json:"precursor_moles" yaml:"precursor_moles"`
	ProductMoles   float64 `json:"product_moles" yaml:"product_moles"`
}

// Factor returns the gravimetric factor of the conversion.
func (C Conversion) Factor(masses Masser) (float64, error) {
	gf, err := GravimetricFactor(C.Precursor, C.Product, C.PrecursorMoles, C.ProductMoles, masses)
	return gf, errDecorate(err, "Conversion.Factor")
}

// Trivial returns true if the conversion leaves the compound unchanged
// or has no product to speak of.
func (C Conversion) Trivial() bool {
	return C.Product == "" || C.Product == C.Precursor
}
