/*
 * composition.go, part of glassbatch.
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
	"math"

	"gonum.org/v1/gonum/floats"
)

/**Note: nothing in this file returns errors. Every function here is called
 * with whatever the user has typed so far, so a formula that can't be
 * resolved just gets a zero weight and a false Resolved flag, and a
 * zero total just gives zero batch weights.**/

// Component is one compound of the batch, as entered by the user.
// Fraction is the "matrix" percentage of the component. ProductFormula,
// PrecursorMoles and ProductMoles describe what the component turns into
// when the glass is melted.
type Component struct {
	Formula        string  `json:"formula" yaml:"formula"`
	Fraction       float64 `json:"fraction" yaml:"fraction"`
	ProductFormula string  `json:"product,omitempty" yaml:"product,omitempty"`
	PrecursorMoles float64 `json:"precursor_moles,omitempty" yaml:"precursor_moles,omitempty"`
	ProductMoles   float64 `json:"product_moles,omitempty" yaml:"product_moles,omitempty"`
}

// NewComponent returns a component that converts 1:1 into itself.
func NewComponent(formula string, fraction float64) Component {
	return Component{Formula: formula, Fraction: fraction, ProductFormula: formula, PrecursorMoles: 1, ProductMoles: 1}
}

// Conversion returns the precursor -> product reaction of the component.
func (C Component) Conversion() Conversion {
	return Conversion{Precursor: C.Formula, Product: C.ProductFormula, PrecursorMoles: C.PrecursorMoles, ProductMoles: C.ProductMoles}
}

// ComponentResult is a component plus the quantities derived from it in one view.
type ComponentResult struct {
	Component
	MW            float64 `json:"mw"`         //molecular weight used in the view, 0 if unresolved
	Resolved      bool    `json:"resolved"`   //false if MW could not be computed
	ProductMW     float64 `json:"product_mw"` //0 if unresolved
	GF            float64 `json:"gf"`
	HasGF         bool    `json:"has_gf"`
	GFApplied     bool    `json:"gf_applied"` //MW was multiplied by a gravimetric factor
	MolarQuantity float64 `json:"molar_quantity"`
	BatchWeight   float64 `json:"batch_weight"` //grams
}

// View is one table of results: the precursor batch, the GF-adjusted
// batch or the product batch.
type View struct {
	Results       []ComponentResult `json:"results"`
	TotalQuantity float64           `json:"total_quantity"` //sum of the molar quantities
	TotalWeight   float64           `json:"total_weight"`   //sum of the batch weights
}

// MolarQuantity returns the relative molar contribution of a component,
// (fraction/100)*mw. The fraction is taken as a percentage, with no
// further scaling.
func MolarQuantity(fraction, mw float64) float64 {
	return (fraction / 100) * mw
}

// Allocate distributes desiredMass among the quantities, proportionally.
// If the quantities sum to zero or less, or the sum or desiredMass is
// not finite, every weight is 0.
func Allocate(quantities []float64, desiredMass float64) []float64 {
	ret := make([]float64, len(quantities))
	if len(quantities) == 0 {
		return ret
	}
	total := floats.Sum(quantities)
	if !finite(total) || total <= 0 || !finite(desiredMass) {
		return ret
	}
	for i, q := range quantities {
		ret[i] = (q / total) * desiredMass
	}
	return ret
}

// resolve computes the molecular weights and gravimetric factors of each component.
func resolve(components []Component, masses Masser) []ComponentResult {
	ret := make([]ComponentResult, len(components))
	for i, c := range components {
		r := ComponentResult{Component: c}
		if mw, err := MolecularWeight(c.Formula, masses); err == nil {
			r.MW = mw
			r.Resolved = true
		}
		if pmw, err := MolecularWeight(c.ProductFormula, masses); err == nil {
			r.ProductMW = pmw
		}
		if c.Formula != "" && c.ProductFormula != "" {
			if gf, err := c.Conversion().Factor(masses); err == nil {
				r.GF = gf
				r.HasGF = true
			}
		}
		ret[i] = r
	}
	return ret
}

// allocate fills the batch weights and totals of a view whose molar quantities are set.
func allocate(results []ComponentResult, desiredMass float64) View {
	q := make([]float64, len(results))
	for i, r := range results {
		q[i] = r.MolarQuantity
	}
	total := floats.Sum(q)
	if !finite(total) {
		//overflowed quantities are as good as none.
		for i := range results {
			results[i].MolarQuantity = 0
		}
		total = 0
	}
	w := Allocate(q, desiredMass)
	for i := range results {
		results[i].BatchWeight = w[i]
	}
	return View{Results: results, TotalQuantity: total, TotalWeight: floats.Sum(w)}
}

// PrecursorView returns the batch weights of the components as they are
// weighted in, i.e. using the molecular weights of their own formulas.
func PrecursorView(components []Component, masses Masser, desiredMass float64) View {
	results := resolve(components, masses)
	for i := range results {
		results[i].MolarQuantity = MolarQuantity(results[i].Fraction, results[i].MW)
	}
	return allocate(results, desiredMass)
}

// AdjustedView is PrecursorView with the molecular weight of every component
// whose formula is conv's precursor multiplied by the gravimetric factor of
// conv. All the batch weights are then redistributed over the new total, so
// the other components change too. If the factor can't be computed, the
// result is the same as PrecursorView.
func AdjustedView(components []Component, masses Masser, desiredMass float64, conv Conversion) View {
	results := resolve(components, masses)
	gf, err := conv.Factor(masses)
	for i, r := range results {
		if err == nil && r.Resolved && r.Formula != "" && r.Formula == conv.Precursor {
			results[i].MW = r.MW * gf
			results[i].GF = gf
			results[i].HasGF = true
			results[i].GFApplied = true
		}
		results[i].MolarQuantity = MolarQuantity(results[i].Fraction, results[i].MW)
	}
	return allocate(results, desiredMass)
}

// ProductView returns the batch expressed as what the components turn into.
// Only components with a product different from their own formula, and
// a computable gravimetric factor, are included. Their molar quantity is
// (fraction/100)*MW*GF, and desiredMass is distributed among them alone.
func ProductView(components []Component, masses Masser, desiredMass float64) View {
	all := resolve(components, masses)
	results := make([]ComponentResult, 0, len(all))
	for _, r := range all {
		if r.Formula == "" || r.Conversion().Trivial() || !r.Resolved || !r.HasGF {
			continue
		}
		r.MolarQuantity = MolarQuantity(r.Fraction, r.MW) * r.GF
		r.GFApplied = true
		results = append(results, r)
	}
	return allocate(results, desiredMass)
}

// ElementComposition is the share of one element in the whole batch.
type ElementComposition struct {
	Element    string  `json:"element"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color,omitempty"` //"#rrggbb" hint for charts
}

// Composition aggregates the elements of all components with a positive
// fraction. Each token adds count*fraction to its element, and the
// result is given as percentages of the grand total, in order of first
// appearance. Symbols not in masses are skipped, so components with
// empty or unresolvable formulas add nothing, and neither do tokens with
// a zero count. If nothing is left, or the total overflows, the result
// is empty.
func Composition(components []Component, masses Masser) []ElementComposition {
	order := make([]string, 0, 8)
	acc := make(map[string]float64)
	for _, c := range components {
		if c.Fraction <= 0 || c.Formula == "" {
			continue
		}
		for _, t := range ParseFormula(c.Formula) {
			if masses == nil {
				break
			}
			if _, ok := masses.Mass(t.Symbol); !ok || t.Count == 0 {
				continue
			}
			if _, ok := acc[t.Symbol]; !ok {
				order = append(order, t.Symbol)
			}
			acc[t.Symbol] += float64(t.Count) * c.Fraction
		}
	}
	vals := make([]float64, len(order))
	for i, s := range order {
		vals[i] = acc[s]
	}
	total := floats.Sum(vals)
	if len(vals) == 0 || total <= 0 || !finite(total) {
		return []ElementComposition{}
	}
	floats.Scale(100/total, vals)
	ret := make([]ElementComposition, len(order))
	for i, s := range order {
		ret[i] = ElementComposition{Element: s, Percentage: vals[i], Color: ColorHint(s)}
	}
	return ret
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
