/*
 * state.go, part of glassbatch.
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

	"gonum.org/v1/gonum/floats"
)

// State holds the canonical inputs of a batch calculation. Nothing derived
// from them is kept here; use Compute for that.
// Rescaled records whether the transition that produced this state had to
// renormalize the fractions.
type State struct {
	Components  []Component `json:"components" yaml:"components"`
	DesiredMass float64     `json:"desired_mass" yaml:"desired_mass"` //grams
	Conversion  Conversion  `json:"conversion" yaml:"conversion"`     //the GF calculator
	Rescaled    bool        `json:"rescaled" yaml:"-"`
}

// DefaultState returns the starting batch: 30 CaO, 10 La2O3 and 60 H3BO3,
// with the boric acid converting 2:1 into B2O3, for 5 g of batch.
func DefaultState() State {
	boric := NewComponent("H3BO3", 60)
	boric.ProductFormula = "B2O3"
	boric.PrecursorMoles = 2
	return State{
		Components: []Component{
			NewComponent("CaO", 30),
			NewComponent("La2O3", 10),
			boric,
		},
		DesiredMass: 5,
		Conversion:  Conversion{Precursor: "H3BO3", Product: "B2O3", PrecursorMoles: 2, ProductMoles: 1},
	}
}

// NewState returns a state with the given inputs, the fractions normalized
// and Rescaled set accordingly. components is copied. Inputs that Check
// rejects give an error.
func NewState(components []Component, desiredMass float64, conv Conversion) (State, error) {
	S := State{Components: make([]Component, len(components)), DesiredMass: desiredMass, Conversion: conv}
	copy(S.Components, components)
	if err := S.Check(); err != nil {
		return State{}, err
	}
	S.normalize()
	return S, nil
}

func checkAmount(x float64) bool {
	return finite(x) && x >= 0
}

// Check returns an error if S holds a value no calculation can use: a
// negative or non-finite fraction, mass or number of moles, or fractions
// whose sum overflows.
func (S State) Check() error {
	for i, c := range S.Components {
		if !checkAmount(c.Fraction) {
			return fmt.Errorf("component %d: fraction must be a finite number, 0 or more, got %g", i, c.Fraction)
		}
		if !checkAmount(c.PrecursorMoles) || !checkAmount(c.ProductMoles) {
			return fmt.Errorf("component %d: moles must be finite numbers, 0 or more, got %g and %g", i, c.PrecursorMoles, c.ProductMoles)
		}
	}
	if total := floats.Sum(S.Fractions()); !finite(total) {
		return fmt.Errorf("fractions add up to %g", total)
	}
	if !checkAmount(S.DesiredMass) {
		return fmt.Errorf("desired mass must be a finite number, 0 or more, got %g", S.DesiredMass)
	}
	if !checkAmount(S.Conversion.PrecursorMoles) || !checkAmount(S.Conversion.ProductMoles) {
		return fmt.Errorf("conversion moles must be finite numbers, 0 or more, got %g and %g", S.Conversion.PrecursorMoles, S.Conversion.ProductMoles)
	}
	return nil
}

func (S *State) normalize() {
	norm, rescaled := Normalize(S.Fractions())
	for i := range S.Components {
		S.Components[i].Fraction = norm[i]
	}
	S.Rescaled = rescaled
}

// Copy returns a deep copy of the state.
func (S State) Copy() State {
	ret := S
	ret.Components = make([]Component, len(S.Components))
	copy(ret.Components, S.Components)
	return ret
}

// Fractions returns the fractions of the components, in order.
func (S State) Fractions() []float64 {
	ret := make([]float64, len(S.Components))
	for i, c := range S.Components {
		ret[i] = c.Fraction
	}
	return ret
}

// Edit is a single change made by the user.
type Edit interface {
	apply(S *State) error
}

// Apply returns the state that results from applying e to S, with the
// fractions normalized. S itself is not modified. An edit that refers to
// a component that doesn't exist, or that leaves a value Check rejects,
// gives an error and S is returned as is.
func Apply(S State, e Edit) (State, error) {
	ret := S.Copy()
	if err := e.apply(&ret); err != nil {
		return S, err
	}
	if err := ret.Check(); err != nil {
		return S, err
	}
	ret.normalize()
	return ret, nil
}

func checkIndex(S *State, i int, edit string) error {
	if i < 0 || i >= len(S.Components) {
		return fmt.Errorf("%s: component %d out of range (%d components)", edit, i, len(S.Components))
	}
	return nil
}

// SetCount grows the component list with blank components, or truncates it, to N components.
type SetCount struct{ N int }

func (e SetCount) apply(S *State) error {
	if e.N < 0 {
		return fmt.Errorf("SetCount: negative number of components %d", e.N)
	}
	if e.N <= len(S.Components) {
		S.Components = S.Components[:e.N]
		return nil
	}
	for len(S.Components) < e.N {
		S.Components = append(S.Components, NewComponent("", 0))
	}
	return nil
}

// AddComponent appends a component.
type AddComponent struct{ Component Component }

func (e AddComponent) apply(S *State) error {
	S.Components = append(S.Components, e.Component)
	return nil
}

// RemoveComponent deletes the component at Index.
type RemoveComponent struct{ Index int }

func (e RemoveComponent) apply(S *State) error {
	if err := checkIndex(S, e.Index, "RemoveComponent"); err != nil {
		return err
	}
	S.Components = append(S.Components[:e.Index], S.Components[e.Index+1:]...)
	return nil
}

// SetFormula changes the formula of a component. If the product formula
// was empty or just mirrored the old formula, it follows the new one.
type SetFormula struct {
	Index   int
	Formula string
}

func (e SetFormula) apply(S *State) error {
	if err := checkIndex(S, e.Index, "SetFormula"); err != nil {
		return err
	}
	c := &S.Components[e.Index]
	if c.ProductFormula == "" || c.ProductFormula == c.Formula {
		c.ProductFormula = e.Formula
	}
	c.Formula = e.Formula
	return nil
}

// SetFraction changes the matrix percentage of a component.
type SetFraction struct {
	Index    int
	Fraction float64
}

func (e SetFraction) apply(S *State) error {
	if err := checkIndex(S, e.Index, "SetFraction"); err != nil {
		return err
	}
	S.Components[e.Index].Fraction = e.Fraction
	return nil
}

// SetProductFormula changes what a component converts into.
type SetProductFormula struct {
	Index   int
	Formula string
}

func (e SetProductFormula) apply(S *State) error {
	if err := checkIndex(S, e.Index, "SetProductFormula"); err != nil {
		return err
	}
	S.Components[e.Index].ProductFormula = e.Formula
	return nil
}

// SetMoles changes the stoichiometry of a component's conversion.
type SetMoles struct {
	Index          int
	PrecursorMoles float64
	ProductMoles   float64
}

func (e SetMoles) apply(S *State) error {
	if err := checkIndex(S, e.Index, "SetMoles"); err != nil {
		return err
	}
	S.Components[e.Index].PrecursorMoles = e.PrecursorMoles
	S.Components[e.Index].ProductMoles = e.ProductMoles
	return nil
}

// SetDesiredMass changes the total mass of the batch, in grams.
type SetDesiredMass struct{ Mass float64 }

func (e SetDesiredMass) apply(S *State) error {
	S.DesiredMass = e.Mass
	return nil
}

// SetConversion replaces the GF calculator reaction.
type SetConversion struct{ Conversion Conversion }

func (e SetConversion) apply(S *State) error {
	S.Conversion = e.Conversion
	return nil
}
