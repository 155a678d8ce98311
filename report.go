/*
 * report.go, part of glassbatch.
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

// Report is everything the presentation layer shows for a state.
type Report struct {
	DesiredMass float64              `json:"desired_mass"`
	Precursors  View                 `json:"precursors"`
	Adjusted    View                 `json:"adjusted"` //precursors with the GF calculator applied
	Products    View                 `json:"products"`
	Conversion  Conversion           `json:"conversion"`
	GF          float64              `json:"gf"`
	HasGF       bool                 `json:"has_gf"`
	Elements    []ElementComposition `json:"elements"`
	Warning     string               `json:"warning,omitempty"`
}

// Compute derives a full report from S. It never fails: values that can't be
// computed with the given masses (which can be nil, if the table is not
// loaded yet) come out as zeros, with the corresponding flags unset.
func Compute(S State, masses Masser) *Report {
	R := &Report{
		DesiredMass: S.DesiredMass,
		Precursors:  PrecursorView(S.Components, masses, S.DesiredMass),
		Adjusted:    AdjustedView(S.Components, masses, S.DesiredMass, S.Conversion),
		Products:    ProductView(S.Components, masses, S.DesiredMass),
		Conversion:  S.Conversion,
		Elements:    Composition(S.Components, masses),
	}
	if gf, err := S.Conversion.Factor(masses); err == nil {
		R.GF = gf
		R.HasGF = true
	}
	if S.Rescaled {
		R.Warning = NormWarning
	}
	return R
}
