/*
 * normalize.go, part of glassbatch.
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

// NormTolerance is how far from 100 the sum of the fractions can be before
// they are rescaled. It must stay well above the rounding noise of a
// rescaled set, or repeated normalizations would never settle.
const NormTolerance = 0.001

// NormWarning is the advisory message shown after a rescaling.
const NormWarning = "Matrix values do not sum to 100%. They have been normalized (rescaled)."

// Normalize rescales fractions so they sum to 100. It returns a new slice
// and true if a rescaling took place. Sets summing to zero, or already
// within NormTolerance of 100, are returned unchanged (copied).
// Applying Normalize to its own output never rescales again.
func Normalize(fractions []float64) ([]float64, bool) {
	ret := make([]float64, len(fractions))
	copy(ret, fractions)
	if len(ret) == 0 {
		return ret, false
	}
	total := floats.Sum(ret)
	if total == 0 || math.IsNaN(total) || math.IsInf(total, 0) || math.Abs(total-100) <= NormTolerance {
		return ret, false
	}
	floats.Scale(100/total, ret)
	return ret, true
}
