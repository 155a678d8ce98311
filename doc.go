/*
 * doc.go, part of glassbatch.
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

/*Package batch is the calculation engine of glassbatch. It computes the weights of the raw
materials of a glass batch from chemical formulas and the "matrix" percentage of each component.



	**Capabilities**


    Parses chemical formulas such as La2O3 or H3BO3 into (symbol, count) pairs.

    Computes molecular weights from an atomic mass table (see the periodic
	package for loading one).

    Computes gravimetric factors between a precursor and the product it
	turns into, e.g. 2 H3BO3 -> B2O3.

    Normalizes matrix percentages so they sum to 100, with a tolerance that
	makes the normalization idempotent.

    Distributes a desired batch mass among the components, in three views:
	as weighted in (precursors), with the gravimetric factor applied to the
	designated precursor, and as the products the components turn into.

    Aggregates the elemental composition of the batch, with color hints for
	charts.

    Keeps the user input in a State that is only changed through Apply, and
	derives everything else with Compute.


Nothing here fails on incomplete input: a formula that is being typed,
an empty mass table or an all-zero batch just give zeros and unset
flags, so the engine can be called after every keystroke.

The molar quantity of a component is (matrix/100)*MW. The matrix is taken
as a plain percentage weight; there is no further scaling.
*/
package batch
