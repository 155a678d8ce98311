/*
 * interfaces.go, part of glassbatch.
 *
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

// Masser returns the atomic mass for an element symbol. The second
// return value is false if the symbol is not known.
// A nil or empty Masser must simply report every symbol as unknown,
// since the mass data may not be loaded yet when calculations start.
type Masser interface {
	Mass(symbol string) (float64, bool)
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call returns the "decoration" slice resulting from the current call. If passed an empty string, it just returns the current value.
	//The slice contains the functions in the calling stack, plus, for each function, any relevant information, in the format "FunctionName: Extra info"
}

// KindError is an Error that also tells which of the calculation failure
// classes it belongs to.
type KindError interface {
	Error
	Kind() Kind
}
