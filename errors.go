/*
 * errors.go, part of glassbatch.
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
	"strings"
)

// Kind classifies a calculation failure. None of them is fatal to the
// engine: Compute turns every one of them into a zero or absent value.
type Kind string

const (
	UnknownElement   Kind = "unknown element"   //a formula token has no entry in the mass table
	MalformedFormula Kind = "malformed formula" //no valid token, or characters outside the grammar
	DivisionGuard    Kind = "division guard"    //a zero denominator (product moles, total quantity)
)

// Sentinels to be used with errors.Is.
var (
	ErrUnknownElement   = &CalcError{kind: UnknownElement}
	ErrMalformedFormula = &CalcError{kind: MalformedFormula}
	ErrDivisionGuard    = &CalcError{kind: DivisionGuard}
)

// CalcError is the error returned by the calculation functions. It fulfills Error and KindError.
type CalcError struct {
	kind    Kind
	formula string
	symbol  string
	message string
	deco    []string
}

func newCalcError(kind Kind, formula, symbol, message, caller string) *CalcError {
	err := &CalcError{kind: kind, formula: formula, symbol: symbol, message: message}
	if caller != "" {
		err.deco = []string{caller}
	}
	return err
}

func (err *CalcError) Error() string {
	var b strings.Builder
	b.WriteString(string(err.kind))
	if err.symbol != "" {
		fmt.Fprintf(&b, " %q", err.symbol)
	}
	if err.formula != "" {
		fmt.Fprintf(&b, " in formula %q", err.formula)
	}
	if err.message != "" {
		b.WriteString(": ")
		b.WriteString(err.message)
	}
	return b.String()
}

// Decorate adds new information to the error and returns the decoration trail.
func (err *CalcError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Kind returns the failure class of the error.
func (err *CalcError) Kind() Kind { return err.kind }

// Formula returns the formula that could not be processed, if any.
func (err *CalcError) Formula() string { return err.formula }

// Symbol returns the offending element symbol, if any.
func (err *CalcError) Symbol() string { return err.symbol }

// Is reports whether target is a CalcError of the same kind, so the
// package sentinels match any error of their class.
func (err *CalcError) Is(target error) bool {
	t, ok := target.(*CalcError)
	return ok && t.kind == err.kind
}

// errDecorate is a helper function that asserts that the error
// implements Error and decorates the error with the caller's name before returning it.
// If used with a non-Error error, it will just return the error.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}
