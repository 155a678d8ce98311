/*
 * json.go, part of glassbatch.
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

package batchjson

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	batch "github.com/rmera/glassbatch"
)

//An easily JSON-serializable error type,
type Error struct {
	deco      []string
	IsError   bool //If this is false (no error) all the other fields will be at their zero-values.
	InInput   bool //If error, was it in decoding the message?
	InProcess bool //in applying the edit?
	InOutput  bool //was it in preparing the output?
	Kind      string
	Function  string //which go function gave the error
	Message   string //the error itself
}

//Error implements the error interface
func (J *Error) Error() string {
	return J.Message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (J *Error) Decorate(dec string) []string {
	if dec == "" {
		return J.deco
	}
	J.deco = append(J.deco, dec)
	return J.deco
}

//Serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - ")) // Yo, dawg, I heard you like errors, so I got an error while serializing your error so you can... you know the drill.
	}
	return ret
}

//Takes an error and some additional info to create a json-marshal-ble error
func NewError(where, function string, err error) *Error {
	jerr := new(Error)
	jerr.IsError = true
	switch where {
	case "input":
		jerr.InInput = true
	case "output":
		jerr.InOutput = true
	default:
		jerr.InProcess = true
	}
	var kerr batch.KindError
	if errors.As(err, &kerr) {
		jerr.Kind = string(kerr.Kind())
	}
	jerr.Function = function
	jerr.Message = err.Error()
	return jerr
}

// Message is one edit sent by the presentation layer. Op selects the edit,
// and only the fields that edit uses need to be set:
//
//	count:      N
//	add:        Component
//	remove:     Index
//	formula:    Index, Formula
//	fraction:   Index, Value
//	product:    Index, Formula
//	moles:      Index, PrecursorMoles, ProductMoles
//	mass:       Value
//	conversion: Conversion
//	reset:      nothing, goes back to the default batch
//	state:      State, replaces the whole state
type Message struct {
	Op             string            `json:"op"`
	Index          int               `json:"index,omitempty"`
	N              int               `json:"n,omitempty"`
	Formula        string            `json:"formula,omitempty"`
	Value          float64           `json:"value,omitempty"`
	PrecursorMoles float64           `json:"precursor_moles,omitempty"`
	ProductMoles   float64           `json:"product_moles,omitempty"`
	Component      *batch.Component  `json:"component,omitempty"`
	Conversion     *batch.Conversion `json:"conversion,omitempty"`
	State          *batch.State      `json:"state,omitempty"`
}

// Edit returns the batch.Edit described by the message. reset and state
// are not edits, they are handled by Session.
func (M *Message) Edit() (batch.Edit, error) {
	switch M.Op {
	case "count":
		return batch.SetCount{N: M.N}, nil
	case "add":
		if M.Component == nil {
			return batch.AddComponent{Component: batch.NewComponent("", 0)}, nil
		}
		return batch.AddComponent{Component: *M.Component}, nil
	case "remove":
		return batch.RemoveComponent{Index: M.Index}, nil
	case "formula":
		return batch.SetFormula{Index: M.Index, Formula: M.Formula}, nil
	case "fraction":
		return batch.SetFraction{Index: M.Index, Fraction: M.Value}, nil
	case "product":
		return batch.SetProductFormula{Index: M.Index, Formula: M.Formula}, nil
	case "moles":
		return batch.SetMoles{Index: M.Index, PrecursorMoles: M.PrecursorMoles, ProductMoles: M.ProductMoles}, nil
	case "mass":
		return batch.SetDesiredMass{Mass: M.Value}, nil
	case "conversion":
		if M.Conversion == nil {
			return nil, fmt.Errorf("conversion edit without a conversion")
		}
		return batch.SetConversion{Conversion: *M.Conversion}, nil
	}
	return nil, fmt.Errorf("unknown operation %q", M.Op)
}

// DecodeMessage reads one line from stream and decodes it into a Message.
// Blank lines are skipped. It returns io.EOF, unwrapped, when the stream is
// done, and the read error itself if reading fails. Lines that are not
// valid messages give an *Error.
func DecodeMessage(stream *bufio.Reader) (*Message, error) {
	for {
		line, err := stream.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if len(bytes.TrimSpace(line)) == 0 {
			if err != nil {
				return nil, io.EOF
			}
			continue
		}
		ret := new(Message)
		if err := json.Unmarshal(line, ret); err != nil {
			return nil, NewError("input", "DecodeMessage", err)
		}
		return ret, nil
	}
}

// SendReport encodes R as a single JSON line on out.
func SendReport(R *batch.Report, out io.Writer) *Error {
	line, jerr := encodeReport(R)
	if jerr != nil {
		return jerr
	}
	if _, err := out.Write(line); err != nil {
		return NewError("output", "SendReport", err)
	}
	return nil
}

func encodeReport(R *batch.Report) ([]byte, *Error) {
	line, err := json.Marshal(R)
	if err != nil {
		return nil, NewError("output", "SendReport", err)
	}
	return append(line, '\n'), nil
}

// reply writes R to out or, if R can't be encoded, the error that
// prevented it. Only a failed write gives an error.
func reply(R *batch.Report, out io.Writer) error {
	line, jerr := encodeReport(R)
	if jerr != nil {
		return SendError(jerr, out)
	}
	_, err := out.Write(line)
	return err
}

// SendError encodes J as a single JSON line on out.
func SendError(J *Error, out io.Writer) error {
	_, err := out.Write(append(J.Marshal(), '\n'))
	return err
}

// Session keeps the state for a presentation layer that talks JSON.
type Session struct {
	State  batch.State
	Masses batch.Masser
}

// NewSession returns a session that starts from the default batch.
func NewSession(masses batch.Masser) *Session {
	return &Session{State: batch.DefaultState(), Masses: masses}
}

// Handle applies the message to the session state and returns the new report.
// On error the state is left untouched.
func (S *Session) Handle(M *Message) (*batch.Report, *Error) {
	switch M.Op {
	case "reset":
		S.State = batch.DefaultState()
	case "state":
		if M.State == nil {
			return nil, NewError("input", "Session.Handle", fmt.Errorf("state message without a state"))
		}
		st, err := batch.NewState(M.State.Components, M.State.DesiredMass, M.State.Conversion)
		if err != nil {
			return nil, NewError("input", "Session.Handle", err)
		}
		S.State = st
	default:
		e, err := M.Edit()
		if err != nil {
			return nil, NewError("input", "Session.Handle", err)
		}
		st, err := batch.Apply(S.State, e)
		if err != nil {
			return nil, NewError("process", "Session.Handle", err)
		}
		S.State = st
	}
	return batch.Compute(S.State, S.Masses), nil
}

// Serve reads messages from in until EOF, and writes a report, or an error,
// for each of them to out. The first line written is the report for the
// initial state. Only I/O failures on out stop it.
func (S *Session) Serve(in io.Reader, out io.Writer) error {
	stream := bufio.NewReader(in)
	if err := reply(batch.Compute(S.State, S.Masses), out); err != nil {
		return err
	}
	for {
		msg, err := DecodeMessage(stream)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var jerr *Error
			if !errors.As(err, &jerr) {
				return err
			}
			if err := SendError(jerr, out); err != nil {
				return err
			}
			continue
		}
		R, jerr := S.Handle(msg)
		if jerr != nil {
			if err := SendError(jerr, out); err != nil {
				return err
			}
			continue
		}
		if err := reply(R, out); err != nil {
			return err
		}
	}
}
