/*
 * json_test.go, part of glassbatch.
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

package batchjson

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	batch "github.com/rmera/glassbatch"
	"github.com/rmera/glassbatch/periodic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMessage(Te *testing.T) {
	in := bufio.NewReader(strings.NewReader("\n{\"op\":\"fraction\",\"index\":1,\"value\":25}\n   \nnot json\n{\"op\":\"mass\",\"value\":7}"))
	M, err := DecodeMessage(in)
	require.NoError(Te, err)
	assert.Equal(Te, &Message{Op: "fraction", Index: 1, Value: 25}, M)

	_, err = DecodeMessage(in)
	var jerr *Error
	require.True(Te, errors.As(err, &jerr))
	assert.True(Te, jerr.IsError)
	assert.True(Te, jerr.InInput)
	assert.Equal(Te, "DecodeMessage", jerr.Function)

	M, err = DecodeMessage(in)
	require.NoError(Te, err, "a last line without newline is still read")
	assert.Equal(Te, "mass", M.Op)

	_, err = DecodeMessage(in)
	assert.Equal(Te, io.EOF, err)
}

func TestMessageEdit(Te *testing.T) {
	conv := batch.Conversion{Precursor: "Na2CO3", Product: "Na2O", PrecursorMoles: 1, ProductMoles: 1}
	comp := batch.NewComponent("SiO2", 70)
	cases := []struct {
		msg  Message
		want batch.Edit
	}{
		{Message{Op: "count", N: 4}, batch.SetCount{N: 4}},
		{Message{Op: "add"}, batch.AddComponent{Component: batch.NewComponent("", 0)}},
		{Message{Op: "add", Component: &comp}, batch.AddComponent{Component: comp}},
		{Message{Op: "remove", Index: 2}, batch.RemoveComponent{Index: 2}},
		{Message{Op: "formula", Index: 1, Formula: "La2O3"}, batch.SetFormula{Index: 1, Formula: "La2O3"}},
		{Message{Op: "fraction", Index: 1, Value: 12}, batch.SetFraction{Index: 1, Fraction: 12}},
		{Message{Op: "product", Index: 2, Formula: "B2O3"}, batch.SetProductFormula{Index: 2, Formula: "B2O3"}},
		{Message{Op: "moles", Index: 2, PrecursorMoles: 2, ProductMoles: 1}, batch.SetMoles{Index: 2, PrecursorMoles: 2, ProductMoles: 1}},
		{Message{Op: "mass", Value: 10}, batch.SetDesiredMass{Mass: 10}},
		{Message{Op: "conversion", Conversion: &conv}, batch.SetConversion{Conversion: conv}},
	}
	for _, c := range cases {
		e, err := c.msg.Edit()
		require.NoError(Te, err, c.msg.Op)
		assert.Equal(Te, c.want, e, c.msg.Op)
	}
	for _, op := range []string{"conversion", "explode", ""} {
		_, err := (&Message{Op: op}).Edit()
		assert.Error(Te, err, op)
	}
}

func TestNewError(Te *testing.T) {
	jerr := NewError("process", "Session.Handle", batch.CheckFormula("", nil))
	assert.True(Te, jerr.InProcess)
	assert.Equal(Te, string(batch.MalformedFormula), jerr.Kind)
	assert.Equal(Te, []string{"Serve"}, jerr.Decorate("Serve"))

	jerr = NewError("output", "SendReport", errors.New("broken pipe"))
	assert.True(Te, jerr.InOutput)
	assert.Empty(Te, jerr.Kind)
	var back map[string]interface{}
	require.NoError(Te, json.Unmarshal(jerr.Marshal(), &back))
	assert.Equal(Te, "broken pipe", back["Message"])
	assert.Equal(Te, true, back["IsError"])
}

func TestSessionHandle(Te *testing.T) {
	S := NewSession(periodic.Default())
	R, jerr := S.Handle(&Message{Op: "mass", Value: 10})
	require.Nil(Te, jerr)
	assert.Equal(Te, 10.0, R.DesiredMass)
	assert.InDelta(Te, 10, R.Precursors.TotalWeight, 1e-9)

	R, jerr = S.Handle(&Message{Op: "fraction", Index: 2, Value: 0})
	require.Nil(Te, jerr)
	assert.Equal(Te, batch.NormWarning, R.Warning)
	assert.InDelta(Te, 75, S.State.Components[0].Fraction, 1e-9)

	before := S.State
	_, jerr = S.Handle(&Message{Op: "remove", Index: 5})
	require.NotNil(Te, jerr)
	assert.True(Te, jerr.InProcess)
	assert.Equal(Te, before, S.State)

	_, jerr = S.Handle(&Message{Op: "state"})
	require.NotNil(Te, jerr)
	assert.True(Te, jerr.InInput)

	st := batch.State{Components: []batch.Component{batch.NewComponent("SiO2", 3), batch.NewComponent("Na2O", 1)}, DesiredMass: 2}
	R, jerr = S.Handle(&Message{Op: "state", State: &st})
	require.Nil(Te, jerr)
	assert.Equal(Te, []float64{75, 25}, S.State.Fractions())
	assert.Equal(Te, batch.NormWarning, R.Warning)
	assert.Equal(Te, 3.0, st.Components[0].Fraction, "the message state is copied")

	R, jerr = S.Handle(&Message{Op: "reset"})
	require.Nil(Te, jerr)
	assert.Equal(Te, batch.DefaultState(), S.State)
	assert.Empty(Te, R.Warning)
}

func TestServe(Te *testing.T) {
	in := strings.Join([]string{
		`{"op":"fraction","index":0,"value":50}`,
		`garbage`,
		`{"op":"remove","index":9}`,
		``,
		`{"op":"formula","index":0,"formula":"CaXx"}`,
		`{"op":"reset"}`,
	}, "\n") + "\n"
	var out bytes.Buffer
	S := NewSession(periodic.Default())
	require.NoError(Te, S.Serve(strings.NewReader(in), &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(Te, lines, 6)
	decoded := make([]map[string]interface{}, len(lines))
	for i, l := range lines {
		require.NoError(Te, json.Unmarshal([]byte(l), &decoded[i]), l)
	}
	_, isError := decoded[0]["IsError"]
	assert.False(Te, isError)
	assert.Nil(Te, decoded[0]["warning"])
	assert.Equal(Te, batch.NormWarning, decoded[1]["warning"])
	assert.Equal(Te, true, decoded[2]["InInput"])
	assert.Equal(Te, true, decoded[3]["InProcess"])

	//an unknown element is not an error, the component just weighs nothing.
	var R batch.Report
	require.NoError(Te, json.Unmarshal([]byte(lines[4]), &R))
	assert.False(Te, R.Precursors.Results[0].Resolved)
	assert.Equal(Te, 0.0, R.Precursors.Results[0].BatchWeight)
	require.NoError(Te, json.Unmarshal([]byte(lines[5]), &R))
	assert.Equal(Te, "CaO", R.Precursors.Results[0].Formula)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestServeOutputFailure(Te *testing.T) {
	S := NewSession(nil)
	err := S.Serve(strings.NewReader(`{"op":"reset"}`), failWriter{})
	assert.EqualError(Te, err, "closed")

	jerr := SendReport(batch.Compute(batch.DefaultState(), nil), failWriter{})
	require.NotNil(Te, jerr)
	assert.True(Te, jerr.InOutput)
}

// Values that overflow must not end the session.
func TestServeHugeFractions(Te *testing.T) {
	in := strings.Join([]string{
		`{"op":"state","state":{"components":[{"formula":"La2O3","fraction":1e308},{"formula":"CaO","fraction":1e308}]}}`,
		`{"op":"fraction","index":0,"value":-50}`,
		`{"op":"mass","value":7}`,
	}, "\n") + "\n"
	var out bytes.Buffer
	S := NewSession(periodic.Default())
	require.NoError(Te, S.Serve(strings.NewReader(in), &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(Te, lines, 4)
	assert.Contains(Te, lines[1], `"IsError":true`)
	assert.Contains(Te, lines[1], `"InInput":true`)
	assert.Contains(Te, lines[2], `"InProcess":true`)
	var R batch.Report
	require.NoError(Te, json.Unmarshal([]byte(lines[3]), &R))
	assert.Equal(Te, 7.0, R.DesiredMass)
	assert.InDelta(Te, 7, R.Precursors.TotalWeight, 1e-9)
	assert.Equal(Te, batch.DefaultState().Fractions(), S.State.Fractions())
}

func TestReplyUnencodable(Te *testing.T) {
	var out bytes.Buffer
	require.NoError(Te, reply(&batch.Report{GF: math.NaN()}, &out))
	var back map[string]interface{}
	require.NoError(Te, json.Unmarshal(out.Bytes(), &back))
	assert.Equal(Te, true, back["IsError"])
	assert.Equal(Te, true, back["InOutput"])
}
