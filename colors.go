/*
 * colors.go, part of glassbatch.
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
	"hash/fnv"
	"math"
)

//Colors for the elements that usually show up in glass batches.
//Mostly CPK/Jmol colors, a few darkened so they show on white backgrounds.
var symbolColor = map[string]string{
	"H":  "#9e9e9e",
	"B":  "#ffb5b5",
	"C":  "#505050",
	"N":  "#3050f8",
	"O":  "#ff0d0d",
	"F":  "#90e050",
	"Li": "#cc80ff",
	"Na": "#ab5cf2",
	"Mg": "#8aff00",
	"Al": "#bfa6a6",
	"Si": "#f0c8a0",
	"P":  "#ff8000",
	"S":  "#e0c030",
	"K":  "#8f40d4",
	"Ca": "#3dff00",
	"Ti": "#bfc2c7",
	"Fe": "#e06633",
	"Zn": "#7d80b0",
	"Ge": "#668f8f",
	"Sr": "#00ff00",
	"Zr": "#94e0e0",
	"Ba": "#00c900",
	"La": "#70d4ff",
	"Ce": "#ffffc7",
	"Nd": "#c7ffc7",
	"Er": "#00e675",
	"Yb": "#00bf38",
	"Bi": "#9e4fb5",
	"Pb": "#575961",
	"Te": "#d47a00",
}

// ColorHint returns a "#rrggbb" color for the element symbol. Symbols
// without a fixed color get a hue derived from the symbol itself, so
// the same element always gets the same color.
func ColorHint(symbol string) string {
	if c, ok := symbolColor[symbol]; ok {
		return c
	}
	h := fnv.New32a()
	h.Write([]byte(symbol))
	hue := float64(h.Sum32() % 360)
	r, g, b := iHVS2RGB(hue, 0.85, 0.7)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var i, f, p, q, t float64
	var r, g, b float64
	maxcolor := 255.0
	conversion := maxcolor
	if s == 0.0 {
		return uint8(conversion * v), uint8(conversion * v), uint8(conversion * v)
	}
	h = h / 60
	i = math.Floor(h)
	f = h - i
	p = v * (1 - s)
	q = v * (1 - s*f)
	t = v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default: //case 5
		r, g, b = v, p, q
	}
	return uint8(r * conversion), uint8(g * conversion), uint8(b * conversion)
}
