// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package fixed formats fixed point values with one decimal place without
// resorting to floating point text conversion.
//
// A value is held as an integer count of tenths, so 12.5 is held as 125.
package fixed

import "errors"

const (
	// MaxTenths is the largest magnitude that fits within MaxWidth.
	MaxTenths = 99999
	// MaxWidth is the widest field produced - sign, 4 integer digits, point
	// and fraction.
	MaxWidth = 7
)

// ErrOverrange indicates the value was saturated to fit the field.
var ErrOverrange = errors.New("value out of range")

var powers = [...]int32{10000, 1000, 100, 10}

// Append appends the text of n tenths to dst and returns the extended buffer.
//
// The text is a sign column, '-' or ' ', the integer part without leading
// zeros, but at least one digit, a point, and the tenths digit.
// Magnitudes above MaxTenths are saturated to MaxTenths and ErrOverrange is
// returned along with the saturated text.
func Append(dst []byte, n int32) ([]byte, error) {
	var err error
	switch {
	case n > MaxTenths:
		n, err = MaxTenths, ErrOverrange
	case n < -MaxTenths:
		n, err = -MaxTenths, ErrOverrange
	}
	if n < 0 {
		dst = append(dst, '-')
		n = -n
	} else {
		dst = append(dst, ' ') // alignment
	}
	if n < 10 {
		dst = append(dst, '0')
	}
	m := n
	for _, p := range powers {
		if n >= p {
			d := m / p
			m -= d * p
			dst = append(dst, byte('0'+d))
		}
	}
	return append(dst, '.', byte('0'+m)), err
}

// Format returns the text of n tenths.
func Format(n int32) (string, error) {
	b, err := Append(make([]byte, 0, MaxWidth), n)
	return string(b), err
}
