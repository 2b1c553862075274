// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package meter

// Calibration holds the zero offset (tare) subtracted from power readings.
//
// The zero value has no offset.
// The offset only applies to power, voltage is always shown as measured.
type Calibration struct {
	bias float32
}

// Bias returns the power offset in mW.
func (c *Calibration) Bias() float32 {
	return c.bias
}

// Tare zeroes the meter at the power of the given unbiased reading.
func (c *Calibration) Tare(r Reading) {
	c.bias = r.Power
}

// Reset clears the offset.
func (c *Calibration) Reset() {
	c.bias = 0
}

// Apply returns the reading with the offset removed from the power.
func (c *Calibration) Apply(r Reading) Reading {
	r.Power -= c.bias
	return r
}
