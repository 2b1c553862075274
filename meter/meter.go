// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package meter converts raw ADC codes into the physical readings displayed by
// the meter.
//
// The arithmetic is float32 throughout, matching the precision the meter was
// calibrated with.
package meter

import (
	"math"

	"github.com/chewxy/math32"
	"periph.io/x/conn/v3/physic"
)

// FullScale is the number of codes of the 16-bit converter.
const FullScale = 65536

// Constants are the fixed calibration constants of the meter.
type Constants struct {
	// ADC reference voltage in V.
	VRef float32
	// Gain configured in the ADC.
	ADCGain float32
	// Gain of the analog front end ahead of the ADC.
	AmpGain float32
	// Sensor responsivity in mW per mV.
	MWRatio float32
}

// Default are the constants of the reference meter.
var Default = Constants{
	VRef:    2.47, // LM385
	ADCGain: 2,    // matches ad7705.SetupConfig
	AmpGain: 2.3,  // trimmed by RW2
	MWRatio: 9.3,
}

// Reading is a reading derived from one raw sample.
type Reading struct {
	// Sensor voltage in mV.
	Voltage float32
	// Optical power in mW.
	Power float32
}

// Condition converts a raw ADC code to a Reading.
//
// The result is a pure function of the code and the constants.
func (c Constants) Condition(raw uint16) Reading {
	adcmv := float32(raw) * c.VRef / c.ADCGain / FullScale * 1000
	mv := adcmv / c.AmpGain
	return Reading{Voltage: mv, Power: mv * c.MWRatio}
}

// Potential returns the sensor voltage.
func (r Reading) Potential() physic.ElectricPotential {
	return physic.ElectricPotential(float64(r.Voltage) * float64(physic.MilliVolt))
}

// Watts returns the optical power.
func (r Reading) Watts() physic.Power {
	return physic.Power(float64(r.Power) * float64(physic.MilliWatt))
}

// Tenths returns v scaled by 10 and truncated towards zero, the fixed point
// representation used for display.
//
// Values beyond the int32 range, including infinities, saturate.
// NaN returns 0.
func Tenths(v float32) int32 {
	if math32.IsNaN(v) {
		return 0
	}
	t := math32.Trunc(v * 10)
	switch {
	case t >= 1<<31:
		return math.MaxInt32
	case t < -1<<31:
		return math.MinInt32
	}
	return int32(t)
}
