// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package meter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warthog618/vlp/meter"
)

func TestCalibrationZeroValue(t *testing.T) {
	var c meter.Calibration
	r := meter.Default.Condition(1234)
	assert.Equal(t, float32(0), c.Bias())
	assert.Equal(t, r, c.Apply(r))
}

func TestTareIdempotent(t *testing.T) {
	var c meter.Calibration
	r := meter.Default.Condition(20000)
	c.Tare(r)
	assert.Equal(t, float32(0), c.Apply(r).Power)
	c.Tare(r)
	assert.Equal(t, float32(0), c.Apply(r).Power)
	assert.Equal(t, r.Power, c.Bias())
}

func TestTareThenReading(t *testing.T) {
	var c meter.Calibration
	a := meter.Default.Condition(1000)
	b := meter.Default.Condition(30000)
	c.Tare(a)
	got := c.Apply(b)
	assert.Equal(t, b.Power-a.Power, got.Power)
	// voltage is never biased
	assert.Equal(t, b.Voltage, got.Voltage)
	// below the tare point power goes negative
	assert.Less(t, c.Apply(meter.Default.Condition(0)).Power, float32(0))
}

func TestCalibrationReset(t *testing.T) {
	var c meter.Calibration
	r := meter.Default.Condition(500)
	c.Tare(r)
	c.Reset()
	assert.Equal(t, r, c.Apply(r))
}
