// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package vlp provides the acquisition loop of a handheld optical power meter.
//
// The loop reads the ADC, converts the sample to voltage and power, shows both
// on line 2 of the display and zeroes the power reading (tare) when the
// calibration button is pressed.
//
// Example of use:
//
// 	m := vlp.New(hw, meter.Default, logger)
// 	err := m.Run(ctx)
//
package vlp

import (
	"context"

	"github.com/edaniels/golog"
	"github.com/warthog618/vlp/display"
	"github.com/warthog618/vlp/fixed"
	"github.com/warthog618/vlp/gpio"
	"github.com/warthog618/vlp/meter"
)

// Text shown by the meter.
const (
	BannerTitle   = "    VLP-2000    "
	BannerVersion = "      v1.1      "
	Header        = "Power   Voltage"
)

// Display columns of the reading fields on line 2.
const (
	PowerCol   = 0
	VoltageCol = 8
)

// Timing, in ms.
const (
	// time the buzzer sounds on tare.
	BeepTime = 100
	// settling time after the banner gate.
	BannerSettle = 500
	// button polling period while waiting for a level.
	pollPeriod = 1
)

// ADC provides raw conversion codes.
type ADC interface {
	// Init configures the converter. Called once before the first Read.
	Init()
	// Read returns the latest conversion.
	Read() uint16
}

// Delayer blocks for whole milliseconds.
type Delayer interface {
	Ms(ms uint)
}

// Hardware is the set of devices driven by the meter.
type Hardware struct {
	ADC     ADC
	Display display.Display
	// Active low.
	Button gpio.Reader
	// Active low, low sounds.
	Buzzer gpio.Writer
	Delay  Delayer
}

// State is the state of the acquisition loop.
type State int

const (
	// Startup initialises the ADC and checks for the banner gate.
	Startup State = iota
	// Banner shows the banner until the button is released, pressed and
	// released again.
	Banner
	// Running continuously reads and displays the power.
	Running
)

var stateNames = map[State]string{
	Startup: "startup",
	Banner:  "banner",
	Running: "running",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

// Frame is the outcome of one pass of the running loop.
type Frame struct {
	Raw uint16
	// Reading before the tare is applied.
	Reading meter.Reading
	// Reading as displayed.
	Shown meter.Reading
	// Text written to line 2.
	Line string
	// True if a field was saturated to fit the display.
	Overrange bool
	// True if the button was pressed and the meter zeroed on Reading.
	Tared bool
}

// Meter is the acquisition loop.
type Meter struct {
	hw        Hardware
	consts    meter.Constants
	cal       meter.Calibration
	log       golog.Logger
	state     State
	overrange bool
}

// New creates a Meter in the Startup state.
// The buzzer is silenced.
func New(hw Hardware, c meter.Constants, log golog.Logger) *Meter {
	hw.Buzzer.Write(gpio.High)
	return &Meter{hw: hw, consts: c, log: log}
}

// State returns the current state of the loop.
func (m *Meter) State() State {
	return m.state
}

// Bias returns the current tare offset in mW.
func (m *Meter) Bias() float32 {
	return m.cal.Bias()
}

// Run starts the meter and runs the loop until the context is done.
// A done context is not an error.
func (m *Meter) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		if _, err := m.Step(ctx); err != nil && ctx.Err() == nil {
			return err
		}
	}
	return nil
}

// Start steps the meter until it is Running.
func (m *Meter) Start(ctx context.Context) error {
	for m.state != Running {
		if _, err := m.Step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Step performs the action of the current state, which may transition the
// meter to the next state.
// The Frame is only populated in the Running state.
// Errors are only returned when the context is done while waiting on the
// button.
func (m *Meter) Step(ctx context.Context) (Frame, error) {
	switch m.state {
	case Startup:
		m.hw.ADC.Init()
		if !m.pressed() {
			m.run()
			return Frame{}, nil
		}
		m.log.Info("banner gate")
		m.show(BannerTitle, 1)
		m.show(BannerVersion, 2)
		m.state = Banner
	case Banner:
		for _, l := range []gpio.Level{gpio.High, gpio.Low, gpio.High} {
			if err := m.waitButton(ctx, l); err != nil {
				return Frame{}, err
			}
		}
		m.hw.Delay.Ms(BannerSettle)
		m.run()
	case Running:
		return m.update(ctx)
	}
	return Frame{}, nil
}

func (m *Meter) run() {
	m.show(Header, 1)
	m.state = Running
	m.log.Debug("running")
}

func (m *Meter) update(ctx context.Context) (Frame, error) {
	f := Frame{Raw: m.hw.ADC.Read()}
	f.Reading = m.consts.Condition(f.Raw)
	f.Shown = m.cal.Apply(f.Reading)

	var buf [fixed.MaxWidth]byte
	line := display.NewLine()
	b, perr := fixed.Append(buf[:0], meter.Tenths(f.Shown.Power))
	line.Put(PowerCol, b)
	b, verr := fixed.Append(buf[:0], meter.Tenths(f.Shown.Voltage))
	line.Put(VoltageCol, b)
	f.Line = line.String()
	f.Overrange = perr != nil || verr != nil
	if f.Overrange && !m.overrange {
		m.log.Warnw("reading saturated", "power", f.Shown.Power, "voltage", f.Shown.Voltage)
	}
	m.overrange = f.Overrange
	m.show(f.Line, 2)

	if !m.pressed() {
		return f, nil
	}
	m.hw.Buzzer.Write(gpio.Low)
	m.cal.Tare(f.Reading)
	f.Tared = true
	m.log.Infow("tare", "raw", f.Raw, "bias", m.cal.Bias())
	m.hw.Delay.Ms(BeepTime)
	m.hw.Buzzer.Write(gpio.High)
	return f, m.waitButton(ctx, gpio.High)
}

func (m *Meter) pressed() bool {
	return m.hw.Button.Read() == gpio.Low
}

// waitButton polls the button until it reaches level l.
func (m *Meter) waitButton(ctx context.Context, l gpio.Level) error {
	for m.hw.Button.Read() != l {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.hw.Delay.Ms(pollPeriod)
	}
	return nil
}

func (m *Meter) show(text string, n int) {
	if err := m.hw.Display.ShowLine(text, n); err != nil {
		m.log.Debugw("display", "line", n, "error", err)
	}
}
