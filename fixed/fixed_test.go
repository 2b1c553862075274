// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fixed_test

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warthog618/vlp/fixed"
)

func TestFormat(t *testing.T) {
	patterns := []struct {
		n   int32
		s   string
		err error
	}{
		{0, " 0.0", nil},
		{5, " 0.5", nil},
		{-5, "-0.5", nil},
		{9, " 0.9", nil},
		{10, " 1.0", nil},
		{-10, "-1.0", nil},
		{99, " 9.9", nil},
		{100, " 10.0", nil},
		{125, " 12.5", nil},
		{1005, " 100.5", nil},
		{-9999, "-999.9", nil},
		{10000, " 1000.0", nil},
		{10203, " 1020.3", nil},
		{24968, " 2496.8", nil},
		{32767, " 3276.7", nil},
		{-32768, "-3276.8", nil},
		{99999, " 9999.9", nil},
		{-99999, "-9999.9", nil},
		{100000, " 9999.9", fixed.ErrOverrange},
		{-100000, "-9999.9", fixed.ErrOverrange},
		{math.MaxInt32, " 9999.9", fixed.ErrOverrange},
		{math.MinInt32, "-9999.9", fixed.ErrOverrange},
	}
	for _, p := range patterns {
		t.Run(strconv.Itoa(int(p.n)), func(t *testing.T) {
			s, err := fixed.Format(p.n)
			assert.Equal(t, p.err, err)
			assert.Equal(t, p.s, s)
		})
	}
}

func TestAppend(t *testing.T) {
	b := []byte("P:")
	b, err := fixed.Append(b, -123)
	assert.Nil(t, err)
	assert.Equal(t, "P:-12.3", string(b))
}

func TestFormatMatchesDecimal(t *testing.T) {
	// every representable value reads back as its decimal value
	for n := int32(-fixed.MaxTenths); n <= fixed.MaxTenths; n += 7 {
		s, err := fixed.Format(n)
		assert.Nil(t, err)
		assert.LessOrEqual(t, len(s), fixed.MaxWidth)
		v, err := strconv.ParseFloat(s[1:], 64)
		assert.Nil(t, err)
		if n < 0 {
			v = -v
			assert.Equal(t, byte('-'), s[0])
		} else {
			assert.Equal(t, byte(' '), s[0])
		}
		assert.Equal(t, int32(math.Round(v*10)), n, s)
	}
}
