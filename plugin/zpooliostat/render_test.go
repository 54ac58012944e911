// SPDX-License-Identifier: GPL-3.0-or-later

package zpooliostat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func Test_renderValue(t *testing.T) {
	tests := map[string]struct {
		kind unitKind
		v    float64
		want string
	}{
		"percent":            {kind: unitPercent, v: 82.345, want: "82.35%"},
		"ops per second":     {kind: unitOpsPerSec, v: 345, want: "345.0/s"},
		"wait seconds as ms": {kind: unitWaitTime, v: 0.015231143, want: "15.23ms"},
		"wait zero":          {kind: unitWaitTime, v: 0, want: "0.00ms"},
		"count":              {kind: unitCount, v: 3, want: "3"},
		"bytes small":        {kind: unitBytes, v: 512, want: "512 B"},
		"bytes kibi":         {kind: unitBytes, v: 1536, want: "1.50 KiB"},
		"bytes gibi":         {kind: unitBytes, v: 9663676416, want: "9.00 GiB"},
		"bytes per second":   {kind: unitBytesPerSec, v: 25165824, want: "24.00 MiB/s"},
		"throughput zero":    {kind: unitBytesPerSec, v: 0, want: "0 B/s"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.want, renderValue(test.kind, test.v))
		})
	}
}

func Test_perfValue(t *testing.T) {
	assert.Equal(t, "U", perfValue(math.NaN()))
	assert.Equal(t, "0.075", perfValue(0.075))
	assert.Equal(t, "9663676416", perfValue(9663676416))
}

func Test_renderPerfdatum(t *testing.T) {
	tests := map[string]struct {
		ev   Evaluation
		want string
	}{
		"thresholded percent carries bounds": {
			ev: Evaluation{
				Name: "storage_used_percent", Unit: unitPercent, Value: 85,
				Thresholded: true, Warn: 80, Crit: 90,
			},
			want: "storage_used_percent=85;80;90;0;100",
		},
		"thresholded wait": {
			ev: Evaluation{
				Name: "read_wait_s", Unit: unitWaitTime, Value: 0.075,
				Thresholded: true, Warn: 0.05, Crit: 0.1,
			},
			want: "read_wait_s=0.075;0.05;0.1",
		},
		"trend-only trims trailing fields": {
			ev: Evaluation{
				Name: "free", Unit: unitBytes, Value: 2048,
				Warn: math.NaN(), Crit: math.NaN(),
			},
			want: "free=2048",
		},
		"missing value renders U": {
			ev: Evaluation{
				Name: "trim_wait_s", Unit: unitWaitTime, Value: math.NaN(),
				Warn: math.NaN(), Crit: math.NaN(),
			},
			want: "trim_wait_s=U",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.want, renderPerfdatum(test.ev))
		})
	}
}

func Test_renderTextReport(t *testing.T) {
	tests := map[string]struct {
		report *Report
		want   string
	}{
		"warning pool": {
			report: &Report{
				Pool:     "rpool",
				Severity: SeverityWarning,
				Summary:  []string{"Storage utilization: 85.00% (warn/crit at 80.00%/90.00%)"},
				Metrics: []Evaluation{{
					Name: "storage_used_percent", Unit: unitPercent, Value: 85,
					Thresholded: true, Warn: 80, Crit: 90,
				}},
			},
			want: `1 "ZPool I/O rpool" storage_used_percent=85;80;90;0;100 Storage utilization: 85.00% (warn/crit at 80.00%/90.00%)`,
		},
		"multiple summary lines joined": {
			report: &Report{
				Pool:     "tank",
				Severity: SeverityCritical,
				Summary:  []string{"Storage utilization: 10.00%", "Read wait time: 150.00ms (warn/crit at 50.00ms/100.00ms)"},
				Metrics: []Evaluation{{
					Name: "read_wait_s", Unit: unitWaitTime, Value: 0.15,
					Thresholded: true, Warn: 0.05, Crit: 0.1,
				}},
			},
			want: `2 "ZPool I/O tank" read_wait_s=0.15;0.05;0.1 Storage utilization: 10.00%, Read wait time: 150.00ms (warn/crit at 50.00ms/100.00ms)`,
		},
		"global failure has no item": {
			report: unknownReport("", "Parse error: zpool iostat exited with code 1"),
			want:   `3 "ZPool I/O" - Parse error: zpool iostat exited with code 1`,
		},
		"empty summary falls back to severity": {
			report: &Report{Pool: "tank", Severity: SeverityOK},
			want:   `0 "ZPool I/O tank" - OK`,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.want, renderTextReport(test.report))
		})
	}
}

func TestRenderText(t *testing.T) {
	reports := []*Report{
		{Pool: "rpool", Severity: SeverityOK, Summary: []string{"Storage utilization: 10.00%"}},
		{Pool: "tank", Severity: SeverityOK, Summary: []string{"Storage utilization: 20.00%"}},
	}

	want := `0 "ZPool I/O rpool" - Storage utilization: 10.00%
0 "ZPool I/O tank" - Storage utilization: 20.00%`

	assert.Equal(t, want, RenderText(reports))
}

func TestRenderJSON(t *testing.T) {
	reports := []*Report{{
		Pool:     "rpool",
		Severity: SeverityWarning,
		Summary:  []string{"Storage utilization: 85.00% (warn/crit at 80.00%/90.00%)"},
		Metrics: []Evaluation{
			{Name: "storage_used_percent", Unit: unitPercent, Value: 85, Severity: SeverityWarning, Thresholded: true, Warn: 80, Crit: 90},
			{Name: "trim_wait_s", Unit: unitWaitTime, Value: math.NaN(), Severity: SeverityUnknown, Warn: math.NaN(), Crit: math.NaN()},
		},
	}}

	bs, err := RenderJSON(reports)

	require.NoError(t, err)
	require.True(t, gjson.ValidBytes(bs))

	assert.Equal(t, "rpool", gjson.GetBytes(bs, "0.pool").String())
	assert.Equal(t, "WARN", gjson.GetBytes(bs, "0.severity").String())
	assert.Equal(t, float64(85), gjson.GetBytes(bs, "0.metrics.0.value").Float())
	// a missing counter serializes as null, JSON has no NaN
	assert.Equal(t, gjson.Null, gjson.GetBytes(bs, "0.metrics.1.value").Type)
}
