// SPDX-License-Identifier: GPL-3.0-or-later

package zpooliostat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseSection(t *testing.T) {
	tests := map[string]struct {
		input       string
		wantPools   int
		wantSkipped int
		wantErr     string
	}{
		"two healthy pools": {
			input: `rpool {"alloc":9663676416,"free":98784247808,"read_ops":12,"write_ops":345}
tank {"alloc":21474836480,"free":86973087744,"read_ops":7,"write_ops":19}`,
			wantPools: 2,
		},
		"error alongside pools": {
			input: `ERROR zpool iostat exited with code 1
rpool {"alloc":9663676416,"free":98784247808}`,
			wantPools: 1,
			wantErr:   "zpool iostat exited with code 1",
		},
		"error message kept verbatim": {
			input:   "ERROR command timed out after 10 seconds",
			wantErr: "command timed out after 10 seconds",
		},
		"first error wins": {
			input: `ERROR first failure
ERROR second failure`,
			wantErr: "first failure",
		},
		"name without payload skipped": {
			input: `rpool
tank {"alloc":1024,"free":2048}`,
			wantPools:   1,
			wantSkipped: 1,
		},
		"blank lines ignored": {
			input: `
rpool {"alloc":1024,"free":2048}

`,
			wantPools: 1,
		},
		"empty input": {
			input: "",
		},
		"surrounding whitespace tolerated": {
			input:     `  rpool   {"alloc":1024,"free":2048}  `,
			wantPools: 1,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			section := parseSection([]byte(test.input))

			require.NotNil(t, section)
			assert.Len(t, section.Pools, test.wantPools)
			assert.Equal(t, test.wantSkipped, section.Skipped)

			if test.wantErr != "" {
				require.NotNil(t, section.Err)
				assert.Equal(t, test.wantErr, section.Err.Message)
			} else {
				assert.Nil(t, section.Err)
			}
		})
	}
}

func Test_parseSectionPayloadIsolation(t *testing.T) {
	input := `rpool {"alloc":9663676416,"free":98784247808,"read_ops":12}
broken {"alloc":not-json
tank {"alloc":21474836480,"free":86973087744}`

	section := parseSection([]byte(input))

	require.Len(t, section.Pools, 3)
	assert.Nil(t, section.Err)

	assert.Nil(t, section.Pools["rpool"].Err)
	assert.Nil(t, section.Pools["tank"].Err)

	require.NotNil(t, section.Pools["broken"].Err)
	assert.Equal(t, "JSON parsing failed", section.Pools["broken"].Err.Reason)
	assert.Nil(t, section.Pools["broken"].Counters)
}

func Test_parseSnapshot(t *testing.T) {
	tests := map[string]struct {
		payload       string
		wantErrReason string
		wantCounters  map[string]float64
	}{
		"numeric object": {
			payload:      `{"alloc":1024,"free":2048,"read_wait":15231143.5}`,
			wantCounters: map[string]float64{"alloc": 1024, "free": 2048, "read_wait": 15231143.5},
		},
		"unrecognized keys retained": {
			payload:      `{"alloc":1024,"future_counter":7}`,
			wantCounters: map[string]float64{"alloc": 1024, "future_counter": 7},
		},
		"null member treated as absent": {
			payload:      `{"alloc":1024,"trim_wait":null}`,
			wantCounters: map[string]float64{"alloc": 1024},
		},
		"invalid json": {
			payload:       `{"alloc":`,
			wantErrReason: "JSON parsing failed",
		},
		"array payload": {
			payload:       `[1024, 2048]`,
			wantErrReason: "invalid JSON structure",
		},
		"scalar payload": {
			payload:       `1024`,
			wantErrReason: "invalid JSON structure",
		},
		"non-numeric member": {
			payload:       `{"alloc":1024,"state":"ONLINE"}`,
			wantErrReason: "non-numeric value for 'state'",
		},
		"empty object": {
			payload:      `{}`,
			wantCounters: map[string]float64{},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			snap := parseSnapshot("rpool", test.payload)

			require.NotNil(t, snap)
			assert.Equal(t, "rpool", snap.Name)

			if test.wantErrReason != "" {
				require.NotNil(t, snap.Err)
				assert.Equal(t, test.wantErrReason, snap.Err.Reason)
				return
			}
			require.Nil(t, snap.Err)
			assert.Equal(t, test.wantCounters, snap.Counters)
		})
	}
}
