// SPDX-License-Identifier: GPL-3.0-or-later

package zpooliostat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverity_String(t *testing.T) {
	tests := map[string]struct {
		sev  Severity
		want string
	}{
		"ok":       {sev: SeverityOK, want: "OK"},
		"warning":  {sev: SeverityWarning, want: "WARN"},
		"critical": {sev: SeverityCritical, want: "CRIT"},
		"unknown":  {sev: SeverityUnknown, want: "UNKNOWN"},
		"bogus":    {sev: Severity(42), want: "UNKNOWN"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.want, test.sev.String())
		})
	}
}

func TestSeverity_ExitStatus(t *testing.T) {
	tests := map[string]struct {
		sev  Severity
		want int
	}{
		"ok":       {sev: SeverityOK, want: 0},
		"warning":  {sev: SeverityWarning, want: 1},
		"critical": {sev: SeverityCritical, want: 2},
		"unknown":  {sev: SeverityUnknown, want: 3},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.want, test.sev.ExitStatus())
		})
	}
}

func TestSeverity_MarshalJSON(t *testing.T) {
	bs, err := json.Marshal(SeverityCritical)
	require.NoError(t, err)
	assert.Equal(t, `"CRIT"`, string(bs))
}

func Test_worstSeverity(t *testing.T) {
	tests := map[string]struct {
		a, b, want Severity
	}{
		"ok vs ok":             {a: SeverityOK, b: SeverityOK, want: SeverityOK},
		"ok vs warning":        {a: SeverityOK, b: SeverityWarning, want: SeverityWarning},
		"warning vs unknown":   {a: SeverityWarning, b: SeverityUnknown, want: SeverityUnknown},
		"unknown vs critical":  {a: SeverityUnknown, b: SeverityCritical, want: SeverityCritical},
		"critical vs unknown":  {a: SeverityCritical, b: SeverityUnknown, want: SeverityCritical},
		"critical vs warning":  {a: SeverityCritical, b: SeverityWarning, want: SeverityCritical},
		"unknown vs warning":   {a: SeverityUnknown, b: SeverityWarning, want: SeverityUnknown},
		"warning vs ok":        {a: SeverityWarning, b: SeverityOK, want: SeverityWarning},
		"critical vs critical": {a: SeverityCritical, b: SeverityCritical, want: SeverityCritical},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.want, worstSeverity(test.a, test.b))
		})
	}
}
