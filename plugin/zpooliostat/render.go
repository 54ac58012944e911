// SPDX-License-Identifier: GPL-3.0-or-later

package zpooliostat

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var iecUnits = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}

// renderValue formats a normalized value in the unit's conventional
// notation. Wait times are stored in seconds but shown in milliseconds.
func renderValue(kind unitKind, v float64) string {
	switch kind {
	case unitPercent:
		return fmt.Sprintf("%.2f%%", v)
	case unitOpsPerSec:
		return fmt.Sprintf("%.1f/s", v)
	case unitWaitTime:
		return fmt.Sprintf("%.2fms", v*msPerSec)
	case unitCount:
		return fmt.Sprintf("%.0f", v)
	case unitBytes:
		return renderBytes(v)
	case unitBytesPerSec:
		return renderBytes(v) + "/s"
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

func renderBytes(v float64) string {
	i := 0
	for math.Abs(v) >= 1024 && i < len(iecUnits)-1 {
		v /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%.0f B", v)
	}
	return fmt.Sprintf("%.2f %s", v, iecUnits[i])
}

// perfValue renders a raw numeric for performance data. The monitoring
// convention for an unknown value is 'U'.
func perfValue(v float64) string {
	if math.IsNaN(v) {
		return "U"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// renderPerfdatum emits one 'name=value;warn;crit;min;max' field with
// trailing empty parts trimmed. Percent metrics carry their natural 0..100
// boundaries.
func renderPerfdatum(ev Evaluation) string {
	var warn, crit string
	if ev.Thresholded {
		warn, crit = perfValue(ev.Warn), perfValue(ev.Crit)
	}

	var min, max string
	if ev.Unit == unitPercent {
		min, max = "0", "100"
	}

	s := strings.Join([]string{ev.Name + "=" + perfValue(ev.Value), warn, crit, min, max}, ";")

	return strings.TrimRight(s, ";")
}

// renderTextReport formats one report as an agent local check line:
// state, quoted service name, performance data ('-' when none), summary.
func renderTextReport(r *Report) string {
	perfdata := "-"
	if len(r.Metrics) > 0 {
		fields := make([]string, 0, len(r.Metrics))
		for _, ev := range r.Metrics {
			fields = append(fields, renderPerfdatum(ev))
		}
		perfdata = strings.Join(fields, "|")
	}

	summary := strings.Join(r.Summary, ", ")
	if summary == "" {
		summary = r.Severity.String()
	}

	service := "ZPool I/O"
	if r.Pool != "" {
		service += " " + r.Pool
	}

	return fmt.Sprintf("%d %q %s %s", r.Severity.ExitStatus(), service, perfdata, summary)
}

// RenderText formats reports as local check lines, one pool per line.
func RenderText(reports []*Report) string {
	lines := make([]string, 0, len(reports))
	for _, r := range reports {
		lines = append(lines, renderTextReport(r))
	}
	return strings.Join(lines, "\n")
}

// RenderJSON formats reports as an indented JSON array.
func RenderJSON(reports []*Report) ([]byte, error) {
	return json.MarshalIndent(reports, "", " ")
}
