// SPDX-License-Identifier: GPL-3.0-or-later

package zpooliostat

// unitKind tells the evaluator how to bring raw counter values and user
// supplied threshold pairs into the canonical unit a metric is stored and
// compared in.
type unitKind int

const (
	unitPercent unitKind = iota
	unitOpsPerSec
	unitBytesPerSec
	unitBytes
	unitWaitTime // raw nanoseconds, stored as seconds, thresholds in milliseconds
	unitCount
)

const (
	nsPerSec = 1e9
	msPerSec = 1e3
)

func (k unitKind) String() string {
	switch k {
	case unitPercent:
		return "percent"
	case unitOpsPerSec:
		return "ops/s"
	case unitBytesPerSec:
		return "bytes/s"
	case unitBytes:
		return "bytes"
	case unitWaitTime:
		return "seconds"
	case unitCount:
		return "count"
	default:
		return "unknown"
	}
}

// normalizeValue converts a raw counter value into the metric's canonical
// unit. Wait times arrive in nanoseconds and are stored in seconds. A raw 0
// stays 0; absence never reaches this function, it is handled as a missing
// counter by the evaluator.
func normalizeValue(kind unitKind, v float64) float64 {
	if kind == unitWaitTime {
		return v / nsPerSec
	}
	return v
}

// normalizeLevels converts a threshold pair from its user-facing unit into
// the metric's canonical unit. Wait time levels are configured in
// milliseconds; everything else is configured in the unit it is stored in.
func normalizeLevels(kind unitKind, lv *Levels) *Levels {
	if lv == nil || kind != unitWaitTime {
		return lv
	}
	return &Levels{Warning: lv.Warning / msPerSec, Critical: lv.Critical / msPerSec}
}
