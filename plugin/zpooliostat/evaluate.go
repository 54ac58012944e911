// SPDX-License-Identifier: GPL-3.0-or-later

package zpooliostat

import (
	"encoding/json"
	"fmt"
	"math"
)

// Evaluation is the outcome of comparing one normalized metric value
// against its levels.
type Evaluation struct {
	Name        string
	Label       string
	Unit        unitKind
	Value       float64 // normalized; NaN when the source counter is missing
	Severity    Severity
	Text        string // rendered human line; empty for missing values
	Thresholded bool
	Warn, Crit  float64 // normalized; NaN when not thresholded
}

func (ev Evaluation) MarshalJSON() ([]byte, error) {
	out := struct {
		Name     string    `json:"name"`
		Label    string    `json:"label"`
		Unit     string    `json:"unit"`
		Value    *float64  `json:"value"`
		Severity Severity  `json:"severity"`
		Text     string    `json:"text,omitempty"`
		Levels   []float64 `json:"levels,omitempty"`
	}{
		Name:     ev.Name,
		Label:    ev.Label,
		Unit:     ev.Unit.String(),
		Severity: ev.Severity,
		Text:     ev.Text,
	}

	if !math.IsNaN(ev.Value) {
		out.Value = &ev.Value
	}
	if ev.Thresholded {
		out.Levels = []float64{ev.Warn, ev.Crit}
	}

	return json.Marshal(out)
}

// evaluateMetric classifies one payload-backed metric. A missing counter
// yields an unknown evaluation with a NaN value so downstream graphing
// shows a gap instead of a silently absent series; missing counters never
// contribute to the pool severity.
func evaluateMetric(def metricDef, snap *Snapshot, lv *Levels) Evaluation {
	raw, ok := snap.Counters[def.key]
	if !ok {
		return missingEvaluation(def)
	}
	return evaluateValue(def, normalizeValue(def.unit, raw), normalizeLevels(def.unit, lv))
}

func missingEvaluation(def metricDef) Evaluation {
	return Evaluation{
		Name:     def.name,
		Label:    def.label,
		Unit:     def.unit,
		Value:    math.NaN(),
		Severity: SeverityUnknown,
		Warn:     math.NaN(),
		Crit:     math.NaN(),
	}
}

// evaluateValue classifies an already normalized value. Comparison is upper
// bound only and equality alarms: thresholds mean "alarm at or above".
func evaluateValue(def metricDef, v float64, lv *Levels) Evaluation {
	ev := Evaluation{
		Name:  def.name,
		Label: def.label,
		Unit:  def.unit,
		Value: v,
		Warn:  math.NaN(),
		Crit:  math.NaN(),
	}

	if lv == nil {
		ev.Severity = SeverityOK
		ev.Text = fmt.Sprintf("%s: %s", def.label, renderValue(def.unit, v))
		return ev
	}

	ev.Thresholded = true
	ev.Warn, ev.Crit = lv.Warning, lv.Critical

	switch {
	case v >= lv.Critical:
		ev.Severity = SeverityCritical
	case v >= lv.Warning:
		ev.Severity = SeverityWarning
	default:
		ev.Severity = SeverityOK
	}

	ev.Text = fmt.Sprintf("%s: %s", def.label, renderValue(def.unit, v))
	if ev.Severity != SeverityOK {
		ev.Text += fmt.Sprintf(" (warn/crit at %s/%s)",
			renderValue(def.unit, lv.Warning), renderValue(def.unit, lv.Critical))
	}

	return ev
}

// evaluateStorage derives storage utilization from the allocated and free
// counters. The second return is false when alloc+free is not positive,
// which also covers pools whose capacity counters are absent.
func evaluateStorage(snap *Snapshot, lv *Levels) (Evaluation, bool) {
	alloc := snap.Counters["alloc"]
	free := snap.Counters["free"]

	total := alloc + free
	if total <= 0 {
		return Evaluation{}, false
	}

	return evaluateValue(storageDef, alloc/total*100, lv), true
}

// evaluateDiskWaitMax derives the combined disk wait metric. It is computed
// only when both components are present: a partial max could mask a
// regression on the missing side.
func evaluateDiskWaitMax(snap *Snapshot, lv *Levels) (Evaluation, bool) {
	r, okR := snap.Counters["disk_read_wait"]
	w, okW := snap.Counters["disk_write_wait"]
	if !okR || !okW {
		return Evaluation{}, false
	}

	def := diskWaitMaxDef

	return evaluateValue(def, normalizeValue(def.unit, math.Max(r, w)), normalizeLevels(def.unit, lv)), true
}
