// SPDX-License-Identifier: GPL-3.0-or-later

package zpooliostat

import (
	"fmt"
	"runtime"
	"slices"

	"github.com/sourcegraph/conc/pool"
)

// Report is the aggregate check result for one pool. Severity is the worst
// severity among thresholded evaluations; trend-only and missing metrics
// never escalate it. Summary carries the storage utilization line plus the
// line of every thresholded evaluation that is not OK. Metrics is the full
// ordered evaluation set, including NaN placeholders, for graphing.
type Report struct {
	Pool     string       `json:"pool"`
	Severity Severity     `json:"severity"`
	Summary  []string     `json:"summary"`
	Metrics  []Evaluation `json:"metrics"`
}

func (r *Report) add(ev Evaluation) {
	r.Metrics = append(r.Metrics, ev)
	if !ev.Thresholded {
		return
	}
	r.Severity = worstSeverity(r.Severity, ev.Severity)
	if ev.Severity != SeverityOK {
		r.Summary = append(r.Summary, ev.Text)
	}
}

func unknownReport(name, summary string) *Report {
	return &Report{Pool: name, Severity: SeverityUnknown, Summary: []string{summary}}
}

// buildReport evaluates one pool against the rule set. Reports are a pure
// function of the section and the rules: identical inputs always produce an
// identical report.
func buildReport(name string, section *Section, rules map[string]*Levels) *Report {
	if section.Err != nil {
		return unknownReport(name, fmt.Sprintf("Parse error: %s", section.Err.Message))
	}

	snap, ok := section.Pools[name]
	if !ok {
		return unknownReport(name, fmt.Sprintf("Pool %s not found", name))
	}

	if snap.Err != nil {
		return unknownReport(name, fmt.Sprintf("Pool %s error: %s", name, snap.Err.Reason))
	}

	if !snapshotHasData(snap) {
		return unknownReport(name, "No metrics found")
	}

	r := &Report{Pool: name, Severity: SeverityOK}

	// The storage utilization line is always part of the summary, OK or not.
	if ev, ok := evaluateStorage(snap, rules[storageDef.levelsKey]); ok {
		r.Metrics = append(r.Metrics, ev)
		r.Summary = append(r.Summary, ev.Text)
		if ev.Thresholded {
			r.Severity = worstSeverity(r.Severity, ev.Severity)
		}
	}

	for _, def := range metricTable {
		r.add(evaluateMetric(def, snap, rules[def.levelsKey]))

		if def.key == "disk_write_wait" {
			if ev, ok := evaluateDiskWaitMax(snap, rules[diskWaitMaxDef.levelsKey]); ok {
				r.add(ev)
			}
		}
	}

	return r
}

// snapshotHasData reports whether the snapshot carries any recognized
// metric. A snapshot without a single known counter is a total failure and
// short-circuits to an unknown report instead of a wall of NaN placeholders.
func snapshotHasData(snap *Snapshot) bool {
	if snap.Counters["alloc"]+snap.Counters["free"] > 0 {
		return true
	}
	for _, def := range metricTable {
		if _, ok := snap.Counters[def.key]; ok {
			return true
		}
	}
	return false
}

// evaluateAll builds one report per pool in the section, ordered by pool
// name. Pools are independent, so multi-pool sections are evaluated
// concurrently; the rule set is shared read-only.
func evaluateAll(section *Section, rules map[string]*Levels) []*Report {
	names := make([]string, 0, len(section.Pools))
	for name := range section.Pools {
		names = append(names, name)
	}
	slices.Sort(names)

	reports := make([]*Report, len(names))

	if len(names) < 2 {
		for i, name := range names {
			reports[i] = buildReport(name, section, rules)
		}
		return reports
	}

	p := pool.New().WithMaxGoroutines(runtime.NumCPU())
	for i, name := range names {
		i, name := i, name // per-iteration copies: the go directive is below 1.22
		p.Go(func() {
			reports[i] = buildReport(name, section, rules)
		})
	}
	p.Wait()

	return reports
}

// WorstSeverity folds reports into the single most urgent severity, the
// plugin's overall exit state.
func WorstSeverity(reports []*Report) Severity {
	worst := SeverityOK
	for _, r := range reports {
		worst = worstSeverity(worst, r.Severity)
	}
	return worst
}
