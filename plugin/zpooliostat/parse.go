// SPDX-License-Identifier: GPL-3.0-or-later

package zpooliostat

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// errorToken is the reserved pool identifier the agent uses to report that
// the statistics command itself failed.
const errorToken = "ERROR"

// GlobalError is a collection failure reported by the agent. It invalidates
// evaluation for every pool in the cycle.
type GlobalError struct {
	Message string
}

func (e *GlobalError) Error() string { return "parse error: " + e.Message }

// Section is the outcome of parsing one agent data cycle. A non-nil Err
// means the cycle is globally failed; any pools parsed alongside it are
// still listed so discovery keeps working. Skipped counts entries dropped
// for missing a payload.
type Section struct {
	Pools   map[string]*Snapshot
	Skipped int
	Err     *GlobalError
}

// parseSection turns raw agent section text into per-pool snapshots. Each
// entry is one line, a pool name followed by a JSON payload. Non-blank
// lines without a payload are skipped, never treated as errors. A decode
// failure is confined to its own pool.
func parseSection(raw []byte) *Section {
	section := &Section{Pools: make(map[string]*Snapshot)}

	sc := bufio.NewScanner(bytes.NewReader(raw))

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		name, payload, ok := strings.Cut(line, " ")
		payload = strings.TrimSpace(payload)
		if !ok || payload == "" {
			section.Skipped++
			continue
		}

		if name == errorToken {
			if section.Err == nil {
				section.Err = &GlobalError{Message: payload}
			}
			continue
		}

		section.Pools[name] = parseSnapshot(name, payload)
	}

	return section
}

func parseSnapshot(name, payload string) *Snapshot {
	snap := &Snapshot{Name: name}

	if !gjson.Valid(payload) {
		snap.Err = &PayloadError{Reason: "JSON parsing failed"}
		return snap
	}

	v := gjson.Parse(payload)
	if !v.IsObject() {
		snap.Err = &PayloadError{Reason: "invalid JSON structure"}
		return snap
	}

	counters := make(map[string]float64)

	v.ForEach(func(key, value gjson.Result) bool {
		switch value.Type {
		case gjson.Number:
			counters[key.String()] = value.Float()
			return true
		case gjson.Null:
			// a present but valueless counter is the same as an absent one
			return true
		default:
			snap.Err = &PayloadError{Reason: fmt.Sprintf("non-numeric value for '%s'", key.String())}
			return false
		}
	})
	if snap.Err != nil {
		return snap
	}

	snap.Counters = counters

	return snap
}
