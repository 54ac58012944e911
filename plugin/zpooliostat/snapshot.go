// SPDX-License-Identifier: GPL-3.0-or-later

package zpooliostat

// Snapshot is one pool's raw I/O counters at one sample instant. Counters
// hold values in the units the agent reports them in: nanoseconds for wait
// times, bytes for capacity and throughput, counts for operations and queue
// depths. Unrecognized counters are retained so future agent metrics
// survive parsing, but only table-recognized keys participate in
// evaluation.
type Snapshot struct {
	Name     string
	Counters map[string]float64
	Err      *PayloadError
}

// PayloadError marks a single pool whose payload could not be decoded into
// the expected shape. Sibling pools are unaffected.
type PayloadError struct {
	Reason string
}

func (e *PayloadError) Error() string { return e.Reason }
