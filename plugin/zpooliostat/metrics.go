// SPDX-License-Identifier: GPL-3.0-or-later

package zpooliostat

// metricDef describes one pool metric: the payload counter it comes from,
// the name it is emitted under, the label used in summary lines, its unit
// and the levels config key that thresholds it ("" means trend-only).
type metricDef struct {
	key       string
	name      string
	label     string
	unit      unitKind
	levelsKey string
}

// storageDef and diskWaitMaxDef are computed metrics, not payload
// passthroughs. Storage utilization is derived from alloc+free and its line
// is always part of the summary; max disk wait is derived from the two disk
// wait counters and only when both are present.
var (
	storageDef = metricDef{
		name:      "storage_used_percent",
		label:     "Storage utilization",
		unit:      unitPercent,
		levelsKey: "storage_levels",
	}
	diskWaitMaxDef = metricDef{
		name:      "disk_wait_max_s",
		label:     "Max disk wait time",
		unit:      unitWaitTime,
		levelsKey: "disk_wait_levels",
	}
)

// metricTable drives the evaluation of every payload-backed metric, in
// report emission order. Adding a metric is one new row.
var metricTable = []metricDef{
	{key: "read_ops", name: "read_ops", label: "Read operations", unit: unitOpsPerSec, levelsKey: "read_ops_levels"},
	{key: "write_ops", name: "write_ops", label: "Write operations", unit: unitOpsPerSec, levelsKey: "write_ops_levels"},
	{key: "read_bytes", name: "read_throughput", label: "Read throughput", unit: unitBytesPerSec, levelsKey: "read_throughput_levels"},
	{key: "write_bytes", name: "write_throughput", label: "Write throughput", unit: unitBytesPerSec, levelsKey: "write_throughput_levels"},

	{key: "alloc", name: "allocated", label: "Allocated space", unit: unitBytes},
	{key: "free", name: "free", label: "Free space", unit: unitBytes},

	{key: "read_wait", name: "read_wait_s", label: "Read wait time", unit: unitWaitTime, levelsKey: "read_wait_levels"},
	{key: "write_wait", name: "write_wait_s", label: "Write wait time", unit: unitWaitTime, levelsKey: "write_wait_levels"},
	{key: "disk_read_wait", name: "disk_read_wait_s", label: "Disk read wait time", unit: unitWaitTime},
	{key: "disk_write_wait", name: "disk_write_wait_s", label: "Disk write wait time", unit: unitWaitTime},

	{key: "syncq_read_wait", name: "syncq_read_wait_s", label: "Sync queue read wait time", unit: unitWaitTime, levelsKey: "syncq_read_wait_levels"},
	{key: "syncq_write_wait", name: "syncq_write_wait_s", label: "Sync queue write wait time", unit: unitWaitTime, levelsKey: "syncq_write_wait_levels"},
	{key: "asyncq_read_wait", name: "asyncq_read_wait_s", label: "Async queue read wait time", unit: unitWaitTime, levelsKey: "asyncq_read_wait_levels"},
	{key: "asyncq_write_wait", name: "asyncq_write_wait_s", label: "Async queue write wait time", unit: unitWaitTime, levelsKey: "asyncq_write_wait_levels"},
	{key: "scrub_wait", name: "scrub_wait_s", label: "Scrub wait time", unit: unitWaitTime, levelsKey: "scrub_wait_levels"},
	{key: "trim_wait", name: "trim_wait_s", label: "Trim wait time", unit: unitWaitTime, levelsKey: "trim_wait_levels"},
	{key: "rebuild_wait", name: "rebuild_wait_s", label: "Rebuild wait time", unit: unitWaitTime, levelsKey: "rebuild_wait_levels"},

	{key: "syncq_read_pend", name: "syncq_read_pend", label: "Sync queue read pending", unit: unitCount, levelsKey: "syncq_read_pend_levels"},
	{key: "syncq_read_activ", name: "syncq_read_activ", label: "Sync queue read active", unit: unitCount, levelsKey: "syncq_read_activ_levels"},
	{key: "syncq_write_pend", name: "syncq_write_pend", label: "Sync queue write pending", unit: unitCount, levelsKey: "syncq_write_pend_levels"},
	{key: "syncq_write_activ", name: "syncq_write_activ", label: "Sync queue write active", unit: unitCount, levelsKey: "syncq_write_activ_levels"},
	{key: "asyncq_read_pend", name: "asyncq_read_pend", label: "Async queue read pending", unit: unitCount, levelsKey: "asyncq_read_pend_levels"},
	{key: "asyncq_read_activ", name: "asyncq_read_activ", label: "Async queue read active", unit: unitCount, levelsKey: "asyncq_read_activ_levels"},
	{key: "asyncq_write_pend", name: "asyncq_write_pend", label: "Async queue write pending", unit: unitCount, levelsKey: "asyncq_write_pend_levels"},
	{key: "asyncq_write_activ", name: "asyncq_write_activ", label: "Async queue write active", unit: unitCount, levelsKey: "asyncq_write_activ_levels"},
	{key: "scrubq_read_pend", name: "scrubq_read_pend", label: "Scrub queue read pending", unit: unitCount, levelsKey: "scrubq_read_pend_levels"},
	{key: "scrubq_read_activ", name: "scrubq_read_activ", label: "Scrub queue read active", unit: unitCount, levelsKey: "scrubq_read_activ_levels"},
	{key: "trimq_write_pend", name: "trimq_write_pend", label: "Trim queue write pending", unit: unitCount, levelsKey: "trimq_write_pend_levels"},
	{key: "trimq_write_activ", name: "trimq_write_activ", label: "Trim queue write active", unit: unitCount, levelsKey: "trimq_write_activ_levels"},
	{key: "rebuildq_write_pend", name: "rebuildq_write_pend", label: "Rebuild queue write pending", unit: unitCount, levelsKey: "rebuildq_write_pend_levels"},
	{key: "rebuildq_write_activ", name: "rebuildq_write_activ", label: "Rebuild queue write active", unit: unitCount, levelsKey: "rebuildq_write_activ_levels"},
}

func knownLevelsKeys() map[string]bool {
	keys := map[string]bool{
		storageDef.levelsKey:     true,
		diskWaitMaxDef.levelsKey: true,
	}
	for _, def := range metricTable {
		if def.levelsKey != "" {
			keys[def.levelsKey] = true
		}
	}
	return keys
}
