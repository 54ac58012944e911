// SPDX-License-Identifier: GPL-3.0-or-later

package zpooliostat

import "slices"

// discoverPools returns the sorted names of pools whose payload decoded
// clean. A global collection error does not suppress discovery: the pool
// names parsed alongside it are still listed.
func discoverPools(section *Section) []string {
	var names []string
	for name, snap := range section.Pools {
		if snap.Err == nil {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
