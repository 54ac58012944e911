// SPDX-License-Identifier: GPL-3.0-or-later

package buildinfo

// Version stores the plugin's version number. It's set during the build process using build flags.
var Version = "v0.0.0"

// ConfigDir stores the directory searched for the plugin configuration when
// no --config flag is given. It's set during the build process using build flags.
var ConfigDir = "/etc/zpool-iostat-check"
