// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Option defines command line options.
type Option struct {
	ConfigPath   string   `short:"c" long:"config" description:"configuration file to read"`
	Input        string   `short:"i" long:"input" description:"section source, a file path or '-' for stdin"`
	Format       string   `short:"f" long:"format" description:"report output format (text or json)" default:"text"`
	Pools        []string `short:"p" long:"pool" description:"evaluate only the named pool (repeatable)"`
	Discover     bool     `long:"discover" description:"list pools found in the section and exit"`
	Watch        bool     `long:"watch" description:"keep running, re-evaluating when the section file changes"`
	ConfigSchema bool     `long:"config-schema" description:"display the configuration schema and exit"`
	Debug        bool     `short:"d" long:"debug" description:"debug mode"`
	Version      bool     `short:"v" long:"version" description:"display the version and exit"`
}

// Parse returns parsed command-line flags in Option struct
func Parse(args []string) (*Option, error) {
	opt := &Option{}
	parser := flags.NewParser(opt, flags.Default)
	parser.Name = "zpool-iostat-check"
	parser.Usage = "[OPTIONS] [section file]"

	rest, err := parser.ParseArgs(args)
	if err != nil {
		return nil, err
	}

	if len(rest) > 1 && opt.Input == "" {
		opt.Input = rest[1]
	}

	switch opt.Format {
	case "text", "json":
	default:
		return nil, fmt.Errorf("unsupported format '%s' (expected 'text' or 'json')", opt.Format)
	}

	return opt, nil
}

func IsHelp(err error) bool {
	return flags.WroteHelp(err)
}
