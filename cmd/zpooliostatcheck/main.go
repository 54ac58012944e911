// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/oposs/zpool-iostat-check/logger"
	"github.com/oposs/zpool-iostat-check/pkg/buildinfo"
	"github.com/oposs/zpool-iostat-check/pkg/cli"
	"github.com/oposs/zpool-iostat-check/plugin/zpooliostat"
)

func main() {
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	opts := parseCLI()

	if opts.Version {
		fmt.Printf("zpool-iostat-check, version: %s\n", buildinfo.Version)
		return
	}
	if opts.ConfigSchema {
		fmt.Println(zpooliostat.ConfigSchema())
		return
	}

	if lvl := os.Getenv("ZPOOL_IOSTAT_CHECK_LOG_LEVEL"); lvl != "" {
		logger.Level.SetByName(lvl)
	}
	if opts.Debug {
		logger.Level.Set(slog.LevelDebug)
	}

	p := zpooliostat.New()

	configPath := resolveConfigPath(opts.ConfigPath)
	if configPath != "" {
		p.Debugf("using configuration file '%s'", configPath)
		if err := p.LoadConfig(configPath); err != nil {
			p.Errorf("%v", err)
			os.Exit(zpooliostat.SeverityUnknown.ExitStatus())
		}
	}
	if opts.Input != "" {
		p.SectionPath = opts.Input
	}

	if err := p.Init(); err != nil {
		p.Errorf("%v", err)
		os.Exit(zpooliostat.SeverityUnknown.ExitStatus())
	}

	switch {
	case opts.Watch:
		os.Exit(runWatch(p, configPath, opts))
	case opts.Discover:
		os.Exit(runDiscover(p, opts))
	default:
		os.Exit(runEvaluate(p, opts))
	}
}

func parseCLI() *cli.Option {
	opt, err := cli.Parse(os.Args)
	if err != nil {
		if cli.IsHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	return opt
}

// resolveConfigPath prefers the command line flag, then the first config
// file present in the install config directory.
func resolveConfigPath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	for _, name := range []string{"config.yaml", "config.json"} {
		path := filepath.Join(buildinfo.ConfigDir, name)
		if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

func runEvaluate(p *zpooliostat.Plugin, opts *cli.Option) int {
	var reports []*zpooliostat.Report
	var err error

	if len(opts.Pools) > 0 {
		reports, err = p.EvaluatePools(opts.Pools)
	} else {
		reports, err = p.Evaluate()
	}
	if err != nil {
		p.Errorf("evaluation failed: %v", err)
		return zpooliostat.SeverityUnknown.ExitStatus()
	}

	if err := printReports(reports, opts.Format); err != nil {
		p.Errorf("%v", err)
		return zpooliostat.SeverityUnknown.ExitStatus()
	}

	return zpooliostat.WorstSeverity(reports).ExitStatus()
}

func runDiscover(p *zpooliostat.Plugin, opts *cli.Option) int {
	pools, err := p.Discover()
	if err != nil {
		p.Errorf("discovery failed: %v", err)
		return zpooliostat.SeverityUnknown.ExitStatus()
	}

	if opts.Format == "json" {
		if pools == nil {
			pools = []string{}
		}
		bs, err := json.MarshalIndent(pools, "", " ")
		if err != nil {
			p.Errorf("encode pool names: %v", err)
			return zpooliostat.SeverityUnknown.ExitStatus()
		}
		fmt.Println(string(bs))
		return 0
	}

	for _, name := range pools {
		fmt.Println(name)
	}

	return 0
}

func runWatch(p *zpooliostat.Plugin, configPath string, opts *cli.Option) int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	emit := func(reports []*zpooliostat.Report) {
		if err := printReports(reports, opts.Format); err != nil {
			p.Errorf("%v", err)
		}
	}

	if err := p.Watch(ctx, configPath, emit); err != nil {
		p.Errorf("watch failed: %v", err)
		return zpooliostat.SeverityUnknown.ExitStatus()
	}

	return 0
}

func printReports(reports []*zpooliostat.Report, format string) error {
	if format == "json" {
		bs, err := zpooliostat.RenderJSON(reports)
		if err != nil {
			return fmt.Errorf("encode reports: %v", err)
		}
		fmt.Println(string(bs))
		return nil
	}

	if s := zpooliostat.RenderText(reports); s != "" {
		fmt.Println(s)
	}
	return nil
}
