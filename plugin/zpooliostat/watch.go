// SPDX-License-Identifier: GPL-3.0-or-later

package zpooliostat

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gohugoio/hashstructure"
)

// Watch re-evaluates the section whenever its file changes and on a fixed
// interval, emitting a fresh report set only when the outcome differs from
// the previously emitted one. Changes to the configuration file at
// configPath (optional) are picked up without a restart.
func (p *Plugin) Watch(ctx context.Context, configPath string, emit func([]*Report)) error {
	if p.SectionPath == "-" {
		return errors.New("watch mode cannot follow stdin, set section_path to a file")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher initialization: %v", err)
	}
	defer func() { _ = watcher.Close() }()

	// watch directories, not files: editors and agents replace files on write
	if err := watcher.Add(filepath.Dir(p.SectionPath)); err != nil {
		return fmt.Errorf("watch '%s': %v", filepath.Dir(p.SectionPath), err)
	}
	if configPath != "" {
		if err := watcher.Add(filepath.Dir(configPath)); err != nil {
			return fmt.Errorf("watch '%s': %v", filepath.Dir(configPath), err)
		}
	}

	tk := time.NewTicker(time.Duration(p.UpdateEvery) * time.Second)
	defer tk.Stop()

	var lastHash uint64

	cycle := func() {
		reports, err := p.Evaluate()
		if err != nil {
			p.Errorf("evaluation cycle failed: %v", err)
			return
		}

		hash, err := hashstructure.Hash(reports, nil)
		if err == nil && hash == lastHash {
			p.Debugf("reports unchanged, suppressing output")
			return
		}
		lastHash = hash

		emit(reports)
	}

	p.Infof("watching '%s', re-evaluating every %ds", p.SectionPath, p.UpdateEvery)
	cycle()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tk.C:
			cycle()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			switch {
			case samePath(event.Name, p.SectionPath):
				// settle time, section writers rarely land their output atomically
				time.Sleep(100 * time.Millisecond)
				cycle()
			case configPath != "" && samePath(event.Name, configPath):
				time.Sleep(100 * time.Millisecond)
				if p.reloadConfig(configPath, watcher) {
					tk.Reset(time.Duration(p.UpdateEvery) * time.Second)
					cycle()
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			p.Warningf("watcher error: %v", err)
		}
	}
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

// reloadConfig swaps in the configuration file content if it parses,
// validates and actually differs from the running configuration.
func (p *Plugin) reloadConfig(path string, watcher *fsnotify.Watcher) bool {
	cfg := defaultConfig()

	bs, err := os.ReadFile(path)
	if err != nil {
		p.Warningf("config reload: %v (keeping current configuration)", err)
		return false
	}
	if err := unmarshalConfig(&cfg, path, bs); err != nil {
		p.Warningf("config reload: parse '%s': %v (keeping current configuration)", path, err)
		return false
	}

	prev, _ := hashstructure.Hash(p.Config, nil)
	next, _ := hashstructure.Hash(cfg, nil)
	if prev == next {
		p.Debugf("configuration unchanged")
		return false
	}

	probe := Plugin{Config: cfg}
	if err := probe.validateConfig(); err != nil {
		p.Warningf("config reload: validation: %s (keeping current configuration)", err)
		return false
	}
	if cfg.SectionPath == "-" {
		p.Warningf("config reload: watch mode cannot follow stdin (keeping current configuration)")
		return false
	}

	// stale directory watches stay in place, their events no longer match
	if filepath.Dir(cfg.SectionPath) != filepath.Dir(p.SectionPath) {
		if err := watcher.Add(filepath.Dir(cfg.SectionPath)); err != nil {
			p.Warningf("config reload: watch '%s': %v (keeping current configuration)", filepath.Dir(cfg.SectionPath), err)
			return false
		}
	}

	p.Config = cfg
	p.source = newSectionSource(cfg.SectionPath, cfg.Timeout.Duration())
	p.Infof("configuration reloaded from '%s'", path)

	return true
}
