// SPDX-License-Identifier: GPL-3.0-or-later

package zpooliostat

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/oposs/zpool-iostat-check/logger"
	"github.com/oposs/zpool-iostat-check/pkg/confopt"
)

//go:embed "config_schema.json"
var configSchema string

// ConfigSchema returns the JSON schema describing the plugin configuration.
func ConfigSchema() string { return configSchema }

func New() *Plugin {
	return &Plugin{
		Config: defaultConfig(),
		Logger: logger.New().With(slog.String("component", "zpooliostat")),
	}
}

func defaultConfig() Config {
	return Config{
		UpdateEvery: 60,
		Timeout:     confopt.Duration(time.Second * 30),
		SectionPath: "-",
		Levels: map[string]*Levels{
			storageDef.levelsKey: {Warning: 80, Critical: 90},
		},
	}
}

type Config struct {
	UpdateEvery int                `yaml:"update_every,omitempty" json:"update_every"`
	Timeout     confopt.Duration   `yaml:"timeout,omitempty" json:"timeout"`
	SectionPath string             `yaml:"section_path,omitempty" json:"section_path"`
	Levels      map[string]*Levels `yaml:"levels,omitempty" json:"levels"`
}

type Plugin struct {
	*logger.Logger
	Config `yaml:",inline" json:""`

	source sectionSource
}

func (p *Plugin) Configuration() any {
	return p.Config
}

// LoadConfig merges the configuration file at path over the defaults.
// YAML and JSON files are both accepted.
func (p *Plugin) LoadConfig(path string) error {
	bs, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := unmarshalConfig(&p.Config, path, bs); err != nil {
		return fmt.Errorf("parse config '%s': %v", path, err)
	}
	return nil
}

func unmarshalConfig(cfg *Config, path string, bs []byte) error {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return json.Unmarshal(bs, cfg)
	}
	return yaml.Unmarshal(bs, cfg)
}

func (p *Plugin) Init() error {
	if err := p.validateConfig(); err != nil {
		return fmt.Errorf("config validation: %s", err)
	}

	p.source = newSectionSource(p.SectionPath, p.Timeout.Duration())

	return nil
}

func (p *Plugin) validateConfig() error {
	if p.UpdateEvery <= 0 {
		return fmt.Errorf("update_every must be positive, got %d", p.UpdateEvery)
	}
	if p.SectionPath == "" {
		return errors.New("no section path specified")
	}

	known := knownLevelsKeys()
	for key := range p.Levels {
		if !known[key] {
			return fmt.Errorf("unknown levels key '%s'", key)
		}
	}

	return nil
}

// Check verifies that the configured source yields a section with pool data.
func (p *Plugin) Check() error {
	section, err := p.loadSection()
	if err != nil {
		return err
	}
	if len(section.Pools) == 0 && section.Err == nil {
		return errors.New("no pools found in section")
	}
	return nil
}

// Evaluate runs one full cycle: read the section, parse it and build one
// report per pool. A section that carries only a collection error still
// yields a single report so the failure reaches the monitoring side.
func (p *Plugin) Evaluate() ([]*Report, error) {
	section, err := p.loadSection()
	if err != nil {
		return nil, err
	}
	return p.reportSection(section), nil
}

// EvaluatePools builds reports for the named pools only. Names missing from
// the section produce unknown reports rather than being dropped.
func (p *Plugin) EvaluatePools(names []string) ([]*Report, error) {
	section, err := p.loadSection()
	if err != nil {
		return nil, err
	}

	reports := make([]*Report, 0, len(names))
	for _, name := range names {
		reports = append(reports, buildReport(name, section, p.Levels))
	}

	return reports, nil
}

// Discover lists the pools the current section carries clean payloads for.
func (p *Plugin) Discover() ([]string, error) {
	section, err := p.loadSection()
	if err != nil {
		return nil, err
	}
	return discoverPools(section), nil
}

func (p *Plugin) loadSection() (*Section, error) {
	raw, err := p.source.read()
	if err != nil {
		return nil, err
	}

	section := parseSection(raw)

	if section.Skipped > 0 {
		p.Warningf("skipped %d section lines with missing payload", section.Skipped)
	}
	if section.Err != nil {
		p.Debugf("section carries a collection error: %s", section.Err.Message)
	}
	p.Debugf("parsed section: %d pools", len(section.Pools))

	return section, nil
}

func (p *Plugin) reportSection(section *Section) []*Report {
	if section.Err != nil && len(section.Pools) == 0 {
		return []*Report{unknownReport("", fmt.Sprintf("Parse error: %s", section.Err.Message))}
	}
	return evaluateAll(section, p.Levels)
}
