// Package config provides configuration loading and access for the
// player manager. Configuration is read once at startup; inconsistent
// values (unknown threshold kinds, categories, action names) fail the
// load and are never surfaced at tick time.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sonsonmagro/Sonsons-Player-Manager/state"
	"github.com/sonsonmagro/Sonsons-Player-Manager/systems"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all player manager configuration parameters.
type Config struct {
	Manager    ManagerConfig    `yaml:"manager"`
	Health     ThresholdsConfig `yaml:"health"`
	Prayer     ThresholdsConfig `yaml:"prayer"`
	Categories []CategoryConfig `yaml:"categories"`
	Specials   []SpecialConfig  `yaml:"specials"`
	Buffs      []BuffConfig     `yaml:"buffs"`
	Cooldowns  map[string]int64 `yaml:"cooldowns"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Zones      []ZoneConfig     `yaml:"zones"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ManagerConfig holds tick timing parameters.
type ManagerConfig struct {
	TickMillis int `yaml:"tick_millis"` // host tick length, for duration-to-tick conversion
}

// TierSpec is one threshold tier as written in YAML.
type TierSpec struct {
	Kind  string `yaml:"kind"`  // percent or absolute
	Value int    `yaml:"value"` // triggered when the metric is at or below this
}

// ThresholdsConfig holds the named tiers for one managed metric.
// Absent tiers never trigger.
type ThresholdsConfig struct {
	Normal   *TierSpec `yaml:"normal"`
	Critical *TierSpec `yaml:"critical"`
	Special  *TierSpec `yaml:"special"`
}

// CategoryConfig binds a consumable category to its name patterns.
// Order in the list is priority order: the first matching category
// claims the item.
type CategoryConfig struct {
	Name     string          `yaml:"name"`
	Patterns []PatternConfig `yaml:"patterns"`
}

// PatternConfig is one item-name pattern: substring match by default,
// whole-name when exact is set.
type PatternConfig struct {
	Match string `yaml:"match"`
	Exact bool   `yaml:"exact"`
}

// SpecialConfig describes a limited-use special item. EquipSlot uses
// the host's slot numbering starting at 1; 0 means there is no worn
// variant. EquipID of 0 means the worn variant shares item_id.
type SpecialConfig struct {
	Name            string `yaml:"name"`
	Action          string `yaml:"action"` // ledger action kind, e.g. use_blade
	ItemID          int    `yaml:"item_id"`
	EquipSlot       int    `yaml:"equip_slot"`
	EquipID         int    `yaml:"equip_id"`
	BlockingEffect  int    `yaml:"blocking_effect"`
	CooldownSeconds int    `yaml:"cooldown_seconds"`
}

// BuffConfig describes one managed buff rule.
type BuffConfig struct {
	Name           string `yaml:"name"`
	AbilityID      int    `yaml:"ability_id"`
	BuffID         int    `yaml:"buff_id"` // observed buff id, 0 = ability_id
	Priority       int    `yaml:"priority"`
	When           string `yaml:"when"` // always, combat or idle
	Toggle         bool   `yaml:"toggle"`
	RefreshSeconds int    `yaml:"refresh_seconds"` // 0 = never refresh
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowTicks int64 `yaml:"window_ticks"`
}

// ZoneConfig is one static radius zone for location classification.
type ZoneConfig struct {
	Name   string `yaml:"name"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Radius int    `yaml:"radius"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TickDuration time.Duration          // Manager.TickMillis as a duration
	HealthSet    systems.ThresholdSet   // named tiers for health
	PrayerSet    systems.ThresholdSet   // named tiers for prayer
	Rules        []systems.CategoryRule // classifier rule table, priority order
	Specials     []systems.SpecialItem  // resolved special items
	BuffRules    []systems.BuffRule     // resolved buff rules
	Windows      map[systems.ActionKind]int64
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded
// defaults if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived resolves the YAML shapes into the typed forms the
// systems package consumes, rejecting inconsistent configuration.
func (c *Config) computeDerived() error {
	if c.Manager.TickMillis <= 0 {
		return fmt.Errorf("manager.tick_millis must be positive, got %d", c.Manager.TickMillis)
	}
	c.Derived.TickDuration = time.Duration(c.Manager.TickMillis) * time.Millisecond

	var err error
	if c.Derived.HealthSet, err = buildThresholdSet(c.Health); err != nil {
		return fmt.Errorf("health thresholds: %w", err)
	}
	if c.Derived.PrayerSet, err = buildThresholdSet(c.Prayer); err != nil {
		return fmt.Errorf("prayer thresholds: %w", err)
	}

	c.Derived.Rules = c.Derived.Rules[:0]
	for _, cc := range c.Categories {
		cat, err := systems.ParseCategory(cc.Name)
		if err != nil {
			return fmt.Errorf("categories: %w", err)
		}
		if len(cc.Patterns) == 0 {
			return fmt.Errorf("category %q has no patterns", cc.Name)
		}
		rule := systems.CategoryRule{Category: cat}
		for _, p := range cc.Patterns {
			if p.Match == "" {
				return fmt.Errorf("category %q has an empty pattern", cc.Name)
			}
			rule.Patterns = append(rule.Patterns, systems.Pattern{Text: p.Match, Exact: p.Exact})
		}
		c.Derived.Rules = append(c.Derived.Rules, rule)
	}

	c.Derived.Windows = make(map[systems.ActionKind]int64)
	for name, ticks := range c.Cooldowns {
		kind, err := parseActionKind(name)
		if err != nil {
			return fmt.Errorf("cooldowns: %w", err)
		}
		if ticks < 0 {
			return fmt.Errorf("cooldowns: %s window must not be negative, got %d", name, ticks)
		}
		c.Derived.Windows[kind] = ticks
	}

	c.Derived.Specials = c.Derived.Specials[:0]
	for _, sc := range c.Specials {
		kind, err := parseActionKind(sc.Action)
		if err != nil {
			return fmt.Errorf("special %q: %w", sc.Name, err)
		}
		if sc.ItemID == 0 {
			return fmt.Errorf("special %q: item_id is required", sc.Name)
		}
		slot := sc.EquipSlot - 1
		if sc.EquipSlot == 0 {
			slot = -1
		}
		c.Derived.Specials = append(c.Derived.Specials, systems.SpecialItem{
			Name:       sc.Name,
			Kind:       kind,
			ItemID:     sc.ItemID,
			EquipSlot:  slot,
			EquipID:    sc.EquipID,
			BlockingID: sc.BlockingEffect,
		})
		if sc.CooldownSeconds > 0 {
			c.Derived.Windows[kind] = c.secondsToTicks(sc.CooldownSeconds)
		}
	}

	c.Derived.BuffRules = c.Derived.BuffRules[:0]
	for _, bc := range c.Buffs {
		cond, err := parseWhen(bc.When)
		if err != nil {
			return fmt.Errorf("buff %q: %w", bc.Name, err)
		}
		if bc.AbilityID == 0 {
			return fmt.Errorf("buff %q: ability_id is required", bc.Name)
		}
		c.Derived.BuffRules = append(c.Derived.BuffRules, systems.BuffRule{
			Name:          bc.Name,
			AbilityID:     bc.AbilityID,
			BuffID:        bc.BuffID,
			Priority:      bc.Priority,
			Condition:     cond,
			Toggle:        bc.Toggle,
			RefreshWindow: time.Duration(bc.RefreshSeconds) * time.Second,
		})
	}

	if c.Telemetry.WindowTicks <= 0 {
		return fmt.Errorf("telemetry.window_ticks must be positive, got %d", c.Telemetry.WindowTicks)
	}
	return nil
}

func buildThresholdSet(tc ThresholdsConfig) (systems.ThresholdSet, error) {
	var set systems.ThresholdSet
	add := func(name string, spec *TierSpec) error {
		if spec == nil {
			return nil
		}
		kind, err := systems.ParseTierKind(spec.Kind)
		if err != nil {
			return fmt.Errorf("%s tier: %w", name, err)
		}
		if spec.Value < 0 {
			return fmt.Errorf("%s tier: value must not be negative, got %d", name, spec.Value)
		}
		set = append(set, systems.NamedTier{Name: name, Tier: systems.Tier{Kind: kind, Value: spec.Value}})
		return nil
	}
	if err := add(systems.TierNormal, tc.Normal); err != nil {
		return nil, err
	}
	if err := add(systems.TierCritical, tc.Critical); err != nil {
		return nil, err
	}
	if err := add(systems.TierSpecial, tc.Special); err != nil {
		return nil, err
	}
	return set, nil
}

func parseActionKind(name string) (systems.ActionKind, error) {
	for k := systems.ActionKind(0); k < systems.ActionKindCount; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown action kind %q", name)
}

func parseWhen(when string) (state.Override, error) {
	switch when {
	case "", "always":
		return state.Static(true), nil
	case "combat":
		return state.Dynamic(func(s *state.Snapshot) bool { return s.InCombat }), nil
	case "idle":
		return state.Dynamic(func(s *state.Snapshot) bool { return !s.InCombat && !s.Moving }), nil
	default:
		return state.Override{}, fmt.Errorf("unknown condition %q", when)
	}
}

// secondsToTicks converts a duration in seconds to host ticks,
// rounding up so a cooldown never ends early.
func (c *Config) secondsToTicks(seconds int) int64 {
	ms := int64(seconds) * 1000
	tick := int64(c.Manager.TickMillis)
	return (ms + tick - 1) / tick
}

// Locator builds a static-radius location classifier from the
// configured zones. Zones are checked in order; the first zone whose
// radius contains the position names the location.
func (c *Config) Locator() state.Locator {
	zones := c.Zones
	return func(s *state.Snapshot) string {
		for _, z := range zones {
			dx := s.X - z.X
			dy := s.Y - z.Y
			if dx*dx+dy*dy <= z.Radius*z.Radius {
				return z.Name
			}
		}
		return "unknown"
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
