package rfm

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/platform/errors"
	"gopkg.in/yaml.v3"
)

// FallbackSegment labels customers no rule matches. Segmentation never
// fails on an unmatched score.
const FallbackSegment = "Other"

//go:embed rules.yaml
var defaultRulesYAML []byte

// TierRange bounds one RFM dimension in a rule. A zero Min means 1 and a
// zero Max means TierCount, so omitted bounds leave the dimension
// unconstrained.
type TierRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

func (r TierRange) contains(tier int) bool {
	min, max := r.Min, r.Max
	if min == 0 {
		min = 1
	}
	if max == 0 {
		max = TierCount
	}
	return tier >= min && tier <= max
}

func (r TierRange) validate(dimension string) error {
	if r.Min < 0 || r.Min > TierCount || r.Max < 0 || r.Max > TierCount {
		return errors.WithMetadata(errors.CodeSegmentRulesInvalid,
			fmt.Sprintf("%s bounds must be within 1..%d", dimension, TierCount),
			map[string]string{"dimension": dimension})
	}
	if r.Min != 0 && r.Max != 0 && r.Min > r.Max {
		return errors.WithMetadata(errors.CodeSegmentRulesInvalid,
			fmt.Sprintf("%s min exceeds max", dimension),
			map[string]string{"dimension": dimension})
	}
	return nil
}

// Roles a rule can declare. Report insights read these instead of keying
// on segment names, so renamed rule tables keep their narratives.
const (
	RoleRisk   = "risk"   // customers drifting away
	RoleGrowth = "growth" // customers worth nurturing upward
)

// Rule maps a region of tier space to a segment name. Rules are evaluated
// in order; the first match wins.
type Rule struct {
	Name      string    `yaml:"name"`
	Role      string    `yaml:"role"`
	Recency   TierRange `yaml:"recency"`
	Frequency TierRange `yaml:"frequency"`
	Monetary  TierRange `yaml:"monetary"`
}

// RuleTable is an ordered segment rule set with a fallback label.
type RuleTable struct {
	Rules    []Rule `yaml:"segments"`
	Fallback string `yaml:"fallback"`
}

// Segment returns the label for a tier triple: the first matching rule's
// name, or the fallback.
func (t *RuleTable) Segment(recency, frequency, monetary int) string {
	for _, rule := range t.Rules {
		if rule.Recency.contains(recency) &&
			rule.Frequency.contains(frequency) &&
			rule.Monetary.contains(monetary) {
			return rule.Name
		}
	}
	if t.Fallback != "" {
		return t.Fallback
	}
	return FallbackSegment
}

// SegmentNames returns every label the table can produce, in rule order,
// fallback last.
func (t *RuleTable) SegmentNames() []string {
	names := make([]string, 0, len(t.Rules)+1)
	seen := make(map[string]struct{})
	for _, rule := range t.Rules {
		if _, ok := seen[rule.Name]; ok {
			continue
		}
		seen[rule.Name] = struct{}{}
		names = append(names, rule.Name)
	}
	fallback := t.Fallback
	if fallback == "" {
		fallback = FallbackSegment
	}
	if _, ok := seen[fallback]; !ok {
		names = append(names, fallback)
	}
	return names
}

// SegmentsWithRole returns the distinct segment names whose rules declare
// the given role, in rule order.
func (t *RuleTable) SegmentsWithRole(role string) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, rule := range t.Rules {
		if rule.Role != role {
			continue
		}
		if _, ok := seen[rule.Name]; ok {
			continue
		}
		seen[rule.Name] = struct{}{}
		names = append(names, rule.Name)
	}
	return names
}

func (t *RuleTable) validate() error {
	if len(t.Rules) == 0 {
		return errors.New(errors.CodeSegmentRulesInvalid, "rule table has no segments")
	}
	for i, rule := range t.Rules {
		if rule.Name == "" {
			return errors.WithMetadata(errors.CodeSegmentRulesInvalid,
				"segment rule is missing a name",
				map[string]string{"rule": fmt.Sprintf("%d", i)})
		}
		switch rule.Role {
		case "", RoleRisk, RoleGrowth:
		default:
			return errors.WithMetadata(errors.CodeSegmentRulesInvalid,
				fmt.Sprintf("unknown role %q", rule.Role),
				map[string]string{"rule": rule.Name})
		}
		for _, check := range []struct {
			dimension string
			bounds    TierRange
		}{
			{"recency", rule.Recency},
			{"frequency", rule.Frequency},
			{"monetary", rule.Monetary},
		} {
			if err := check.bounds.validate(check.dimension); err != nil {
				return err
			}
		}
	}
	return nil
}

// ParseRules decodes and validates a YAML rule table.
func ParseRules(data []byte) (*RuleTable, error) {
	var table RuleTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, errors.Wrap(errors.CodeSegmentRulesInvalid, "decode segment rules", err)
	}
	if err := table.validate(); err != nil {
		return nil, err
	}
	return &table, nil
}

// LoadRules reads a rule table from a YAML file.
func LoadRules(path string) (*RuleTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.CodeSegmentRulesUnreadable, "read segment rules", err)
	}
	return ParseRules(data)
}

// DefaultRules returns the built-in rule table. The embedded document is
// validated by tests, so a decode failure here is a build defect.
func DefaultRules() *RuleTable {
	table, err := ParseRules(defaultRulesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded segment rules are invalid: %v", err))
	}
	return table
}
