package qualify

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed config/criteria.yaml
var criteriaYAML embed.FS

// Requirement is the tri-state for yes/no criteria.
const (
	Any = "ANY"
	Yes = "YES"
	No  = "NO"
)

// Criteria is the qualification configuration for one run. It is loaded once
// at run start and passed around as an immutable snapshot; nothing re-reads
// configuration mid-run.
type Criteria struct {
	MinDeliveryDays       int      `yaml:"min_delivery_days" json:"min_delivery_days"`
	ISORequired           string   `yaml:"iso_required" json:"iso_required"`
	SamplingRequired      string   `yaml:"sampling_required" json:"sampling_required"`
	InspectionPoint       string   `yaml:"inspection_point" json:"inspection_point"`
	ManufacturerAllowlist []string `yaml:"manufacturer_allowlist" json:"manufacturer_allowlist"`
}

// LoadCriteria reads the criteria file at path, falling back to the embedded
// default when path is empty or missing. Environment variables within the
// YAML (e.g. ${MIN_DELIVERY_DAYS}) are expanded before unmarshalling.
func LoadCriteria(path string) (*Criteria, error) {
	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
	}
	if path == "" || err != nil {
		data, err = criteriaYAML.ReadFile("config/criteria.yaml")
		if err != nil {
			return nil, fmt.Errorf("reading embedded criteria: %w", err)
		}
	}

	expanded := os.ExpandEnv(string(data))

	var criteria Criteria
	if err := yaml.Unmarshal([]byte(expanded), &criteria); err != nil {
		return nil, fmt.Errorf("parsing criteria: %w", err)
	}

	if err := criteria.normalize(); err != nil {
		return nil, err
	}
	return &criteria, nil
}

func (c *Criteria) normalize() error {
	c.ISORequired = normalizeRequirement(c.ISORequired)
	c.SamplingRequired = normalizeRequirement(c.SamplingRequired)
	if strings.TrimSpace(c.InspectionPoint) == "" {
		c.InspectionPoint = Any
	}
	if c.MinDeliveryDays < 0 {
		return fmt.Errorf("min_delivery_days must be non-negative, got %d", c.MinDeliveryDays)
	}
	for _, v := range []string{c.ISORequired, c.SamplingRequired} {
		if v != Any && v != Yes && v != No {
			return fmt.Errorf("requirement must be ANY, YES or NO, got %q", v)
		}
	}
	return nil
}

func normalizeRequirement(v string) string {
	v = strings.ToUpper(strings.TrimSpace(v))
	if v == "" {
		return Any
	}
	return v
}
