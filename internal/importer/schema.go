package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Seed is the top-level structure of a seed file.
type Seed struct {
	Defaults    SeedDefaults       `yaml:"defaults,omitempty" json:"defaults,omitempty"`
	Assets      []AssetImport      `yaml:"assets" json:"assets"`
	Technicians []TechnicianImport `yaml:"technicians" json:"technicians"`
	Plans       []PlanImport       `yaml:"plans" json:"plans"`
}

// SeedDefaults fill fields a record leaves unset. A record value always wins.
type SeedDefaults struct {
	Role                 string `yaml:"role,omitempty" json:"role,omitempty"`
	Status               string `yaml:"status,omitempty" json:"status,omitempty"`
	Automatic            *bool  `yaml:"automatic,omitempty" json:"automatic,omitempty"`
	EstimatedDurationMin *int   `yaml:"estimated_duration_min,omitempty" json:"estimated_duration_min,omitempty"`
}

type AssetImport struct {
	Code     string `yaml:"code" json:"code"`
	Name     string `yaml:"name" json:"name"`
	Location string `yaml:"location,omitempty" json:"location,omitempty"`
}

type TechnicianImport struct {
	Name   string `yaml:"name" json:"name"`
	Email  string `yaml:"email,omitempty" json:"email,omitempty"`
	Role   string `yaml:"role,omitempty" json:"role,omitempty"`
	Active *bool  `yaml:"active,omitempty" json:"active,omitempty"`
}

type PlanImport struct {
	Code                 string           `yaml:"code,omitempty" json:"code,omitempty"`
	Name                 string           `yaml:"name" json:"name"`
	Asset                string           `yaml:"asset,omitempty" json:"asset,omitempty"`
	Status               string           `yaml:"status,omitempty" json:"status,omitempty"`
	Automatic            *bool            `yaml:"automatic,omitempty" json:"automatic,omitempty"`
	Recurrence           RecurrenceImport `yaml:"recurrence" json:"recurrence"`
	NextOccurrence       *string          `yaml:"next_occurrence,omitempty" json:"next_occurrence,omitempty"`
	EstimatedDurationMin *int             `yaml:"estimated_duration_min,omitempty" json:"estimated_duration_min,omitempty"`
	Instructions         string           `yaml:"instructions,omitempty" json:"instructions,omitempty"`
}

// RecurrenceImport mirrors the persisted recurrence columns.
type RecurrenceImport struct {
	Kind           string   `yaml:"kind,omitempty" json:"kind,omitempty"`
	DayOfMonth     *int     `yaml:"day_of_month,omitempty" json:"day_of_month,omitempty"`
	WeekOfMonth    *int     `yaml:"week_of_month,omitempty" json:"week_of_month,omitempty"`
	Weekdays       []string `yaml:"weekdays,omitempty" json:"weekdays,omitempty"`
	Weekday        string   `yaml:"weekday,omitempty" json:"weekday,omitempty"`
	IntervalWeeks  *int     `yaml:"interval_weeks,omitempty" json:"interval_weeks,omitempty"`
	IntervalMonths *int     `yaml:"interval_months,omitempty" json:"interval_months,omitempty"`
	Frequency      string   `yaml:"frequency,omitempty" json:"frequency,omitempty"`
	FrequencyDays  *int     `yaml:"frequency_days,omitempty" json:"frequency_days,omitempty"`
}

// LoadSeed reads a seed file. Files ending in .json are parsed as JSON,
// everything else as YAML.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSeed(data, strings.EqualFold(filepath.Ext(path), ".json"))
}

func ParseSeed(data []byte, isJSON bool) (*Seed, error) {
	var seed Seed
	if isJSON {
		if err := json.Unmarshal(data, &seed); err != nil {
			return nil, fmt.Errorf("parsing seed file: %w", err)
		}
		return &seed, nil
	}
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	return &seed, nil
}
