package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/canaleta14-ai/gmao/internal/domain"
	"github.com/spf13/pflag"
)

// runModeValue is a pflag.Value that only accepts automatic or manual.
type runModeValue domain.RunMode

var _ pflag.Value = (*runModeValue)(nil)

func newRunModeValue(def domain.RunMode, p *domain.RunMode) *runModeValue {
	*p = def
	return (*runModeValue)(p)
}

func (m *runModeValue) String() string { return string(*m) }

func (m *runModeValue) Set(s string) error {
	mode, err := domain.ParseRunMode(s)
	if err != nil {
		return err
	}
	*m = runModeValue(mode)
	return nil
}

func (m *runModeValue) Type() string { return "mode" }

// orderStatusValue parses the loose spellings ParseOrderStatus accepts.
type orderStatusValue domain.OrderStatus

var _ pflag.Value = (*orderStatusValue)(nil)

func (s *orderStatusValue) String() string { return string(*s) }

func (s *orderStatusValue) Set(v string) error {
	status, err := domain.ParseOrderStatus(v)
	if err != nil {
		return err
	}
	*s = orderStatusValue(status)
	return nil
}

func (s *orderStatusValue) Type() string { return "status" }

// parseInstant accepts RFC3339 or a bare YYYY-MM-DD date (UTC midnight).
func parseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q (use YYYY-MM-DD or RFC3339)", s)
}

func optionalInstant(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseInstant(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
