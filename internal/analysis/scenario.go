package analysis

import (
	"fmt"
	"os"

	"github.com/san-kum/bode/internal/poly"
	"github.com/san-kum/bode/internal/response"
	"gopkg.in/yaml.v3"
)

// Scenario is a named set of transfer functions analysed together.
type Scenario struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Systems     []System `yaml:"systems"`
}

// System is one transfer function with coefficients written as text,
// highest power first.
type System struct {
	Name        string          `yaml:"name"`
	Numerator   string          `yaml:"numerator"`
	Denominator string          `yaml:"denominator"`
	Sweep       *response.Sweep `yaml:"sweep,omitempty"`
	Unwrap      bool            `yaml:"unwrap"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if len(s.Systems) == 0 {
		return nil, fmt.Errorf("scenario %q has no systems", s.Name)
	}
	return &s, nil
}

// Requests parses every system. allowZero relaxes the zero denominator
// coefficient rule.
func (s *Scenario) Requests(allowZero bool) ([]Request, error) {
	reqs := make([]Request, 0, len(s.Systems))
	for i, sys := range s.Systems {
		name := sys.Name
		if name == "" {
			name = fmt.Sprintf("system_%d", i+1)
		}

		num, err := poly.ParseCoefficients(sys.Numerator)
		if err != nil {
			return nil, &Error{Name: name, Stage: "numerator", Wrapped: err}
		}
		den, err := poly.ParseDenominator(sys.Denominator, allowZero)
		if err != nil {
			return nil, &Error{Name: name, Stage: "denominator", Wrapped: err}
		}

		req := Request{Name: name, Numerator: num, Denominator: den, Unwrap: sys.Unwrap}
		if sys.Sweep != nil {
			req.Sweep = *sys.Sweep
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}
