package protocol

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed steps/*.yaml
var builtinSteps embed.FS

// Validation errors returned by ParseConfig and NewConfig
var (
	ErrNoSteps       = errors.New("configuration has no steps")
	ErrUnknownKind   = errors.New("unknown step kind")
	ErrStepOrder     = errors.New("step ids must be contiguous and start at 1")
	ErrMissingParent = errors.New("parent step does not exist")
	ErrParentOrder   = errors.New("parent step must precede its child")
	ErrParentKind    = errors.New("parent step has the wrong kind")
	ErrDuplicateRole = errors.New("role is used by more than one step")
)

// Config is the read-only template of a capture protocol. Live protocols
// are initialised and reset by copying it.
type Config struct {
	Name  string
	steps []Step
}

// configFile is the native on-disk shape
type configFile struct {
	Name  string     `yaml:"name"`
	Steps []stepFile `yaml:"steps"`
}

type stepFile struct {
	ID     int    `yaml:"id"`
	Kind   string `yaml:"kind"`
	Parent int    `yaml:"parent"`
	Role   string `yaml:"role"`
	Label  string `yaml:"label"`
	Text   string `yaml:"text"`
}

// legacyStep is one value of the id-keyed JSON step map
type legacyStep struct {
	Type       string `yaml:"type"`
	Text       string `yaml:"text"`
	Supp       string `yaml:"supp"`
	ParentNode string `yaml:"parentNode"`
}

// NewConfig validates steps and returns a configuration holding copies of them.
// Captured points on the given steps are discarded.
func NewConfig(name string, steps []Step) (*Config, error) {
	cfg := &Config{Name: name, steps: make([]Step, len(steps))}
	for i, s := range steps {
		cfg.steps[i] = s.withPoints(nil)
	}
	if err := validate(cfg.steps); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Steps returns a copy of the template steps
func (c *Config) Steps() []Step {
	return slices.Clone(c.steps)
}

// Len returns the number of real steps (the idle sentinel is not counted)
func (c *Config) Len() int {
	return len(c.steps)
}

// LoadConfig reads a step configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read step configuration: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid step configuration %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig parses YAML or JSON step configuration. Both the native
// shape (name + steps list) and the id-keyed step map are accepted.
func ParseConfig(data []byte) (*Config, error) {
	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse step configuration: %w", err)
	}
	if len(file.Steps) > 0 {
		return parseNative(file)
	}

	var legacy map[string]legacyStep
	if err := yaml.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("failed to parse step map: %w", err)
	}
	return parseLegacy(legacy)
}

func parseNative(file configFile) (*Config, error) {
	steps := make([]Step, 0, len(file.Steps))
	for _, sf := range file.Steps {
		kind, err := ParseKind(sf.Kind)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", sf.ID, err)
		}
		steps = append(steps, Step{
			ID:     StepID(sf.ID),
			Kind:   kind,
			Parent: StepID(sf.Parent),
			Role:   Role(sf.Role),
			Label:  sf.Label,
			Text:   sf.Text,
		})
	}
	return NewConfig(file.Name, steps)
}

func parseLegacy(legacy map[string]legacyStep) (*Config, error) {
	ids := make([]int, 0, len(legacy))
	byID := make(map[int]legacyStep, len(legacy))
	for key, ls := range legacy {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("step key %q is not a number", key)
		}
		// id 0 is the idle sentinel, typeless entries are display-only
		if id == 0 || ls.Type == "" {
			continue
		}
		ids = append(ids, id)
		byID[id] = ls
	}
	sort.Ints(ids)

	steps := make([]Step, 0, len(ids))
	for _, id := range ids {
		ls := byID[id]
		kind, err := ParseKind(ls.Type)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", id, err)
		}
		var parent int
		if ls.ParentNode != "" {
			parent, err = strconv.Atoi(ls.ParentNode)
			if err != nil {
				return nil, fmt.Errorf("step %d: parent %q is not a number", id, ls.ParentNode)
			}
		}
		steps = append(steps, Step{
			ID:     StepID(id),
			Kind:   kind,
			Parent: StepID(parent),
			Label:  ls.Text,
			Text:   ls.Supp,
		})
	}
	inferHipRoles(steps)
	return NewConfig("", steps)
}

// inferHipRoles assigns the hip measurement roles to a role-less
// line, line, ellipse, ellipse protocol whose ellipses hang off the second line
func inferHipRoles(steps []Step) {
	if len(steps) != 4 {
		return
	}
	kinds := []Kind{KindLine, KindLine, KindEllipse, KindEllipse}
	for i, s := range steps {
		if s.Kind != kinds[i] || s.Role != RoleNone {
			return
		}
	}
	if steps[2].Parent != steps[1].ID || steps[3].Parent != steps[1].ID {
		return
	}
	steps[0].Role = RoleTeardrop
	steps[1].Role = RoleDiameter
	steps[2].Role = RoleCupPerimeter
	steps[3].Role = RoleHeadPerimeter
}

func validate(steps []Step) error {
	if len(steps) == 0 {
		return ErrNoSteps
	}

	roles := make(map[Role]StepID)
	for i, s := range steps {
		if s.ID != StepID(i+1) {
			return fmt.Errorf("step %d at position %d: %w", s.ID, i+1, ErrStepOrder)
		}
		if _, ok := kindNames[s.Kind]; !ok {
			return fmt.Errorf("step %d: %w: %v", s.ID, ErrUnknownKind, s.Kind)
		}
		if err := validateParent(steps, s); err != nil {
			return err
		}
		if s.Role != RoleNone && s.Role != RoleParabolaArm {
			if other, exists := roles[s.Role]; exists {
				return fmt.Errorf("step %d: %w: %q (also step %d)", s.ID, ErrDuplicateRole, s.Role, other)
			}
			roles[s.Role] = s.ID
		}
	}
	return nil
}

func validateParent(steps []Step, s Step) error {
	var want Kind
	switch s.Kind {
	case KindEllipse:
		want = KindLine
	case KindParabolaPoint:
		want = KindPoint
	default:
		if s.HasParent() {
			return fmt.Errorf("step %d: %w: %s steps take no parent", s.ID, ErrParentKind, s.Kind)
		}
		return nil
	}

	if !s.HasParent() || int(s.Parent) > len(steps) || s.Parent < 0 {
		return fmt.Errorf("step %d: %w: %d", s.ID, ErrMissingParent, s.Parent)
	}
	if s.Parent >= s.ID {
		return fmt.Errorf("step %d: %w: %d", s.ID, ErrParentOrder, s.Parent)
	}
	if parent := steps[s.Parent-1]; parent.Kind != want {
		return fmt.Errorf("step %d: %w: expected %s, got %s", s.ID, ErrParentKind, want, parent.Kind)
	}
	return nil
}

// BuiltinNames lists the embedded step configurations
func BuiltinNames() []string {
	return []string{"hip", "parabola"}
}

// BuiltinConfig returns an embedded step configuration by name
func BuiltinConfig(name string) (*Config, error) {
	data, err := builtinSteps.ReadFile("steps/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown built-in protocol %q", name)
	}
	return ParseConfig(data)
}

// Resolve returns the built-in protocol named nameOrPath or, if there is
// none, loads nameOrPath as a step configuration file. An empty name
// selects the default protocol.
func Resolve(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return DefaultConfig(), nil
	}
	if slices.Contains(BuiltinNames(), nameOrPath) {
		return BuiltinConfig(nameOrPath)
	}
	return LoadConfig(nameOrPath)
}

// DefaultConfig returns the hip measurement protocol
func DefaultConfig() *Config {
	return mustBuiltin("hip")
}

// ParabolaConfig returns the vertex-parabola protocol
func ParabolaConfig() *Config {
	return mustBuiltin("parabola")
}

func mustBuiltin(name string) *Config {
	cfg, err := BuiltinConfig(name)
	if err != nil {
		panic(err)
	}
	return cfg
}
