package scenario

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/vango-dev/modalhost/internal/errors"
	"gopkg.in/yaml.v3"
)

// Kind names a step.
type Kind string

const (
	KindShow        Kind = "show"
	KindUpdate      Kind = "update"
	KindHide        Kind = "hide"
	KindDestroy     Kind = "destroy"
	KindDestroyRoot Kind = "destroy-root"
	KindClose       Kind = "close"
	KindExit        Kind = "exit"
	KindExpect      Kind = "expect"
)

// Scenario is a parsed scenario file.
type Scenario struct {
	Name string `yaml:"name"`

	// Suspense overrides the provider's suspense setting when set.
	Suspense *bool `yaml:"suspense,omitempty"`

	Steps []Step `yaml:"steps"`

	// File is the path the scenario was loaded from, if any.
	File string `yaml:"-"`
}

// Step is one scenario action.
type Step struct {
	Kind   Kind
	Line   int
	Column int

	// Target is the modal alias for update, hide, destroy, close and exit,
	// and the root id for destroy-root.
	Target string

	Show   ShowStep
	Props  map[string]any
	Expect Expect
}

// ShowStep describes a show step.
type ShowStep struct {
	As             string         `yaml:"as"`
	Component      string         `yaml:"component"`
	Props          map[string]any `yaml:"props"`
	Root           string         `yaml:"root"`
	HideOnClose    *bool          `yaml:"hideOnClose"`
	DestroyOnClose bool           `yaml:"destroyOnClose"`
}

type updateStep struct {
	Target string         `yaml:"target"`
	Props  map[string]any `yaml:"props"`
}

// Expect holds the assertions of an expect step. Unset fields are not
// checked.
type Expect struct {
	Count    *int     `yaml:"count"`
	Open     *int     `yaml:"open"`
	Contains []string `yaml:"contains"`
	Absent   []string `yaml:"absent"`
}

// stepError carries the position of an invalid step out of the decoder.
type stepError struct {
	line, column int
	msg          string
}

func (e *stepError) Error() string {
	return fmt.Sprintf("line %d: %s", e.line, e.msg)
}

// UnmarshalYAML implements yaml.Unmarshaler.
//
// A step is a mapping with exactly one key naming its kind.
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return &stepError{node.Line, node.Column, "a step must be a mapping with exactly one key"}
	}
	key, value := node.Content[0], node.Content[1]

	s.Kind = Kind(key.Value)
	s.Line, s.Column = key.Line, key.Column

	var err error
	switch s.Kind {
	case KindShow:
		err = value.Decode(&s.Show)
		if err == nil && s.Show.Component == "" {
			return &stepError{key.Line, key.Column, "show needs a component"}
		}
	case KindUpdate:
		var u updateStep
		err = value.Decode(&u)
		s.Target, s.Props = u.Target, u.Props
	case KindHide, KindDestroy, KindDestroyRoot, KindClose, KindExit:
		if value.Kind != yaml.ScalarNode {
			return &stepError{value.Line, value.Column, string(s.Kind) + " takes a modal alias"}
		}
		s.Target = value.Value
	case KindExpect:
		err = value.Decode(&s.Expect)
	default:
		return &stepError{key.Line, key.Column, fmt.Sprintf("unknown step %q", key.Value)}
	}
	if err != nil {
		return &stepError{value.Line, value.Column, err.Error()}
	}
	return nil
}

// Parse decodes a scenario. file is used for error locations only.
func Parse(data []byte, file string) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		e := errors.New("M150").WithDetail(err.Error())
		var se *stepError
		if stderrors.As(err, &se) {
			e = e.WithDetail(se.msg)
			if file != "" {
				e = e.WithLocation(file, se.line, se.column)
			}
		}
		return nil, e
	}
	if len(s.Steps) == 0 {
		return nil, errors.New("M150").WithDetail("scenario has no steps")
	}
	s.File = file
	return &s, nil
}

// LoadFile reads and parses a scenario file.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("M150").
			WithDetail("cannot read scenario file").
			Wrap(err)
	}
	return Parse(data, path)
}
