package fairing

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/procfairings/pkg/envelope"
)

// State is the part of a base that persists between sessions. Everything
// else is recomputed from the payload.
type State struct {
	AutoShape bool            `yaml:"auto_shape"`
	Manual    envelope.Manual `yaml:"manual"`
}

// State returns the persisted state of the base.
func (b Base) State() State {
	return State{AutoShape: b.AutoShape, Manual: b.Manual}
}

// Apply restores a persisted state.
func (b *Base) Apply(s State) {
	b.AutoShape = s.AutoShape
	b.Manual = s.Manual
}

// MarshalState encodes s as YAML.
func MarshalState(s State) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshaling fairing state: %w", err)
	}
	return data, nil
}

// UnmarshalState decodes a YAML state. Missing keys keep the defaults of
// DefaultBase.
func UnmarshalState(data []byte) (State, error) {
	s := DefaultBase().State()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("parsing fairing state: %w", err)
	}
	return s, nil
}
