package session

import (
	"encoding/json"
	"fmt"
)

// State is a step of the screening flow.
type State int

const (
	Idle State = iota
	CVLoaded
	Matching
	Rejected
	Quizzing
	Scored
)

var stateNames = map[State]string{
	Idle:     "idle",
	CVLoaded: "cv_loaded",
	Matching: "matching",
	Rejected: "rejected",
	Quizzing: "quizzing",
	Scored:   "scored",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *State) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	for state, n := range stateNames {
		if n == name {
			*s = state
			return nil
		}
	}

	return fmt.Errorf("unknown session state %q", name)
}
