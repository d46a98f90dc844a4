package models

import (
	"strings"
)

// ActivityStepFact is the name rules use for the activity step.
const ActivityStepFact = "Step"

// ActivityStepConfig is the interception policy of one activity step. The
// activity and step names are inputs; rules set the remaining fields.
type ActivityStepConfig struct {
	ActivityName string      `json:"activity_name"`
	StepName     string      `json:"step_name"`
	Intercept    bool        `json:"intercept"`
	TrackingMode string      `json:"tracking_mode,omitempty"`
	Properties   *Parameters `json:"properties"`
}

// NewActivityStepConfig returns the fact for one step.
func NewActivityStepConfig(activityName, stepName string) *ActivityStepConfig {
	return &ActivityStepConfig{
		ActivityName: activityName,
		StepName:     stepName,
		Properties:   NewParameters(),
	}
}

// FactName implements the rule engine fact contract.
func (c *ActivityStepConfig) FactName() string { return ActivityStepFact }

// Assign sets "Intercept", "TrackingMode" or "Properties.<key>". The input
// names are read-only.
func (c *ActivityStepConfig) Assign(path string, value any) error {
	head, rest, _ := strings.Cut(path, ".")
	switch head {
	case "Intercept":
		b, ok := value.(bool)
		if !ok {
			return typeMismatch(path, "bool", value)
		}
		c.Intercept = b
		return nil
	case "TrackingMode":
		return assignString(&c.TrackingMode, path, value)
	case "Properties":
		if rest == "" {
			break
		}
		if c.Properties == nil {
			c.Properties = NewParameters()
		}
		c.Properties.Set(rest, value)
		return nil
	}
	return unknownPath(path)
}
