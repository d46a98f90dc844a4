// Package models holds the facts threaded through policy evaluation and the
// request and response shapes of a resolution.
package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	dErrors "esbresolver/pkg/domain-errors"
)

// MessageDirection is the direction of the message being resolved.
type MessageDirection int

const (
	DirectionNotSpecified MessageDirection = iota
	DirectionMsgIn
	DirectionMsgOut
	DirectionBoth
)

var directionNames = []string{"NotSpecified", "MsgIn", "MsgOut", "Both"}

func (d MessageDirection) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return directionNames[0]
	}
	return directionNames[d]
}

// ParseMessageDirection maps a direction name, ignoring case.
func ParseMessageDirection(v string) (MessageDirection, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return DirectionNotSpecified, nil
	}
	for i, name := range directionNames {
		if strings.EqualFold(v, name) {
			return MessageDirection(i), nil
		}
	}
	return DirectionNotSpecified, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown message direction %q", v))
}

func (d MessageDirection) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *MessageDirection) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "message direction must be a string")
	}
	parsed, err := ParseMessageDirection(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Directive is a rule outcome with its validity.
type Directive struct {
	IsValid     bool   `json:"is_valid"`
	ValidErrors string `json:"valid_errors,omitempty"`
}

// InterchangeFact is the name rules use for the interchange.
const InterchangeFact = "Interchange"

// Interchange is the fact mutated by rule evaluation and returned to the
// caller.
type Interchange struct {
	ProviderName       string                `json:"provider_name,omitempty"`
	ServiceName        string                `json:"service_name,omitempty"`
	BindingAccessPoint string                `json:"binding_access_point,omitempty"`
	BindingURLType     string                `json:"binding_url_type,omitempty"`
	MessageType        string                `json:"message_type,omitempty"`
	OperationName      string                `json:"operation_name,omitempty"`
	MessageRole        string                `json:"message_role,omitempty"`
	Parameters         *Parameters           `json:"parameters"`
	MessageDirection   MessageDirection      `json:"message_direction"`
	Directives         map[string]*Directive `json:"directives"`
}

// FactName implements the rule engine fact contract.
func (i *Interchange) FactName() string { return InterchangeFact }

// Directive returns the named directive, creating a valid one if absent.
func (i *Interchange) Directive(name string) *Directive {
	if i.Directives == nil {
		i.Directives = make(map[string]*Directive)
	}
	d, ok := i.Directives[name]
	if !ok {
		d = &Directive{IsValid: true}
		i.Directives[name] = d
	}
	return d
}

// Assign sets the field addressed by path. Paths are field names,
// "Parameters.<key>" or "Directives.<name>.IsValid|ValidErrors".
func (i *Interchange) Assign(path string, value any) error {
	head, rest, _ := strings.Cut(path, ".")
	switch head {
	case "ProviderName":
		return assignString(&i.ProviderName, path, value)
	case "ServiceName":
		return assignString(&i.ServiceName, path, value)
	case "BindingAccessPoint":
		return assignString(&i.BindingAccessPoint, path, value)
	case "BindingURLType":
		return assignString(&i.BindingURLType, path, value)
	case "MessageType":
		return assignString(&i.MessageType, path, value)
	case "OperationName":
		return assignString(&i.OperationName, path, value)
	case "MessageRole":
		return assignString(&i.MessageRole, path, value)
	case "MessageDirection":
		var raw string
		if err := assignString(&raw, path, value); err != nil {
			return err
		}
		d, err := ParseMessageDirection(raw)
		if err != nil {
			return err
		}
		i.MessageDirection = d
		return nil
	case "Parameters":
		if rest == "" {
			return unknownPath(path)
		}
		if i.Parameters == nil {
			i.Parameters = NewParameters()
		}
		i.Parameters.Set(rest, value)
		return nil
	case "Directives":
		name, field, ok := strings.Cut(rest, ".")
		if !ok || name == "" {
			return unknownPath(path)
		}
		d := i.Directive(name)
		switch field {
		case "IsValid":
			b, ok := value.(bool)
			if !ok {
				return typeMismatch(path, "bool", value)
			}
			d.IsValid = b
			return nil
		case "ValidErrors":
			return assignString(&d.ValidErrors, path, value)
		}
	}
	return unknownPath(path)
}

// ValidationErrors returns the trimmed errors of every invalid directive
// in name order, or nil when all are valid.
func (i *Interchange) ValidationErrors() []string {
	names := make([]string, 0, len(i.Directives))
	for name, d := range i.Directives {
		if d != nil && !d.IsValid {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var errs []string
	for _, name := range names {
		msg := strings.TrimSpace(i.Directives[name].ValidErrors)
		if msg == "" {
			msg = fmt.Sprintf("directive %s is invalid", name)
		}
		errs = append(errs, msg)
	}
	return errs
}

// ResolutionRequest asks for an interchange to be evaluated against a policy.
type ResolutionRequest struct {
	PolicyName         string           `json:"policy_name" validate:"required,notblank"`
	Version            string           `json:"version,omitempty" validate:"policyversion"`
	ProviderName       string           `json:"provider_name,omitempty"`
	ServiceName        string           `json:"service_name,omitempty"`
	BindingAccessPoint string           `json:"binding_access_point,omitempty"`
	BindingURLType     string           `json:"binding_url_type,omitempty"`
	MessageType        string           `json:"message_type,omitempty"`
	OperationName      string           `json:"operation_name,omitempty"`
	MessageRole        string           `json:"message_role,omitempty"`
	Parameters         *Parameters      `json:"parameters,omitempty"`
	MessageDirection   MessageDirection `json:"message_direction"`
}

// Interchange builds a fresh fact from the request. Parameters are copied.
func (r ResolutionRequest) Interchange() *Interchange {
	return &Interchange{
		ProviderName:       r.ProviderName,
		ServiceName:        r.ServiceName,
		BindingAccessPoint: r.BindingAccessPoint,
		BindingURLType:     r.BindingURLType,
		MessageType:        r.MessageType,
		OperationName:      r.OperationName,
		MessageRole:        r.MessageRole,
		Parameters:         r.Parameters.Clone(),
		MessageDirection:   r.MessageDirection,
		Directives:         make(map[string]*Directive),
	}
}

// ResolutionResponse carries the evaluated interchange.
type ResolutionResponse struct {
	PolicyName  string       `json:"policy_name"`
	Version     string       `json:"version"`
	Interchange *Interchange `json:"interchange"`
}

func assignString(dst *string, path string, value any) error {
	switch v := value.(type) {
	case string:
		*dst = v
	case fmt.Stringer:
		*dst = v.String()
	case nil:
		*dst = ""
	default:
		return typeMismatch(path, "string", value)
	}
	return nil
}

func unknownPath(path string) error {
	return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown fact path %q", path))
}

func typeMismatch(path, want string, value any) error {
	return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("%s expects a %s, got %T", path, want, value))
}
