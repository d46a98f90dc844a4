package models

import "strings"

// AccessPointUseType selects which binding access point a resolution prefers.
type AccessPointUseType int

const (
	UseTypeUnspecified AccessPointUseType = iota
	UseTypeEndPoint
	UseTypeBindingTemplate
	UseTypeHostingRedirector
	UseTypeWsdlDeployment
)

var useTypeNames = map[AccessPointUseType]string{
	UseTypeUnspecified:       "unspecified",
	UseTypeEndPoint:          "endPoint",
	UseTypeBindingTemplate:   "bindingTemplate",
	UseTypeHostingRedirector: "hostingRedirector",
	UseTypeWsdlDeployment:    "wsdlDeployment",
}

// String returns the spelling directories use on the wire.
func (u AccessPointUseType) String() string {
	if name, ok := useTypeNames[u]; ok {
		return name
	}
	return useTypeNames[UseTypeUnspecified]
}

// Matches compares a directory supplied use type, ignoring case.
func (u AccessPointUseType) Matches(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), u.String())
}

// ParseUseType maps a use type name, ignoring case.
func ParseUseType(v string) (AccessPointUseType, bool) {
	for u, name := range useTypeNames {
		if strings.EqualFold(strings.TrimSpace(v), name) {
			return u, true
		}
	}
	return UseTypeUnspecified, false
}
