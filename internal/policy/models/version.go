package models

import (
	"fmt"
	"strconv"
	"strings"

	dErrors "esbresolver/pkg/domain-errors"
)

// Version identifies a policy revision.
type Version struct {
	Major int
	Minor int
}

// DefaultVersion applies when a request names no version.
var DefaultVersion = Version{Major: 1, Minor: 0}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// ParseVersion reads "major" or "major.minor". An empty string yields
// DefaultVersion.
func ParseVersion(raw string) (Version, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultVersion, nil
	}

	majorText, minorText, hasMinor := strings.Cut(raw, ".")
	major, err := parseComponent(majorText)
	if err != nil {
		return Version{}, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("invalid policy version %q", raw))
	}
	if !hasMinor {
		return Version{Major: major}, nil
	}
	minor, err := parseComponent(minorText)
	if err != nil {
		return Version{}, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("invalid policy version %q", raw))
	}
	return Version{Major: major, Minor: minor}, nil
}

func parseComponent(s string) (int, error) {
	if s == "" || strings.ContainsAny(s, "+-") {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(s)
}
