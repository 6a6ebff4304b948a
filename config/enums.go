package config

import (
	"errors"
	"fmt"
)

// HostKind selects where article images are published.
type HostKind int

const (
	// HostKindLocal writes images next to the produced article.
	HostKindLocal HostKind = iota
	// HostKindSmms uploads images to sm.ms compatible service.
	HostKindSmms
)

var ErrInvalidHostKind = errors.New("not a valid HostKind")

var hostKindNames = []string{"local", "smms"}

// HostKindNames returns a list of possible string values of HostKind.
func HostKindNames() []string {
	return append([]string(nil), hostKindNames...)
}

func (x HostKind) String() string {
	if x.IsValid() {
		return hostKindNames[x]
	}
	return fmt.Sprintf("HostKind(%d)", x)
}

// IsValid reports whether value is one of enumerated ones.
func (x HostKind) IsValid() bool {
	return x >= 0 && int(x) < len(hostKindNames)
}

// ParseHostKind attempts to convert a string to a HostKind.
func ParseHostKind(name string) (HostKind, error) {
	for i, n := range hostKindNames {
		if n == name {
			return HostKind(i), nil
		}
	}
	return HostKind(0), fmt.Errorf("%s is %w", name, ErrInvalidHostKind)
}

// MarshalText implements the text marshaller method.
func (x HostKind) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements the text unmarshaller method.
func (x *HostKind) UnmarshalText(text []byte) error {
	tmp, err := ParseHostKind(string(text))
	if err != nil {
		return err
	}
	*x = tmp
	return nil
}
