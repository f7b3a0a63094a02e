package dsr

import "fmt"

// Kind identifies which data subject right a request exercises.
type Kind int

const (
	KindAccess Kind = iota + 1
	KindErasure
	KindRectification
)

var kindNames = map[Kind]string{
	KindAccess:        "access",
	KindErasure:       "erasure",
	KindRectification: "rectification",
}

func Kinds() []Kind {
	return []Kind{KindAccess, KindErasure, KindRectification}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind maps the wire name of a request kind onto Kind. Names match
// exactly; "ERASURE" and " access" are rejected.
func ParseKind(raw string) (Kind, error) {
	for kind, name := range kindNames {
		if name == raw {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRequestKind, raw)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRequestKind, int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
