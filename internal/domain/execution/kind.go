// internal/domain/execution/kind.go
package execution

import (
	"fmt"
	"strings"
)

// Kind identifies which notification a run sends. It selects the time window,
// the ledger slot and the default message.
type Kind string

const (
	KindStart Kind = "start"
	KindEnd   Kind = "end"
)

// Kinds lists every known kind in display order.
var Kinds = []Kind{KindStart, KindEnd}

// ParseKind accepts "start" or "end" in any case.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindStart:
		return KindStart, nil
	case KindEnd:
		return KindEnd, nil
	}
	return "", fmt.Errorf("unknown command kind %q", s)
}

func (k Kind) String() string { return string(k) }

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindStart || k == KindEnd
}
