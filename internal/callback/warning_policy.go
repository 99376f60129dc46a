package callback

import "fmt"

// WarningPolicy decides whether warnings block submission.
type WarningPolicy string

const (
	// WarningsManual blocks manual flows until the operator acknowledges the
	// warnings. Automated flows are never blocked.
	WarningsManual WarningPolicy = "manual"
	// WarningsAlways blocks every unacknowledged flow.
	WarningsAlways WarningPolicy = "always"
	// WarningsNever reports warnings without blocking.
	WarningsNever WarningPolicy = "never"
)

// ParseWarningPolicy validates a configured policy. Empty means manual.
func ParseWarningPolicy(s string) (WarningPolicy, error) {
	switch p := WarningPolicy(s); p {
	case "":
		return WarningsManual, nil
	case WarningsManual, WarningsAlways, WarningsNever:
		return p, nil
	default:
		return "", fmt.Errorf("unknown warning policy %q", s)
	}
}

// Blocks reports whether warnings on cb block submission.
func (p WarningPolicy) Blocks(cb Callback) bool {
	if cb.IgnoreWarnings {
		return false
	}
	switch p {
	case WarningsAlways:
		return true
	case WarningsNever:
		return false
	default:
		return !cb.Automated
	}
}
