package domain

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/tribunal/internal/caserecord"
)

// NameLookup resolves a reference to a display name. A nil result means the
// reference is unknown.
type NameLookup func(ref string) (*string, error)

// PanelNames resolves the selected panel members in order.
func PanelNames(refs []string, lookup NameLookup) ([]string, error) {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		name, err := lookup(ref)
		if err != nil {
			return nil, err
		}
		if name == nil {
			return nil, invariant(CodeUnknownPanelMember, fmt.Sprintf("panel member %q not found", ref))
		}
		names = append(names, *name)
	}
	return names, nil
}

// JoinNames joins names as "A", "A and B" or "A, B and C".
func JoinNames(names []string) string {
	var kept []string
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			kept = append(kept, n)
		}
	}
	switch len(kept) {
	case 0:
		return ""
	case 1:
		return kept[0]
	default:
		return strings.Join(kept[:len(kept)-1], ", ") + " and " + kept[len(kept)-1]
	}
}

// PanelComposition names the presiding judge followed by the panel members.
func PanelComposition(judge string, members []string) string {
	return JoinNames(append([]string{judge}, members...))
}

// PanelExclusionSentence describes how the named members affect the next panel.
// It is empty when nothing is excluded or reserved.
func PanelExclusionSentence(choice caserecord.PanelExclusion, members []string) string {
	names := JoinNames(members)
	if names == "" {
		return ""
	}
	switch choice {
	case caserecord.PanelExcluded:
		return "The next hearing should not be listed before " + names + "."
	case caserecord.PanelReserved:
		return "The next hearing is reserved to " + names + "."
	default:
		return ""
	}
}
