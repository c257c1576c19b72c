package returns

import (
	"fmt"

	"github.com/retailops/backoffice/internal/domain/shared"
)

// ReturnKind identifies the flavor of a return/exchange transaction.
// The short codes are the ones used on transaction documents.
type ReturnKind string

const (
	// KindFullReturn returns every line of the source order with quantities
	// pinned to the original.
	KindFullReturn ReturnKind = "DVT"
	// KindPartialReturn returns a user-chosen subset of lines and quantities.
	KindPartialReturn ReturnKind = "DVP"
	// KindExchange returns a subset and ships replacement lines out, settling
	// the monetary difference either way.
	KindExchange ReturnKind = "CAM"
)

// IsValid checks if the kind is a known ReturnKind
func (k ReturnKind) IsValid() bool {
	switch k {
	case KindFullReturn, KindPartialReturn, KindExchange:
		return true
	}
	return false
}

// String returns the document code of the kind
func (k ReturnKind) String() string {
	return string(k)
}

// ParseReturnKind converts a document code into a ReturnKind.
// An unknown code is fatal to the workflow.
func ParseReturnKind(code string) (ReturnKind, error) {
	k := ReturnKind(code)
	if !k.IsValid() {
		return "", shared.NewDomainError("UNKNOWN_KIND", fmt.Sprintf("Unknown return kind code: %q", code))
	}
	return k, nil
}

// KindProfile describes the behavioral differences between return kinds
type KindProfile struct {
	Kind ReturnKind
	// ReadOnlySelection is true when all source lines are auto-included and
	// quantities are fixed to the original (full returns only).
	ReadOnlySelection bool
	// HasExchangeLines is true when outgoing replacement lines exist
	// (exchanges only).
	HasExchangeLines bool
	// SourceSelectable is true when the user may choose between orders and
	// prior returns as the source (exchanges only).
	SourceSelectable bool
}

var kindProfiles = map[ReturnKind]KindProfile{
	KindFullReturn: {
		Kind:              KindFullReturn,
		ReadOnlySelection: true,
	},
	KindPartialReturn: {
		Kind: KindPartialReturn,
	},
	KindExchange: {
		Kind:             KindExchange,
		HasExchangeLines: true,
		SourceSelectable: true,
	},
}

// Profile returns the behavior profile for the kind
func (k ReturnKind) Profile() (KindProfile, error) {
	p, ok := kindProfiles[k]
	if !ok {
		return KindProfile{}, shared.NewDomainError("UNKNOWN_KIND", fmt.Sprintf("Unknown return kind code: %q", k))
	}
	return p, nil
}
