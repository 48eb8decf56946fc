package gen

import (
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// OperationKind is the closed set of operation kinds. Every dispatch on a
// kind switches over all five values and fails on anything else.
type OperationKind uint8

// Operation kinds.
const (
	_ OperationKind = iota
	Show
	List
	Create
	Update
	Remove
)

// kindNames holds the model-file spelling of each kind.
var kindNames = [...]string{
	Show:   "show",
	List:   "list",
	Create: "create",
	Update: "update",
	Remove: "remove",
}

// kindLabels holds the canonical label of each kind, derived once since a
// cases.Caser must not be shared between goroutines.
var kindLabels = func() [len(kindNames)]string {
	var (
		labels [len(kindNames)]string
		title  = cases.Title(language.English)
	)
	for k, name := range kindNames {
		labels[k] = title.String(name)
	}
	return labels
}()

// ParseOperationKind parses an operation kind. Both "show" and "Show" are
// accepted; other spellings yield an UnsupportedOperationError.
func ParseOperationKind(s string) (OperationKind, error) {
	for k, name := range kindNames {
		if name != "" && (s == name || s == kindLabels[k]) {
			return OperationKind(k), nil
		}
	}
	return 0, NewUnsupportedOperationError(s)
}

// Valid reports whether k is one of the five kinds.
func (k OperationKind) Valid() bool {
	return k >= Show && k <= Remove
}

// Label returns the canonical label used in type names, e.g. "Show".
func (k OperationKind) Label() string {
	if !k.Valid() {
		return ""
	}
	return kindLabels[k]
}

// String implements fmt.Stringer.
func (k OperationKind) String() string {
	if !k.Valid() {
		return "OperationKind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindLabels[k]
}

// IsQuery reports whether operations of this kind belong to the query root.
func (k OperationKind) IsQuery() bool {
	return k == Show || k == List
}

// IsMutation reports whether operations of this kind belong to the mutation root.
func (k OperationKind) IsMutation() bool {
	return k == Create || k == Update || k == Remove
}

// QueryKinds and MutationKinds are the kind sets the root types are built from.
var (
	QueryKinds    = []OperationKind{Show, List}
	MutationKinds = []OperationKind{Create, Update, Remove}
)
