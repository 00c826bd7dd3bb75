package models

import (
	"time"
)

// Type is the kind of value a honeytoken imitates.
type Type string

const (
	TypeEmail Type = "email"
	TypePhone Type = "phone"
	TypeName  Type = "name"
	TypeID    Type = "id"
)

// Types lists every supported honeytoken type in a stable order.
var Types = []Type{TypeEmail, TypePhone, TypeName, TypeID}

func (t Type) IsValid() bool {
	switch t {
	case TypeEmail, TypePhone, TypeName, TypeID:
		return true
	}
	return false
}

func (t Type) String() string { return string(t) }

// Honeytoken is a fabricated value planted in shared data. AssignedPartner is
// set once, on the first confirmed use, and never changes afterwards.
type Honeytoken struct {
	ID              string
	Type            Type
	Value           string
	CreatedAt       time.Time
	AssignedPartner string
	AssignedAt      *time.Time
}

// IsAssigned reports whether a partner has been attributed to the token.
func (h *Honeytoken) IsAssigned() bool {
	return h.AssignedPartner != ""
}

// InjectResult is the output of planting a token into a document. TrapValue
// is for administrators only.
type InjectResult struct {
	RedactedDocument string
	TrapValue        string
	Token            *Honeytoken
}

// Usage is the result of resolving a submitted value.
type Usage struct {
	IsKnown bool
	Token   *Honeytoken
}
