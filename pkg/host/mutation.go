package host

import "fmt"

// MutationOp is the type of a journaled host mutation.
type MutationOp uint8

const (
	MutSetText        MutationOp = 0x01 // Update text content
	MutSetAttr        MutationOp = 0x02 // Set/update attribute
	MutRemoveAttr     MutationOp = 0x03 // Remove attribute
	MutAppendChild    MutationOp = 0x04 // Append node
	MutRemoveChild    MutationOp = 0x05 // Remove node
	MutInsertBefore   MutationOp = 0x06 // Insert node before a sibling
	MutReplaceChild   MutationOp = 0x07 // Replace node entirely
	MutSetProperty    MutationOp = 0x08 // Set native property
	MutCreateElement  MutationOp = 0x10 // Create element
	MutCreateText     MutationOp = 0x11 // Create text leaf
	MutCreateFragment MutationOp = 0x12 // Create fragment
)

// String returns the string representation of the MutationOp.
func (op MutationOp) String() string {
	switch op {
	case MutSetText:
		return "SetText"
	case MutSetAttr:
		return "SetAttr"
	case MutRemoveAttr:
		return "RemoveAttr"
	case MutAppendChild:
		return "AppendChild"
	case MutRemoveChild:
		return "RemoveChild"
	case MutInsertBefore:
		return "InsertBefore"
	case MutReplaceChild:
		return "ReplaceChild"
	case MutSetProperty:
		return "SetProperty"
	case MutCreateElement:
		return "CreateElement"
	case MutCreateText:
		return "CreateText"
	case MutCreateFragment:
		return "CreateFragment"
	default:
		return "Unknown"
	}
}

// MarshalText encodes op by name in JSON mutation streams.
func (op MutationOp) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}

// UnmarshalText decodes an op name written by MarshalText.
func (op *MutationOp) UnmarshalText(text []byte) error {
	for candidate := MutSetText; candidate <= MutCreateFragment; candidate++ {
		if name := candidate.String(); name != "Unknown" && name == string(text) {
			*op = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown mutation op %q", text)
}

// IsCreate reports whether op creates a detached node.
func (op MutationOp) IsCreate() bool {
	return op >= MutCreateElement && op <= MutCreateFragment
}

// Mutation is a single journaled host operation.
type Mutation struct {
	Op     MutationOp `json:"op"`
	Target NodeID     `json:"target"`          // Node being mutated or created
	Child  NodeID     `json:"child,omitempty"` // Appended, removed or inserted child
	Old    NodeID     `json:"old,omitempty"`   // Replaced child, or InsertBefore reference
	Key    string     `json:"key,omitempty"`   // Attribute/property name, or tag
	Value  string     `json:"value,omitempty"` // New value
}

// Journal is implemented by documents that record mutations.
type Journal interface {
	// Mutations returns mutations recorded since the last Drain.
	Mutations() []Mutation
	// Drain returns and clears the recorded mutations.
	Drain() []Mutation
}
