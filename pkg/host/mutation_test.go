package host

import (
	"encoding/json"
	"testing"
)

func TestMutationJSON(t *testing.T) {
	in := []Mutation{
		{Op: MutCreateElement, Target: 3, Key: "div"},
		{Op: MutSetText, Target: 4, Value: "hi"},
		{Op: MutAppendChild, Target: 1, Child: 3},
	}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := `[{"op":"CreateElement","target":3,"key":"div"},{"op":"SetText","target":4,"value":"hi"},{"op":"AppendChild","target":1,"child":3}]`
	if string(data) != want {
		t.Errorf("Marshal() = %s\nwant %s", data, want)
	}

	var out []Mutation
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("mutation %d = %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestMutationOpUnknown(t *testing.T) {
	for _, name := range []string{"Unknown", "setText", ""} {
		var op MutationOp
		if err := op.UnmarshalText([]byte(name)); err == nil {
			t.Errorf("UnmarshalText(%q) = %v, want error", name, op)
		}
	}
}

func TestMutationOpIsCreate(t *testing.T) {
	tests := []struct {
		op   MutationOp
		want bool
	}{
		{MutSetText, false},
		{MutReplaceChild, false},
		{MutSetProperty, false},
		{MutCreateElement, true},
		{MutCreateText, true},
		{MutCreateFragment, true},
	}
	for _, tt := range tests {
		if got := tt.op.IsCreate(); got != tt.want {
			t.Errorf("%v.IsCreate() = %v, want %v", tt.op, got, tt.want)
		}
	}
}
