package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{"unrecognized shape", "V001", "Unrecognized virtual node shape", CategoryRender},
		{"host precondition", "V004", "Host tree precondition failed", CategoryHost},
		{"config", "V010", "Invalid configuration", CategoryConfig},
		{"unknown error code", "V999", "Unknown error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	err := New("V021").WithDetail(`component "Card"`)
	if got, want := err.Error(), `V021: Unknown component or action reference: component "Card"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	plain := Newf(CategoryCLI, "file %q not found", "tree.yaml")
	if plain.Error() != `file "tree.yaml" not found` {
		t.Errorf("Error() = %q", plain.Error())
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := New("V030").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if !strings.HasSuffix(err.Error(), "disk full") {
		t.Errorf("Error() = %q, want cause suffix", err.Error())
	}

	outer := fmt.Errorf("saving: %w", err)
	if !stderrors.Is(outer, New("V030")) {
		t.Error("errors.Is should match by code through fmt wrapping")
	}
	if stderrors.Is(outer, New("V031")) {
		t.Error("errors.Is matched a different code")
	}
	if !HasCode(outer, "V030") {
		t.Error("HasCode should find V030")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "V020") != nil {
		t.Error("FromError(nil) should be nil")
	}

	existing := New("V021")
	if FromError(existing, "V020") != existing {
		t.Error("FromError should return an existing *Error unchanged")
	}

	wrapped := FromError(fmt.Errorf("bad yaml"), "V020")
	if wrapped.Code != "V020" || wrapped.Wrapped == nil {
		t.Errorf("FromError = %+v", wrapped)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("V021").
		WithDetail(`component "Card" is not registered`).
		WithSuggestion("Register it")
	out := err.Format()

	for _, want := range []string{"ERROR V021: Unknown component", `component "Card" is not registered`, "Hint: Register it"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("Format() should not contain ANSI codes when colors are disabled")
	}
}

func TestPrint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Print(&buf, fmt.Errorf("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("Print(plain) = %q", buf.String())
	}

	buf.Reset()
	Print(&buf, New("V010").WithDetail("port out of range"))
	if !strings.Contains(buf.String(), "V010") {
		t.Errorf("Print(coded) = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q exceeds width", l)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six" {
		t.Errorf("wrapText lost words: %v", lines)
	}
}

func TestCodesSorted(t *testing.T) {
	codes := Codes()
	for i := 1; i < len(codes); i++ {
		if codes[i-1] > codes[i] {
			t.Fatalf("Codes() not sorted: %v", codes)
		}
	}
	if _, ok := Lookup("V001"); !ok {
		t.Error("Lookup(V001) not found")
	}
}
