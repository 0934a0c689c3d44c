package abi

import (
	"testing"
	"time"

	"github.com/wasmabi/serializer/pkg/abi"
)

func validDoc() *abi.Document {
	return &abi.Document{
		Version: "wasm::abi/1.1",
		Structs: []abi.Struct{
			{Name: "pt", Fields: []abi.Field{{Name: "x", Type: "uint32"}, {Name: "y", Type: "uint32"}}},
		},
	}
}

func TestValidateDocumentAcceptsValidDoc(t *testing.T) {
	reg := NewRegistry()
	if err := ValidateDocument(validDoc(), reg, NewContext(time.Second)); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateDocumentRejectsBadVersion(t *testing.T) {
	doc := validDoc()
	doc.Version = "not-an-abi-version"
	err := ValidateDocument(doc, NewRegistry(), NewContext(time.Second))
	if kind, ok := abi.KindOf(err); !ok || kind != abi.KindUnsupportedVersion {
		t.Fatalf("expected KindUnsupportedVersion, got %v", err)
	}
}

func TestValidateDocumentRejectsDuplicateStructs(t *testing.T) {
	doc := validDoc()
	doc.Structs = append(doc.Structs, abi.Struct{Name: "pt", Fields: []abi.Field{{Name: "z", Type: "uint32"}}})
	err := ValidateDocument(doc, NewRegistry(), NewContext(time.Second))
	if kind, ok := abi.KindOf(err); !ok || kind != abi.KindDuplicateDef {
		t.Fatalf("expected KindDuplicateDef, got %v", err)
	}
}

func TestValidateDocumentRejectsTypedefCycle(t *testing.T) {
	doc := validDoc()
	doc.Typedefs = []abi.TypeDef{
		{NewName: "a", Type: "b"},
		{NewName: "b", Type: "a"},
	}
	err := ValidateDocument(doc, NewRegistry(), NewContext(time.Second))
	if kind, ok := abi.KindOf(err); !ok || kind != abi.KindCircularDef {
		t.Fatalf("expected KindCircularDef, got %v", err)
	}
}

func TestValidateDocumentRejectsInheritanceCycle(t *testing.T) {
	doc := validDoc()
	doc.Structs = []abi.Struct{
		{Name: "a", Base: "b", Fields: nil},
		{Name: "b", Base: "a", Fields: nil},
	}
	err := ValidateDocument(doc, NewRegistry(), NewContext(time.Second))
	if kind, ok := abi.KindOf(err); !ok || kind != abi.KindCircularDef {
		t.Fatalf("expected KindCircularDef, got %v", err)
	}
}

// TestValidateDocumentRejectsSelfNestingStruct is seed scenario E6: s{f:s}.
func TestValidateDocumentRejectsSelfNestingStruct(t *testing.T) {
	doc := validDoc()
	doc.Structs = []abi.Struct{
		{Name: "s", Fields: []abi.Field{{Name: "f", Type: "s"}}},
	}
	err := ValidateDocument(doc, NewRegistry(), NewContext(time.Second))
	if kind, ok := abi.KindOf(err); !ok || kind != abi.KindCircularStruct {
		t.Fatalf("expected KindCircularStruct, got %v", err)
	}
}

// TestValidateDocumentRejectsSelfNestingStructThroughTypedef covers a typedef aliasing a
// struct type: typedef sAlias=s; struct s{f:sAlias} must be caught the same way s{f:s} is.
func TestValidateDocumentRejectsSelfNestingStructThroughTypedef(t *testing.T) {
	doc := validDoc()
	doc.Typedefs = []abi.TypeDef{{NewName: "sAlias", Type: "s"}}
	doc.Structs = []abi.Struct{
		{Name: "s", Fields: []abi.Field{{Name: "f", Type: "sAlias"}}},
	}
	err := ValidateDocument(doc, NewRegistry(), NewContext(time.Second))
	if kind, ok := abi.KindOf(err); !ok || kind != abi.KindCircularStruct {
		t.Fatalf("expected KindCircularStruct through a typedef alias, got %v", err)
	}
}

func TestValidateDocumentAcceptsStructSharedAcrossParents(t *testing.T) {
	doc := validDoc()
	doc.Structs = []abi.Struct{
		{Name: "leaf", Fields: []abi.Field{{Name: "v", Type: "uint32"}}},
		{Name: "a", Fields: []abi.Field{{Name: "l", Type: "leaf"}}},
		{Name: "b", Fields: []abi.Field{{Name: "l", Type: "leaf"}}},
	}
	if err := ValidateDocument(doc, NewRegistry(), NewContext(time.Second)); err != nil {
		t.Fatalf("a struct reachable from two parents must not be rejected as circular: %v", err)
	}
}

func TestValidateDocumentRejectsUnknownFieldType(t *testing.T) {
	doc := validDoc()
	doc.Structs = []abi.Struct{
		{Name: "s", Fields: []abi.Field{{Name: "f", Type: "nosuchtype"}}},
	}
	err := ValidateDocument(doc, NewRegistry(), NewContext(time.Second))
	if kind, ok := abi.KindOf(err); !ok || kind != abi.KindInvalidType {
		t.Fatalf("expected KindInvalidType, got %v", err)
	}
}

func TestValidateDocumentEnforcesDeadline(t *testing.T) {
	doc := validDoc()
	// The document itself is valid; an already-expired deadline must still fail
	// validation on whichever check runs next, never run unbounded.
	ctx := NewContext(-time.Second)
	err := ValidateDocument(doc, NewRegistry(), ctx)
	if kind, ok := abi.KindOf(err); !ok || kind != abi.KindDeadlineExceeded {
		t.Fatalf("expected KindDeadlineExceeded, got %v", err)
	}
}
