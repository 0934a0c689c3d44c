package abi

import (
	"testing"
	"time"

	"github.com/wasmabi/serializer/pkg/abi"
)

func TestFundamentalStripsOneSuffixOnly(t *testing.T) {
	if got := Fundamental(abi.TypeName("uint32[][]")); got != "uint32[]" {
		t.Fatalf("Fundamental(uint32[][]) = %q, want uint32[]", got)
	}
	if got := Fundamental(abi.TypeName("uint32[]")); got != "uint32" {
		t.Fatalf("Fundamental(uint32[]) = %q, want uint32", got)
	}
	if got := Fundamental(abi.TypeName("string?")); got != "string" {
		t.Fatalf("Fundamental(string?) = %q, want string", got)
	}
	if got := Fundamental(abi.TypeName("uint32")); got != "uint32" {
		t.Fatalf("Fundamental(uint32) = %q, want uint32", got)
	}
}

func TestIsArrayIsOptional(t *testing.T) {
	if !IsArray(abi.TypeName("uint32[]")) {
		t.Fatal("expected uint32[] to be an array")
	}
	if IsArray(abi.TypeName("uint32?")) {
		t.Fatal("did not expect uint32? to be an array")
	}
	if !IsOptional(abi.TypeName("uint32?")) {
		t.Fatal("expected uint32? to be optional")
	}
}

func TestRemoveBinExtension(t *testing.T) {
	if got := RemoveBinExtension(abi.TypeName("uint32$")); got != "uint32" {
		t.Fatalf("RemoveBinExtension(uint32$) = %q, want uint32", got)
	}
	if got := RemoveBinExtension(abi.TypeName("uint32")); got != "uint32" {
		t.Fatalf("RemoveBinExtension(uint32) = %q, want uint32", got)
	}
}

func TestResolveFollowsTypedefChain(t *testing.T) {
	doc := &abi.Document{
		Typedefs: []abi.TypeDef{
			{NewName: "u", Type: "uint32"},
			{NewName: "v", Type: "u"},
		},
	}
	if got := Resolve(doc, abi.TypeName("v[]")); got != "v[]" {
		t.Fatalf("Resolve should not follow suffixed names: got %q", got)
	}
	if got := Resolve(doc, abi.TypeName("v")); got != "uint32" {
		t.Fatalf("Resolve(v) = %q, want uint32", got)
	}
}

func TestIsTypeAcceptsBuiltinTypedefAndStruct(t *testing.T) {
	doc := &abi.Document{
		Typedefs: []abi.TypeDef{{NewName: "u", Type: "uint32"}},
		Structs:  []abi.Struct{{Name: "pt", Fields: []abi.Field{{Name: "x", Type: "uint32"}}}},
	}
	reg := NewRegistry()
	ctx := NewContext(time.Second)

	for _, name := range []string{"uint32", "u", "pt", "pt[]", "u?"} {
		ok, err := IsType(doc, reg, ctx, abi.TypeName(name))
		if err != nil {
			t.Fatalf("IsType(%q): %v", name, err)
		}
		if !ok {
			t.Fatalf("IsType(%q) = false, want true", name)
		}
	}
	if ok, _ := IsType(doc, reg, ctx, abi.TypeName("nonexistent")); ok {
		t.Fatal("IsType(nonexistent) = true, want false")
	}
}
