package abi

import (
	"strings"

	"github.com/wasmabi/serializer/pkg/abi"
)

// IsArray reports whether t carries the dynamic-array suffix "[]".
func IsArray(t abi.TypeName) bool {
	return strings.HasSuffix(string(t), "[]")
}

// IsOptional reports whether t carries the optional suffix "?".
func IsOptional(t abi.TypeName) bool {
	return strings.HasSuffix(string(t), "?")
}

// Fundamental strips a single trailing "[]" or "?" suffix, if present. It must never
// strip more than one suffix in one call — T[][] fundamental-izes to T[], not T, so a
// nested array's element type still carries one level of array-ness.
func Fundamental(t abi.TypeName) abi.TypeName {
	s := string(t)
	if strings.HasSuffix(s, "[]") {
		return abi.TypeName(s[:len(s)-2])
	}
	if strings.HasSuffix(s, "?") {
		return abi.TypeName(s[:len(s)-1])
	}
	return t
}

// RemoveBinExtension strips a trailing "$" binary-extension marker, if present. The
// serializer treats "$" as cosmetic for type lookup only.
func RemoveBinExtension(t abi.TypeName) abi.TypeName {
	s := string(t)
	if strings.HasSuffix(s, "$") {
		return abi.TypeName(s[:len(s)-1])
	}
	return t
}

// Resolve repeatedly follows typedef substitutions starting from t, bounded by
// len(doc.Typedefs) iterations. Exceeding the bound means a cycle slipped past
// validation; transcoding treats that as unreachable and returns whatever name the
// bound was reached on rather than looping forever.
func Resolve(doc *abi.Document, t abi.TypeName) abi.TypeName {
	limit := len(doc.Typedefs)
	current := t
	for i := 0; i < limit; i++ {
		target, ok := lookupTypedef(doc, current)
		if !ok {
			return current
		}
		current = target
	}
	return current
}

func lookupTypedef(doc *abi.Document, name abi.TypeName) (abi.TypeName, bool) {
	for _, td := range doc.Typedefs {
		if td.NewName == string(name) {
			return td.Type, true
		}
	}
	return "", false
}

// IsType reports whether t names a usable type under the ABI: built into the registry,
// a typedef whose ultimate target is itself a type, or a declared struct. ctx's deadline
// is checked on entry, matching every other validator step.
func IsType(doc *abi.Document, reg *Registry, ctx *Context, t abi.TypeName) (bool, error) {
	if err := ctx.CheckDeadline(); err != nil {
		return false, err
	}
	f := Fundamental(t)
	if reg.IsBuiltin(string(f)) {
		return true, nil
	}
	if target, ok := lookupTypedef(doc, f); ok {
		return IsType(doc, reg, ctx, target)
	}
	if findStruct(doc, f) != nil {
		return true, nil
	}
	return false, nil
}

func findStruct(doc *abi.Document, name abi.TypeName) *abi.Struct {
	for i := range doc.Structs {
		if doc.Structs[i].Name == string(name) {
			return &doc.Structs[i]
		}
	}
	return nil
}

func findTable(doc *abi.Document, name string) *abi.TableDef {
	for i := range doc.Tables {
		if doc.Tables[i].Name == name {
			return &doc.Tables[i]
		}
	}
	return nil
}

func findAction(doc *abi.Document, name string) *abi.ActionDef {
	for i := range doc.Actions {
		if doc.Actions[i].Name == name {
			return &doc.Actions[i]
		}
	}
	return nil
}
