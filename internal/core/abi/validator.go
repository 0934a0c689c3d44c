package abi

import (
	"github.com/wasmabi/serializer/pkg/abi"
)

// ValidateDocument runs every static check below, once, at construction time. reg
// supplies the built-in names _is_type consults; ctx's deadline is checked at the start
// of every loop below.
func ValidateDocument(doc *abi.Document, reg *Registry, ctx *Context) error {
	if err := checkVersion(doc); err != nil {
		return err
	}
	if err := checkDuplicates(doc, ctx); err != nil {
		return err
	}
	if err := checkTypedefsSound(doc, ctx); err != nil {
		return err
	}
	if err := checkTypedefTargetsExist(doc, reg, ctx); err != nil {
		return err
	}
	if err := checkInheritanceAcyclic(doc, ctx); err != nil {
		return err
	}
	if err := checkStructFieldsTyped(doc, reg, ctx); err != nil {
		return err
	}
	if err := checkFieldGraphAcyclic(doc, ctx); err != nil {
		return err
	}
	if err := checkActionsAndTablesTyped(doc, reg, ctx); err != nil {
		return err
	}
	return nil
}

func checkVersion(doc *abi.Document) error {
	if len(doc.Version) < len(abi.VersionPrefix) || doc.Version[:len(abi.VersionPrefix)] != abi.VersionPrefix {
		return abi.NewError(abi.KindUnsupportedVersion, "", "version %q does not begin with %q", doc.Version, abi.VersionPrefix)
	}
	return nil
}

// checkDuplicates compares each mapping's source-sequence length to the size of the set
// of names it contains.
func checkDuplicates(doc *abi.Document, ctx *Context) error {
	seen := make(map[string]bool, len(doc.Typedefs))
	for _, td := range doc.Typedefs {
		if err := ctx.CheckDeadline(); err != nil {
			return err
		}
		if seen[td.NewName] {
			return abi.NewError(abi.KindDuplicateDef, td.NewName, "duplicate typedef")
		}
		seen[td.NewName] = true
	}
	seen = make(map[string]bool, len(doc.Structs))
	for _, s := range doc.Structs {
		if err := ctx.CheckDeadline(); err != nil {
			return err
		}
		if seen[s.Name] {
			return abi.NewError(abi.KindDuplicateDef, s.Name, "duplicate struct")
		}
		seen[s.Name] = true
	}
	seen = make(map[string]bool, len(doc.Actions))
	for _, a := range doc.Actions {
		if err := ctx.CheckDeadline(); err != nil {
			return err
		}
		if seen[a.Name] {
			return abi.NewError(abi.KindDuplicateDef, a.Name, "duplicate action")
		}
		seen[a.Name] = true
	}
	seen = make(map[string]bool, len(doc.Tables))
	for _, t := range doc.Tables {
		if err := ctx.CheckDeadline(); err != nil {
			return err
		}
		if seen[t.Name] {
			return abi.NewError(abi.KindDuplicateDef, t.Name, "duplicate table")
		}
		seen[t.Name] = true
	}
	return nil
}

// checkTypedefsSound follows each typedef's alias chain with a visited set, failing
// KindCircularDef on a revisit.
func checkTypedefsSound(doc *abi.Document, ctx *Context) error {
	for _, td := range doc.Typedefs {
		if err := ctx.CheckDeadline(); err != nil {
			return err
		}
		visited := map[string]bool{td.NewName: true}
		current := td.Type
		for {
			target, ok := lookupTypedef(doc, current)
			if !ok {
				break
			}
			if visited[string(current)] {
				return abi.NewError(abi.KindCircularDef, td.NewName, "circular typedef chain")
			}
			visited[string(current)] = true
			current = target
		}
	}
	return nil
}

// checkTypedefTargetsExist resolves each typedef's target through _is_type.
func checkTypedefTargetsExist(doc *abi.Document, reg *Registry, ctx *Context) error {
	for _, td := range doc.Typedefs {
		if err := ctx.CheckDeadline(); err != nil {
			return err
		}
		ok, err := IsType(doc, reg, ctx, td.Type)
		if err != nil {
			return err
		}
		if !ok {
			return abi.NewError(abi.KindInvalidType, td.NewName, "typedef target %q is not a known type", td.Type)
		}
	}
	return nil
}

// checkInheritanceAcyclic walks each struct's Base chain with a visited set.
func checkInheritanceAcyclic(doc *abi.Document, ctx *Context) error {
	for _, s := range doc.Structs {
		if err := ctx.CheckDeadline(); err != nil {
			return err
		}
		visited := map[string]bool{s.Name: true}
		base := s.Base
		for base != "" {
			if visited[base] {
				return abi.NewError(abi.KindCircularDef, s.Name, "circular struct inheritance chain")
			}
			visited[base] = true
			parent := findStruct(doc, abi.TypeName(base))
			if parent == nil {
				return abi.NewError(abi.KindInvalidType, s.Name, "base %q is not a known struct", base)
			}
			base = parent.Base
		}
	}
	return nil
}

// checkStructFieldsTyped verifies every field's RemoveBinExtension(type) satisfies
// _is_type.
func checkStructFieldsTyped(doc *abi.Document, reg *Registry, ctx *Context) error {
	for _, s := range doc.Structs {
		for _, f := range s.Fields {
			if err := ctx.CheckDeadline(); err != nil {
				return err
			}
			t := RemoveBinExtension(f.Type)
			ok, err := IsType(doc, reg, ctx, t)
			if err != nil {
				return err
			}
			if !ok {
				return abi.NewError(abi.KindInvalidType, s.Name, "field %q has unknown type %q", f.Name, f.Type).WithField(f.Name)
			}
		}
	}
	return nil
}

// dag is the shared cross-struct node set the field-graph check builds incrementally: a
// struct reached under one branch is added once, and a later candidate found already
// added elsewhere (not an ancestor of the current branch) is skipped without re-descent.
type dag struct {
	added map[string]bool
}

func newDag() *dag { return &dag{added: make(map[string]bool)} }

// add reports whether name appears among ancestors (a cycle); it returns (false, true)
// for a name that was added under a different branch and should be skipped without
// re-descending, and (true, false) when name is new and the caller should recurse into
// it.
func (d *dag) add(name string, ancestors map[string]bool) (isNew bool, circular bool) {
	if ancestors[name] {
		return false, true
	}
	if d.added[name] {
		return false, false
	}
	d.added[name] = true
	return true, false
}

// checkFieldGraphAcyclic builds the struct field-type DAG: a struct legitimately appears
// under many distinct parents, so only chains back to an ancestor are rejected, not
// every repeat visit.
func checkFieldGraphAcyclic(doc *abi.Document, ctx *Context) error {
	d := newDag()
	for _, s := range doc.Structs {
		if err := ctx.CheckDeadline(); err != nil {
			return err
		}
		if err := walkFieldGraph(doc, ctx, d, s.Name, map[string]bool{s.Name: true}); err != nil {
			return err
		}
	}
	return nil
}

func walkFieldGraph(doc *abi.Document, ctx *Context, d *dag, structName string, ancestors map[string]bool) error {
	if err := ctx.CheckDeadline(); err != nil {
		return err
	}
	s := findStruct(doc, abi.TypeName(structName))
	if s == nil {
		return nil
	}
	fieldsSeen := make(map[string]bool)
	for _, f := range s.Fields {
		resolved := string(Resolve(doc, Fundamental(RemoveBinExtension(f.Type))))
		if fieldsSeen[resolved] {
			break
		}
		fieldsSeen[resolved] = true

		target := findStruct(doc, abi.TypeName(resolved))
		if target == nil {
			continue
		}
		isNew, circular := d.add(target.Name, ancestors)
		if circular {
			return abi.NewError(abi.KindCircularStruct, structName, "field %q creates a cycle through %q", f.Name, target.Name)
		}
		if !isNew {
			continue
		}
		childAncestors := make(map[string]bool, len(ancestors)+1)
		for k := range ancestors {
			childAncestors[k] = true
		}
		childAncestors[target.Name] = true
		if err := walkFieldGraph(doc, ctx, d, target.Name, childAncestors); err != nil {
			return err
		}
	}
	return nil
}

// checkActionsAndTablesTyped verifies every action/table target is a known type (spec
// §4.6 step 7).
func checkActionsAndTablesTyped(doc *abi.Document, reg *Registry, ctx *Context) error {
	for _, a := range doc.Actions {
		if err := ctx.CheckDeadline(); err != nil {
			return err
		}
		ok, err := IsType(doc, reg, ctx, abi.TypeName(a.Type))
		if err != nil {
			return err
		}
		if !ok {
			return abi.NewError(abi.KindInvalidType, a.Name, "action target %q is not a known type", a.Type)
		}
	}
	for _, t := range doc.Tables {
		if err := ctx.CheckDeadline(); err != nil {
			return err
		}
		ok, err := IsType(doc, reg, ctx, abi.TypeName(t.Type))
		if err != nil {
			return err
		}
		if !ok {
			return abi.NewError(abi.KindInvalidType, t.Name, "table target %q is not a known type", t.Type)
		}
	}
	return nil
}
