// Package analyze reads struct shapes out of a Go package.
package analyze

import (
	"errors"
	"fmt"
	"go/types"
	"sort"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedTypes |
	packages.NeedTypesInfo

var ErrNoPackage = errors.New("no package found")

// FieldInfo describes one struct field. Type is written relative to the
// package that declares the struct.
type FieldInfo struct {
	Name     string
	Type     string
	Exported bool
}

// StructInfo describes a named struct type.
type StructInfo struct {
	Name   string
	Fields []FieldInfo
}

// Field looks up a field by name.
func (s *StructInfo) Field(name string) (FieldInfo, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldInfo{}, false
}

// Package holds the named structs of one loaded package.
type Package struct {
	Name    string
	PkgPath string
	Structs map[string]*StructInfo
	// Errors are the load and type-check errors of the package. A package
	// that is about to receive generated code usually does not type-check
	// yet, so these are reported rather than fatal.
	Errors []error
}

// StructNames returns the struct names in sorted order.
func (p *Package) StructNames() []string {
	names := make([]string, 0, len(p.Structs))
	for name := range p.Structs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load loads the package matching pattern, resolved from dir.
func Load(dir, pattern string) (*Package, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  dir,
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	if len(pkgs) == 0 || pkgs[0].Types == nil {
		return nil, fmt.Errorf("%w: %s in %s", ErrNoPackage, pattern, dir)
	}
	if len(pkgs) > 1 {
		return nil, fmt.Errorf("pattern %s matched %d packages, expected one", pattern, len(pkgs))
	}

	return fromTypes(pkgs[0]), nil
}

func fromTypes(pkg *packages.Package) *Package {
	out := &Package{
		Name:    pkg.Name,
		PkgPath: pkg.PkgPath,
		Structs: make(map[string]*StructInfo),
	}
	for _, e := range pkg.Errors {
		out.Errors = append(out.Errors, e)
	}

	qualifier := types.RelativeTo(pkg.Types)
	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || tn.IsAlias() {
			continue
		}
		st, ok := tn.Type().Underlying().(*types.Struct)
		if !ok {
			continue
		}

		info := &StructInfo{Name: name}
		for i := 0; i < st.NumFields(); i++ {
			f := st.Field(i)
			if f.Embedded() {
				continue
			}
			info.Fields = append(info.Fields, FieldInfo{
				Name:     f.Name(),
				Type:     types.TypeString(f.Type(), qualifier),
				Exported: f.Exported(),
			})
		}
		out.Structs[name] = info
	}

	return out
}
