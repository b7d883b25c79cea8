package codegen

import (
	"errors"
	"fmt"

	"github.com/dklassen/beanmorph/internal/analyze"
	"github.com/dklassen/beanmorph/internal/mapping"
)

var (
	ErrUnknownType   = errors.New("unknown struct type")
	ErrUnknownField  = errors.New("unknown field")
	ErrTypeMismatch  = errors.New("field types differ")
	ErrUnmappedField = errors.New("target field is neither mapped nor ignored")
	ErrWrongPackage  = errors.New("declaration package does not match loaded package")
)

// Assignment copies Source into Target.
type Assignment struct {
	Source string
	Target string
}

// MapperPlan is one resolved mapper.
type MapperPlan struct {
	Name        string
	Func        string
	Source      string
	Target      string
	Assignments []Assignment
}

// Plan is everything needed to render one output file.
type Plan struct {
	Package string
	Output  string
	// Origin is the declaration file the plan came from, if any.
	Origin  string
	Mappers []MapperPlan
}

// Resolve fixes the assignments of every declared mapper against pkg.
// Assignments follow the target struct's field order. Explicit field pairs
// win over name matching.
func Resolve(f *mapping.File, pkg *analyze.Package, origin string) (*Plan, error) {
	if f.Package != pkg.Name {
		return nil, fmt.Errorf("%w: %q vs %q", ErrWrongPackage, f.Package, pkg.Name)
	}

	p := &Plan{
		Package: f.Package,
		Output:  f.Output,
		Origin:  origin,
	}
	for i := range f.Mappers {
		mp, err := resolveMapper(&f.Mappers[i], pkg)
		if err != nil {
			return nil, fmt.Errorf("mapper %s: %w", f.Mappers[i].Name, err)
		}
		p.Mappers = append(p.Mappers, *mp)
	}

	return p, nil
}

func resolveMapper(m *mapping.MapperDecl, pkg *analyze.Package) (*MapperPlan, error) {
	src, ok := pkg.Structs[m.Source]
	if !ok {
		return nil, fmt.Errorf("%w: source %s", ErrUnknownType, m.Source)
	}
	tgt, ok := pkg.Structs[m.Target]
	if !ok {
		return nil, fmt.Errorf("%w: target %s", ErrUnknownType, m.Target)
	}

	explicit := make(map[string]string, len(m.Fields))
	for _, fd := range m.Fields {
		explicit[fd.Target] = fd.Source
	}
	ignored := make(map[string]struct{}, len(m.Ignore))
	for _, name := range m.Ignore {
		if _, ok := tgt.Field(name); !ok {
			return nil, fmt.Errorf("%w: ignored %s.%s", ErrUnknownField, tgt.Name, name)
		}
		ignored[name] = struct{}{}
	}
	for target := range explicit {
		if _, ok := tgt.Field(target); !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, tgt.Name, target)
		}
	}

	mp := &MapperPlan{
		Name:   m.Name,
		Func:   m.Func,
		Source: m.Source,
		Target: m.Target,
	}
	for _, tf := range tgt.Fields {
		if _, skip := ignored[tf.Name]; skip {
			continue
		}

		sourceName, pinned := explicit[tf.Name]
		if !pinned {
			if !tf.Exported {
				continue
			}
			if !m.AutoMatch() {
				return nil, fmt.Errorf("%w: %s.%s", ErrUnmappedField, tgt.Name, tf.Name)
			}
			sourceName = tf.Name
		}

		sf, ok := src.Field(sourceName)
		if !ok || !sf.Exported {
			if pinned {
				return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, src.Name, sourceName)
			}
			return nil, fmt.Errorf("%w: %s.%s", ErrUnmappedField, tgt.Name, tf.Name)
		}
		if sf.Type != tf.Type {
			return nil, fmt.Errorf("%w: %s.%s (%s) -> %s.%s (%s)",
				ErrTypeMismatch, src.Name, sf.Name, sf.Type, tgt.Name, tf.Name, tf.Type)
		}

		mp.Assignments = append(mp.Assignments, Assignment{Source: sf.Name, Target: tf.Name})
	}

	return mp, nil
}
