package mapping

import (
	"errors"
	"fmt"
	"go/token"
)

var ErrInvalid = errors.New("invalid mapping")

// Validate checks the declaration on its own, without looking at any Go
// types. All problems are reported together.
func Validate(f *File) error {
	if f == nil {
		return fmt.Errorf("%w: mapping file is nil", ErrInvalid)
	}

	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if f.Version != currentVersion {
		add("unsupported version %q", f.Version)
	}
	if !token.IsIdentifier(f.Package) {
		add("package %q is not a Go identifier", f.Package)
	}
	if len(f.Mappers) == 0 {
		add("no mappers declared")
	}

	names := map[string]struct{}{}
	for i := range f.Mappers {
		m := &f.Mappers[i]
		where := fmt.Sprintf("mappers[%d]", i)

		for _, id := range []struct{ what, value string }{
			{"name", m.Name},
			{"func", m.Func},
			{"source", m.Source},
			{"target", m.Target},
		} {
			if !token.IsIdentifier(id.value) {
				add("%s: %s %q is not a Go identifier", where, id.what, id.value)
			}
		}

		for _, ident := range []string{m.Name, m.Func} {
			if _, ok := names[ident]; ok {
				add("%s: %q declared twice", where, ident)
			}
			names[ident] = struct{}{}
		}

		targets := map[string]struct{}{}
		for j, fd := range m.Fields {
			if !token.IsIdentifier(fd.Source) || !token.IsIdentifier(fd.Target) {
				add("%s.fields[%d]: %q -> %q is not a field pair", where, j, fd.Source, fd.Target)
				continue
			}
			if _, ok := targets[fd.Target]; ok {
				add("%s.fields[%d]: target %q mapped twice", where, j, fd.Target)
			}
			targets[fd.Target] = struct{}{}
		}

		for _, ignored := range m.Ignore {
			if _, ok := targets[ignored]; ok {
				add("%s: target %q is both mapped and ignored", where, ignored)
			}
		}
	}

	return errors.Join(errs...)
}
