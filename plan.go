package beanmorph

import (
	"fmt"
	"reflect"
)

type planOptions struct {
	allowUnmapped bool
}

type PlanOption func(o *planOptions)

// AllowUnmapped leaves target fields without a source counterpart at their
// zero value instead of failing.
func AllowUnmapped() PlanOption {
	return func(o *planOptions) {
		o.allowUnmapped = true
	}
}

// DerivePlan matches the exported fields of S and T by name and returns one
// identity FieldMapper per target field, in target declaration order. Matched
// fields must have identical types.
func DerivePlan[S, T any](opts ...PlanOption) ([]FieldMapper, error) {
	o := &planOptions{}
	for _, opt := range opts {
		opt(o)
	}

	srcType, err := structType(reflect.TypeFor[S]())
	if err != nil {
		return nil, newMappingError("derive plan", "", err)
	}
	dstType, err := structType(reflect.TypeFor[T]())
	if err != nil {
		return nil, newMappingError("derive plan", "", err)
	}

	mappings := make([]FieldMapper, 0, dstType.NumField())
	for i := 0; i < dstType.NumField(); i++ {
		dst := dstType.Field(i)
		if !dst.IsExported() || dst.Anonymous {
			continue
		}

		src, ok := srcType.FieldByName(dst.Name)
		if !ok || !src.IsExported() {
			if o.allowUnmapped {
				continue
			}
			return nil, newMappingError("derive plan", dst.Name, ErrUnmappedField)
		}
		if src.Type != dst.Type {
			return nil, newMappingError("derive plan", dst.Name,
				fmt.Errorf("%w: %v -> %v", ErrTypeMismatch, src.Type, dst.Type))
		}

		mappings = append(mappings, identityFieldMapping{
			from: structField{name: src.Name, typ: src.Type},
			to:   structField{name: dst.Name, typ: dst.Type},
		})
	}

	return mappings, nil
}

// PlanMapper replays a field plan that was worked out once by reflection.
// Only the per-field reads and writes still go through reflect.
type PlanMapper[S, T any] struct {
	structMapper StructMapper[*S, T]
}

// NewPlanMapper uses the given mappings, or derives them with DerivePlan when
// none are given.
func NewPlanMapper[S, T any](mappings ...FieldMapper) (*PlanMapper[S, T], error) {
	if len(mappings) == 0 {
		derived, err := DerivePlan[S, T]()
		if err != nil {
			return nil, err
		}
		mappings = derived
	}
	return &PlanMapper[S, T]{structMapper: NewStructMapper[*S, T](mappings)}, nil
}

func (m *PlanMapper[S, T]) Map(src *S) (*T, error) {
	if src == nil {
		return nil, nil
	}
	out, err := m.structMapper.Map(src)
	if err != nil {
		return nil, newMappingError("plan map", "", err)
	}
	return &out, nil
}

// Plan returns the field mappings in replay order.
func (m *PlanMapper[S, T]) Plan() []FieldMapper {
	return m.structMapper.FieldMappings()
}

func structType(t reflect.Type) (reflect.Type, error) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %v", ErrNotStruct, t)
	}
	return t, nil
}
