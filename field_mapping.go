package beanmorph

import (
	"fmt"
	"reflect"
)

// FieldMapper transforms the value of one source field into a value for one
// target field.
type FieldMapper interface {
	From() Field
	To() Field
	Map(value any) (FieldMappingResult, error)
}

// FieldMapping links a source field, a target field and the ChainedMapper that
// turns one into the other. It is the unit StructMapper replays.
//
// Example:
//
//	mapping := beanmorph.NewFieldMapping(
//	    beanmorph.NewField[string]("FirstName"),
//	    beanmorph.NewField[string]("GivenName"),
//	    beanmorph.NewChainedMapper[string, string](beanmorph.IdentityMapper[string]{}),
//	)
//
//	result, err := mapping.Map("Jane") // result.TargetField().Name() == "GivenName"
type FieldMapping[TSource, TDest any] struct {
	from  FieldDef[TSource]
	to    FieldDef[TDest]
	using *ChainedMapper[TSource, TDest]
}

func NewFieldMapping[TSource, TDest any](
	from FieldDef[TSource],
	to FieldDef[TDest],
	using *ChainedMapper[TSource, TDest],
) FieldMapping[TSource, TDest] {
	return FieldMapping[TSource, TDest]{
		from:  from,
		to:    to,
		using: using,
	}
}

func (fm FieldMapping[TSource, TDest]) Using() *ChainedMapper[TSource, TDest] {
	return fm.using
}

func (fm FieldMapping[TSource, TDest]) From() Field {
	return fm.from
}

func (fm FieldMapping[TSource, TDest]) To() Field {
	return fm.to
}

func (fm FieldMapping[TSource, TDest]) Map(value any) (FieldMappingResult, error) {
	castedValue, ok := value.(TSource)
	if !ok {
		// untyped nil is a valid input for pointer-like sources
		if value != nil || !canBeNil(reflect.TypeFor[TSource]()) {
			err := fmt.Errorf("invalid source type: expected %v, got %T", reflect.TypeFor[TSource](), value)
			return NewFieldMappingResult(fm.To(), NewTypedValue(nil)), err
		}
	}

	mapped, err := fm.using.Map(castedValue)
	if err != nil {
		return NewFieldMappingResult(fm.To(), NewTypedValue(nil)), err
	}
	return NewFieldMappingResult(fm.To(), NewTypedValue(mapped)), nil
}

// identityFieldMapping copies a value between two same-typed fields found by
// reflection. It is what DerivePlan emits.
type identityFieldMapping struct {
	from structField
	to   structField
}

func (m identityFieldMapping) From() Field {
	return m.from
}

func (m identityFieldMapping) To() Field {
	return m.to
}

func (m identityFieldMapping) Map(value any) (FieldMappingResult, error) {
	if value == nil {
		if !canBeNil(m.from.typ) {
			return NewFieldMappingResult(m.to, NewTypedValue(nil)),
				fmt.Errorf("%w: nil is not a valid %v", ErrTypeMismatch, m.from.typ)
		}
		return NewFieldMappingResult(m.to, TypedValue{typ: m.to.typ}), nil
	}
	if got := reflect.TypeOf(value); got != m.from.typ {
		return NewFieldMappingResult(m.to, NewTypedValue(nil)),
			fmt.Errorf("%w: expected %v, got %v", ErrTypeMismatch, m.from.typ, got)
	}
	return NewFieldMappingResult(m.to, NewTypedValue(value)), nil
}
