package beanmorph

import (
	"fmt"
	"reflect"
)

var (
	_ Field = FieldDef[any]{}
	_ Field = structField{}
)

// Field names a property of a record and the type it holds. It carries no data.
type Field interface {
	Name() string
	Type() reflect.Type
}

// FieldDef is a Field whose type is known at compile time.
type FieldDef[T any] struct {
	name string
	typ  reflect.Type
}

func NewField[T any](name string) FieldDef[T] {
	return FieldDef[T]{
		name: name,
		typ:  reflect.TypeFor[T](),
	}
}

func (f FieldDef[T]) Name() string {
	return f.name
}

func (f FieldDef[T]) Type() reflect.Type {
	return f.typ
}

// structField is a Field discovered through reflection.
type structField struct {
	name string
	typ  reflect.Type
}

func (f structField) Name() string {
	return f.name
}

func (f structField) Type() reflect.Type {
	return f.typ
}

// TypedValue is a value paired with the type it was produced as.
type TypedValue struct {
	value any
	typ   reflect.Type
}

func NewTypedValue(value any) TypedValue {
	return TypedValue{
		value: value,
		typ:   reflect.TypeOf(value),
	}
}

func (v TypedValue) Value() any {
	return v.value
}

func (v TypedValue) Type() reflect.Type {
	return v.typ
}

// As panics if v does not hold a T.
func As[T any](v TypedValue) T {
	if v.typ != reflect.TypeFor[T]() {
		panic(fmt.Errorf("value is not of type %v", reflect.TypeFor[T]()))
	}
	return v.value.(T)
}

func UnwrapAs[T any](fm FieldMappingResult) T {
	return As[T](fm.MappedValue())
}

type FieldMappingResult struct {
	targetField Field
	mappedValue TypedValue
}

func (r FieldMappingResult) TargetField() Field {
	return r.targetField
}

func (r FieldMappingResult) MappedValue() TypedValue {
	return r.mappedValue
}

func NewFieldMappingResult(targetField Field, value TypedValue) FieldMappingResult {
	return FieldMappingResult{
		targetField: targetField,
		mappedValue: value,
	}
}
