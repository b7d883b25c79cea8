package beanmorph

import (
	"fmt"
	"reflect"
)

type Record = map[string]any

// Mapper is the contract every copy strategy honours. A nil source maps to a
// nil target with no error. Otherwise the target is freshly allocated and
// either fully populated or not returned at all.
type Mapper[S, T any] interface {
	Map(src *S) (*T, error)
}

// MapperFunc adapts a plain function to Mapper.
type MapperFunc[S, T any] func(src *S) (*T, error)

func (f MapperFunc[S, T]) Map(src *S) (*T, error) {
	return f(src)
}

// Converter is a single value conversion step.
type Converter[TSource, TDest any] interface {
	From(source TSource) (TDest, error)
}

type TypeInfo interface {
	SourceType() reflect.Type
	TargetType() reflect.Type
}

// TypedMapper is a runtime-composable conversion step that carries its input
// and output types, so chains can be checked when they are assembled.
//
// Implementations usually embed TypeMap[TSource, TDest] and define
// From(source any) (any, error).
//
// Example:
//
//	type Upper struct {
//	    beanmorph.TypeMap[string, string]
//	}
//
//	func (Upper) From(source any) (any, error) {
//	    s, ok := source.(string)
//	    if !ok {
//	        return nil, fmt.Errorf("expected string, got %T", source)
//	    }
//	    return strings.ToUpper(s), nil
//	}
type TypedMapper interface {
	Converter[any, any]
	TypeInfo
}

// TypeMap carries the source and target types of a TypedMapper. Embed it to
// satisfy TypeInfo.
type TypeMap[TSource, TDest any] struct{}

func (t TypeMap[TSource, TDest]) SourceType() reflect.Type {
	return reflect.TypeFor[TSource]()
}

func (t TypeMap[TSource, TDest]) TargetType() reflect.Type {
	return reflect.TypeFor[TDest]()
}

// Slice restricts T to a slice type.
type Slice[T any] interface {
	~[]T
}

// EnsureSlice panics if T is not a slice type.
func EnsureSlice[T any]() {
	if typ := reflect.TypeFor[T](); typ.Kind() != reflect.Slice {
		panic(fmt.Sprintf("EnsureSlice: expected slice type, got %v", typ))
	}
}

// SliceMapper converts every element of a slice with an element mapper.
type SliceMapper[TSource Slice[T], TDest Slice[D], T, D any] struct {
	elementMapper TypedMapper
}

func NewSliceMapper[TSource Slice[T], TDest Slice[D], T, D any](elementMapper TypedMapper) *SliceMapper[TSource, TDest, T, D] {
	EnsureSlice[TSource]()
	EnsureSlice[TDest]()

	return &SliceMapper[TSource, TDest, T, D]{
		elementMapper: elementMapper,
	}
}

func (stm *SliceMapper[TSource, TDest, T, D]) SourceType() reflect.Type {
	return reflect.TypeFor[TSource]()
}

func (stm *SliceMapper[TSource, TDest, T, D]) TargetType() reflect.Type {
	return reflect.TypeFor[TDest]()
}

func (stm *SliceMapper[TSource, TDest, T, D]) From(source any) (any, error) {
	castedSource, ok := source.(TSource)
	if !ok {
		return nil, fmt.Errorf("invalid source type: expected %v, got %T", reflect.TypeFor[TSource](), source)
	}
	if castedSource == nil {
		return TDest(nil), nil
	}

	result := make(TDest, 0, len(castedSource))
	for i, element := range castedSource {
		transformed, err := stm.elementMapper.From(element)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		d, ok := transformed.(D)
		if !ok {
			return nil, fmt.Errorf("element %d: expected %v, got %T", i, reflect.TypeFor[D](), transformed)
		}
		result = append(result, d)
	}

	return result, nil
}

// ChainedMapper runs TypedMapper steps left to right, feeding each output into
// the next input. Adjacent step types are checked on construction.
//
// Example:
//
//	chained := beanmorph.NewChainedMapper[string, int](StringLength{}, IntDoubler{})
//	result, err := chained.Map("hello") // 10
type ChainedMapper[TSource, TDest any] struct {
	mappers []TypedMapper
}

// NewChainedMapper panics when the steps do not line up with TSource, TDest or
// with each other.
func NewChainedMapper[TSource, TDest any](mappers ...TypedMapper) *ChainedMapper[TSource, TDest] {
	if len(mappers) == 0 {
		return &ChainedMapper[TSource, TDest]{mappers: mappers}
	}

	expectedSourceType := reflect.TypeFor[TSource]()
	if mappers[0].SourceType() != expectedSourceType {
		panic(fmt.Sprintf("first mapper must accept %v, got %v", expectedSourceType, mappers[0].SourceType()))
	}

	expectedDestType := reflect.TypeFor[TDest]()
	if mappers[len(mappers)-1].TargetType() != expectedDestType {
		panic(fmt.Sprintf("last mapper must produce %v, got %v", expectedDestType, mappers[len(mappers)-1].TargetType()))
	}

	for i := 0; i+1 < len(mappers); i++ {
		if mappers[i].TargetType() != mappers[i+1].SourceType() {
			panic(fmt.Sprintf("type mismatch between mapper %d output and mapper %d input", i, i+1))
		}
	}

	return &ChainedMapper[TSource, TDest]{mappers: mappers}
}

func (c *ChainedMapper[TSource, TDest]) Map(input TSource) (TDest, error) {
	var err error
	var current any = input
	for i, m := range c.mappers {
		current, err = m.From(current)
		if err != nil {
			var zero TDest
			return zero, fmt.Errorf("mapper chain failed at step %d: %w", i+1, err)
		}
	}

	result, ok := current.(TDest)
	if !ok {
		// a nil interface is a valid result for pointer, slice and map targets
		if current == nil {
			var zero TDest
			if canBeNil(reflect.TypeFor[TDest]()) {
				return zero, nil
			}
		}
		var zero TDest
		return zero, fmt.Errorf("final type mismatch: expected %v, got %T", reflect.TypeFor[TDest](), current)
	}
	return result, nil
}

// StructMapper applies a list of FieldMappers to copy values from a source
// value (struct, pointer to struct or Record) into a new TDest.
//
// Fields are read by name, by map key, or through a zero-argument getter, and
// written by name or through a one-argument setter.
type StructMapper[TSource, TDest any] struct {
	fieldMappings []FieldMapper
}

func NewStructMapper[TSource, TDest any](mappings []FieldMapper) StructMapper[TSource, TDest] {
	return StructMapper[TSource, TDest]{
		fieldMappings: mappings,
	}
}

// Map returns the zero TDest together with the error if any field fails.
func (b StructMapper[TSource, TDest]) Map(input TSource) (TDest, error) {
	var output TDest
	if err := mapStruct(input, &output, b.fieldMappings); err != nil {
		var zero TDest
		return zero, err
	}
	return output, nil
}

// FieldMappings returns the mappings this StructMapper replays.
func (b StructMapper[TSource, TDest]) FieldMappings() []FieldMapper {
	return b.fieldMappings
}

func assignValue(obj any, to string, value any) error {
	val := reflect.ValueOf(obj)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if val.Kind() == reflect.Struct {
		field := val.FieldByName(to)
		if field.IsValid() && field.CanSet() {
			if value == nil {
				if !canBeNil(field.Type()) {
					return fmt.Errorf("%w: cannot assign nil to %v", ErrTypeMismatch, field.Type())
				}
				field.SetZero()
				return nil
			}
			v := reflect.ValueOf(value)
			if !v.Type().AssignableTo(field.Type()) {
				return fmt.Errorf("%w: cannot assign %v to %v", ErrTypeMismatch, v.Type(), field.Type())
			}
			field.Set(v)
			return nil
		}
	}

	method := reflect.ValueOf(obj).MethodByName(to)
	if method.IsValid() && method.Type().NumIn() == 1 {
		argType := method.Type().In(0)
		v := reflect.ValueOf(value)
		if value == nil {
			v = reflect.Zero(argType)
		}
		if !v.Type().AssignableTo(argType) {
			return fmt.Errorf("%w: cannot pass %v to method %q expecting %v", ErrTypeMismatch, v.Type(), to, argType)
		}
		method.Call([]reflect.Value{v})
		return nil
	}

	return fmt.Errorf("could not assign or call method for %s", to)
}

func getFieldValueByName(obj any, name string) (any, error) {
	val := reflect.ValueOf(obj)

	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() == reflect.Struct {
		if field := val.FieldByName(name); field.IsValid() && field.CanInterface() {
			return field.Interface(), nil
		}
	}

	if val.Kind() == reflect.Map {
		if field := val.MapIndex(reflect.ValueOf(name)); field.IsValid() {
			return field.Interface(), nil
		}
	}

	ptr := reflect.ValueOf(obj)
	if ptr.Kind() != reflect.Ptr {
		copied := reflect.New(ptr.Type()).Elem()
		copied.Set(ptr)
		ptr = copied.Addr()
	}

	method := ptr.MethodByName(name)
	if method.IsValid() && method.Type().NumIn() == 0 && method.Type().NumOut() == 1 {
		return method.Call(nil)[0].Interface(), nil
	}

	return nil, fmt.Errorf("field or zero-arg getter %q not found on %T", name, obj)
}

func mapStruct[I any, O any](input I, output O, mappings []FieldMapper) error {
	for _, fieldMapper := range mappings {
		fromName := fieldMapper.From().Name()
		toName := fieldMapper.To().Name()

		rawValue, err := getFieldValueByName(input, fromName)
		if err != nil {
			return fmt.Errorf("input error [%s]: %w", fromName, err)
		}

		mapped, err := fieldMapper.Map(rawValue)
		if err != nil {
			return fmt.Errorf("mapping error [%s]: %w", fromName, err)
		}

		err = assignValue(output, toName, mapped.MappedValue().Value())
		if err != nil {
			return fmt.Errorf("output error [%s]: %w", toName, err)
		}
	}
	return nil
}

// GetField reads a typed value out of a Record.
func GetField[T any](record Record, field FieldDef[T]) (T, error) {
	val, ok := record[field.Name()]
	if !ok {
		var zero T
		return zero, NewValidationError(field.Name(), val, fmt.Sprintf("field %q not found", field.Name()))
	}

	typedVal, ok := val.(T)
	if !ok {
		var zero T
		return zero, NewValidationError(field.Name(), val, fmt.Sprintf("expected type %v, got %T", reflect.TypeFor[T](), val))
	}

	return typedVal, nil
}

func canBeNil(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return true
	}
	return false
}
