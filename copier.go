package beanmorph

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-leo/gox/reflectx"
)

type copyOptions struct {
	ignoreEmpty  bool
	nameComparer func(a, b string) bool
}

type CopyOption func(o *copyOptions)

// IgnoreEmpty skips source fields holding an empty value, keeping whatever
// the destination already has.
func IgnoreEmpty() CopyOption {
	return func(o *copyOptions) {
		o.ignoreEmpty = true
	}
}

// CaseInsensitive matches field names with strings.EqualFold.
func CaseInsensitive() CopyOption {
	return func(o *copyOptions) {
		o.nameComparer = strings.EqualFold
	}
}

func (o *copyOptions) apply(opts ...CopyOption) *copyOptions {
	for _, opt := range opts {
		opt(o)
	}
	if o.nameComparer == nil {
		o.nameComparer = func(a, b string) bool { return a == b }
	}
	return o
}

// CopyProperties copies every exported field of src into the field of dst
// with the same name. dst must be a non-nil pointer to a struct; src may be a
// struct or a pointer to one. Destination fields without a source counterpart
// are left alone, and a nil src leaves dst untouched.
//
// The field plan is worked out on every call. Nothing is written to dst
// unless every matched field could be copied.
func CopyProperties(dst, src any, opts ...CopyOption) error {
	o := (&copyOptions{}).apply(opts...)

	dstVal := reflect.ValueOf(dst)
	if dstVal.Kind() != reflect.Ptr || dstVal.IsNil() {
		return newMappingError("copy properties", "", fmt.Errorf("%w, got %T", ErrNilDestination, dst))
	}
	dstVal = dstVal.Elem()
	if dstVal.Kind() != reflect.Struct {
		return newMappingError("copy properties", "", fmt.Errorf("%w: destination %v", ErrNotStruct, dstVal.Type()))
	}

	if src == nil {
		return nil
	}
	srcVal := reflect.ValueOf(src)
	for srcVal.Kind() == reflect.Ptr {
		if srcVal.IsNil() {
			return nil
		}
		srcVal = srcVal.Elem()
	}
	if srcVal.Kind() != reflect.Struct {
		return newMappingError("copy properties", "", fmt.Errorf("%w: source %T", ErrNotStruct, src))
	}

	staged := reflect.New(dstVal.Type()).Elem()
	staged.Set(dstVal)

	dstType := dstVal.Type()
	for i := 0; i < dstType.NumField(); i++ {
		field := dstType.Field(i)
		if !field.IsExported() || field.Anonymous {
			continue
		}

		srcField, ok := findField(srcVal, field.Name, o.nameComparer)
		if !ok {
			continue
		}
		if o.ignoreEmpty && reflectx.IsEmptyValue(srcField) {
			continue
		}
		if !srcField.Type().AssignableTo(field.Type) {
			return newMappingError("copy properties", field.Name,
				fmt.Errorf("%w: %v -> %v", ErrTypeMismatch, srcField.Type(), field.Type))
		}
		staged.Field(i).Set(srcField)
	}

	dstVal.Set(staged)
	return nil
}

func findField(v reflect.Value, name string, equal func(a, b string) bool) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.IsExported() && !f.Anonymous && equal(f.Name, name) {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// PropertyCopier is the Mapper form of CopyProperties.
type PropertyCopier[S, T any] struct {
	opts []CopyOption
}

func NewPropertyCopier[S, T any](opts ...CopyOption) *PropertyCopier[S, T] {
	return &PropertyCopier[S, T]{opts: opts}
}

func (c *PropertyCopier[S, T]) Map(src *S) (*T, error) {
	if src == nil {
		return nil, nil
	}
	dst := new(T)
	if err := CopyProperties(dst, src, c.opts...); err != nil {
		return nil, err
	}
	return dst, nil
}
