package beanmorph

// A FieldMapping is declared in a fixed order: source field, target field,
// conversion, validation. Each stage is its own interface so a step cannot be
// skipped or repeated by accident.
type FromStep[TSource, TDest any] interface {
	To(field FieldDef[TDest]) ConvertStep[TSource, TDest]
}

type ConvertStep[TSource, TDest any] interface {
	ConvertWith(TypeConverter) ValidateStep[TSource, TDest]
	SkipConversion() ValidateStep[TSource, TDest]
}

type ValidateStep[TSource, TDest any] interface {
	ValidateWith(Validator) BuildStep[TSource, TDest]
	SkipValidation() BuildStep[TSource, TDest]
}

type BuildStep[TSource, TDest any] interface {
	Build() FieldMapping[TSource, TDest]
}

// TypeConverter changes the value (and possibly the type) of a field.
type TypeConverter interface {
	TypedMapper
}

// Validator checks a converted value and returns it unchanged or an error.
type Validator interface {
	TypedMapper
}

type fieldMappingBuilder[TSource, TDest any] struct {
	source    FieldDef[TSource]
	target    FieldDef[TDest]
	converter TypeConverter
	validator Validator
}

// From starts a FieldMapping at the given source field.
//
//	mapping := beanmorph.From[string, string](beanmorph.NewField[string]("FirstName")).
//	    To(beanmorph.NewField[string]("GivenName")).
//	    ConvertWith(TrimConverter{}).
//	    ValidateWith(NotBlankValidator{}).
//	    Build()
func From[TSource, TDest any](field FieldDef[TSource]) FromStep[TSource, TDest] {
	return &fieldMappingBuilder[TSource, TDest]{source: field}
}

func (b *fieldMappingBuilder[TSource, TDest]) To(field FieldDef[TDest]) ConvertStep[TSource, TDest] {
	b.target = field
	return b
}

// ConvertWith runs converter on the source value. Its SourceType must be
// TSource, and without a validator its TargetType must be TDest.
func (b *fieldMappingBuilder[TSource, TDest]) ConvertWith(converter TypeConverter) ValidateStep[TSource, TDest] {
	b.converter = converter
	return b
}

func (b *fieldMappingBuilder[TSource, TDest]) SkipConversion() ValidateStep[TSource, TDest] {
	return b
}

// ValidateWith checks the converted value before it is assigned.
func (b *fieldMappingBuilder[TSource, TDest]) ValidateWith(validator Validator) BuildStep[TSource, TDest] {
	b.validator = validator
	return b
}

func (b *fieldMappingBuilder[TSource, TDest]) SkipValidation() BuildStep[TSource, TDest] {
	return b
}

// Build panics if the converter and validator types do not line up; see
// NewChainedMapper.
func (b *fieldMappingBuilder[TSource, TDest]) Build() FieldMapping[TSource, TDest] {
	steps := make([]TypedMapper, 0, 2)
	if b.converter != nil {
		steps = append(steps, b.converter)
	}
	if b.validator != nil {
		steps = append(steps, b.validator)
	}
	return NewFieldMapping(b.source, b.target, NewChainedMapper[TSource, TDest](steps...))
}

// CopyField is the 1:1 mapping of a field onto the same-named target field.
func CopyField[T any](name string) FieldMapping[T, T] {
	return RenameField[T](name, name)
}

// RenameField copies a value unchanged into a differently named field.
func RenameField[T any](source, target string) FieldMapping[T, T] {
	return From[T, T](NewField[T](source)).
		To(NewField[T](target)).
		ConvertWith(IdentityMapper[T]{}).
		SkipValidation().
		Build()
}
