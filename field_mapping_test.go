package beanmorph_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dklassen/beanmorph"
)

var (
	lastNameField   = beanmorph.NewField[string]("LastName")
	familyNameField = beanmorph.NewField[string]("FamilyName")
)

type MockStringToStringMapper struct {
	mock.Mock
	beanmorph.TypeMap[string, string]
}

func (m *MockStringToStringMapper) From(source any) (any, error) {
	args := m.Called(source)
	return args.Get(0), args.Error(1)
}

type PointerMockStringToStringMapper struct {
	mock.Mock
	beanmorph.TypeMap[*string, *string]
}

func (m *PointerMockStringToStringMapper) From(source any) (any, error) {
	args := m.Called(source)
	return args.Get(0), args.Error(1)
}

func newLastNameMapping(mapper beanmorph.TypedMapper) beanmorph.FieldMapping[string, string] {
	return beanmorph.NewFieldMapping(
		lastNameField,
		familyNameField,
		beanmorph.NewChainedMapper[string, string](mapper),
	)
}

func TestFieldMapping_SuccessfulMap(t *testing.T) {
	mockMapper := new(MockStringToStringMapper)
	mapping := newLastNameMapping(mockMapper)

	mockMapper.On("From", "Doe").Return("DOE", nil)

	result, err := mapping.Map("Doe")
	require.NoError(t, err)
	assert.Equal(t, familyNameField, result.TargetField())
	assert.Equal(t, beanmorph.NewTypedValue("DOE"), result.MappedValue())
	mockMapper.AssertExpectations(t)
}

func TestFieldMapping_Map_InvalidType(t *testing.T) {
	mockMapper := new(MockStringToStringMapper)
	mapping := newLastNameMapping(mockMapper)

	_, err := mapping.Map(123)

	assert.EqualError(t, err, "invalid source type: expected string, got int")
	mockMapper.AssertNotCalled(t, "From", mock.Anything)
}

func TestFieldMapping_Map_MapperError(t *testing.T) {
	mockMapper := new(MockStringToStringMapper)
	mapping := newLastNameMapping(mockMapper)

	expectedErr := errors.New("lookup failed")
	mockMapper.On("From", "Doe").Return("", expectedErr)

	_, err := mapping.Map("Doe")

	assert.ErrorIs(t, err, expectedErr)
	mockMapper.AssertExpectations(t)
}

func TestFieldMapping_Map_EmptySourceValue(t *testing.T) {
	mockMapper := new(MockStringToStringMapper)
	mapping := newLastNameMapping(mockMapper)

	mockMapper.On("From", "").Return("", nil)

	result, err := mapping.Map("")

	assert.NoError(t, err)
	assert.Equal(t, familyNameField, result.TargetField())
	assert.Equal(t, beanmorph.NewTypedValue(""), result.MappedValue())
	mockMapper.AssertExpectations(t)
}

func TestFieldMapping_Map_NilMiddleName(t *testing.T) {
	mockMapper := new(PointerMockStringToStringMapper)
	srcField := beanmorph.NewField[*string]("MiddleName")
	tgtField := beanmorph.NewField[*string]("MiddleInitial")

	mapping := beanmorph.NewFieldMapping(
		srcField,
		tgtField,
		beanmorph.NewChainedMapper[*string, *string](mockMapper),
	)

	var nilPtr *string
	mockMapper.On("From", nilPtr).Return(nilPtr, nil)

	result, err := mapping.Map(nilPtr)

	assert.NoError(t, err)
	assert.Equal(t, beanmorph.NewTypedValue(nilPtr), result.MappedValue())
	assert.Equal(t, tgtField, result.TargetField())
	mockMapper.AssertExpectations(t)
}

type TrimMapper struct {
	beanmorph.TypeMap[string, string]
}

func (m TrimMapper) From(source any) (any, error) {
	return strings.TrimSpace(source.(string)), nil
}

type LowercaseMapper struct {
	beanmorph.TypeMap[string, string]
}

func (m LowercaseMapper) From(source any) (any, error) {
	return strings.ToLower(source.(string)), nil
}

// HonorificMapper spells known name prefixes the way the DTO expects them.
type HonorificMapper struct {
	canonical map[string]string
	beanmorph.TypeMap[string, string]
}

func NewHonorificMapper() *HonorificMapper {
	return &HonorificMapper{
		canonical: map[string]string{
			"dr":   "Dr.",
			"dr.":  "Dr.",
			"mrs":  "Mrs.",
			"mrs.": "Mrs.",
			"ms":   "Ms.",
		},
	}
}

func (m HonorificMapper) From(source any) (any, error) {
	if canonical, ok := m.canonical[source.(string)]; ok {
		return canonical, nil
	}
	return source, nil
}

func TestFieldMapping_MultipleMappers_RealTransformations(t *testing.T) {
	targetField := beanmorph.NewField[string]("Honorific")

	mapping := beanmorph.NewFieldMapping(
		beanmorph.NewField[string]("NamePrefix"),
		targetField,
		beanmorph.NewChainedMapper[string, string](
			&TrimMapper{},
			&LowercaseMapper{},
			NewHonorificMapper(),
		),
	)

	tests := []struct {
		name     string
		input    string
		expected beanmorph.TypedValue
	}{
		{
			name:     "trim and canonicalize doctor",
			input:    "  DR  ",
			expected: beanmorph.NewTypedValue("Dr."),
		},
		{
			name:     "dotted form",
			input:    "Mrs.",
			expected: beanmorph.NewTypedValue("Mrs."),
		},
		{
			name:     "bare form",
			input:    "ms",
			expected: beanmorph.NewTypedValue("Ms."),
		},
		{
			name:     "unknown prefix passes through lowercased",
			input:    "Prof.",
			expected: beanmorph.NewTypedValue("prof."),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := mapping.Map(tt.input)

			assert.NoError(t, err)
			assert.Equal(t, targetField, result.TargetField())
			assert.Equal(t, tt.expected, result.MappedValue())
		})
	}
}

func TestDerivedFieldMapping(t *testing.T) {
	plan, err := beanmorph.DerivePlan[beanmorph.PersonEntity, beanmorph.PersonDTO]()
	require.NoError(t, err)
	require.Len(t, plan, 4)

	prefix, firstName := plan[0], plan[1]

	t.Run("passes same-typed values through", func(t *testing.T) {
		result, err := firstName.Map("Jane")
		require.NoError(t, err)
		assert.Equal(t, "Jane", beanmorph.UnwrapAs[string](result))
		assert.Equal(t, "FirstName", result.TargetField().Name())
	})

	t.Run("nil is valid for pointer fields", func(t *testing.T) {
		result, err := prefix.Map(nil)
		require.NoError(t, err)
		assert.Nil(t, result.MappedValue().Value())
		assert.Equal(t, prefix.To().Type(), result.MappedValue().Type())
	})

	t.Run("nil is rejected for value fields", func(t *testing.T) {
		_, err := firstName.Map(nil)
		assert.ErrorIs(t, err, beanmorph.ErrTypeMismatch)
	})

	t.Run("other types are rejected", func(t *testing.T) {
		_, err := firstName.Map(42)
		assert.ErrorIs(t, err, beanmorph.ErrTypeMismatch)
	})
}
