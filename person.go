package beanmorph

//go:generate go run ./cmd/beanmorph gen -f beanmorph.yaml

// PersonEntity is the source record, as it comes out of the persistence layer.
type PersonEntity struct {
	NamePrefix *string `json:"namePrefix,omitempty" yaml:"namePrefix,omitempty"`
	FirstName  string  `json:"firstName" yaml:"firstName"`
	MiddleName *string `json:"middleName,omitempty" yaml:"middleName,omitempty"`
	LastName   string  `json:"lastName" yaml:"lastName"`
}

// PersonDTO is the target record handed to the presentation layer.
// Its field set mirrors PersonEntity exactly.
type PersonDTO struct {
	NamePrefix *string `json:"namePrefix,omitempty" yaml:"namePrefix,omitempty"`
	FirstName  string  `json:"firstName" yaml:"firstName"`
	MiddleName *string `json:"middleName,omitempty" yaml:"middleName,omitempty"`
	LastName   string  `json:"lastName" yaml:"lastName"`
}

// MapPersonManually is the hand-written mapper: every field is copied explicitly.
func MapPersonManually(src *PersonEntity) *PersonDTO {
	if src == nil {
		return nil
	}
	return &PersonDTO{
		NamePrefix: src.NamePrefix,
		FirstName:  src.FirstName,
		MiddleName: src.MiddleName,
		LastName:   src.LastName,
	}
}

// ManualPersonMapper adapts MapPersonManually to the Mapper interface.
type ManualPersonMapper struct{}

func (ManualPersonMapper) Map(src *PersonEntity) (*PersonDTO, error) {
	return MapPersonManually(src), nil
}
