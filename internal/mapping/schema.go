package mapping

// File is the root of a declaration file.
type File struct {
	Version string       `yaml:"version"`
	Package string       `yaml:"package"`
	Output  string       `yaml:"output,omitempty"`
	Mappers []MapperDecl `yaml:"mappers"`
}

// MapperDecl declares one generated mapper.
type MapperDecl struct {
	// Name is the generated mapper type.
	Name string `yaml:"name,omitempty"`
	// Func is the generated copy function.
	Func   string      `yaml:"func,omitempty"`
	Source string      `yaml:"source"`
	Target string      `yaml:"target"`
	Auto   *bool       `yaml:"auto,omitempty"`
	Fields []FieldDecl `yaml:"fields,omitempty"`
	Ignore []string    `yaml:"ignore,omitempty"`
}

// FieldDecl pins a target field to a source field.
type FieldDecl struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// AutoMatch reports whether undeclared target fields are matched by name.
// It defaults to true.
func (m *MapperDecl) AutoMatch() bool {
	return m.Auto == nil || *m.Auto
}
