package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dklassen/beanmorph/internal/analyze"
	"github.com/dklassen/beanmorph/internal/mapping"
)

func personPackage() *analyze.Package {
	fields := func() []analyze.FieldInfo {
		return []analyze.FieldInfo{
			{Name: "NamePrefix", Type: "*string", Exported: true},
			{Name: "FirstName", Type: "string", Exported: true},
			{Name: "MiddleName", Type: "*string", Exported: true},
			{Name: "LastName", Type: "string", Exported: true},
		}
	}
	return &analyze.Package{
		Name: "people",
		Structs: map[string]*analyze.StructInfo{
			"Entity": {Name: "Entity", Fields: append(fields(),
				analyze.FieldInfo{Name: "GivenName", Type: "string", Exported: true},
				analyze.FieldInfo{Name: "Age", Type: "int", Exported: true},
			)},
			"DTO": {Name: "DTO", Fields: append(fields(),
				analyze.FieldInfo{Name: "cache", Type: "string", Exported: false},
			)},
			"Summary": {Name: "Summary", Fields: []analyze.FieldInfo{
				{Name: "Age", Type: "string", Exported: true},
				{Name: "Nickname", Type: "string", Exported: true},
			}},
		},
	}
}

func declFile(m mapping.MapperDecl) *mapping.File {
	if m.Name == "" {
		m.Name = "EntityMapper"
	}
	if m.Func == "" {
		m.Func = "MapEntity"
	}
	return &mapping.File{Version: "1", Package: "people", Output: "people_gen.go", Mappers: []mapping.MapperDecl{m}}
}

func TestResolve_AutoMatchFollowsTargetOrder(t *testing.T) {
	p, err := Resolve(declFile(mapping.MapperDecl{Source: "Entity", Target: "DTO"}), personPackage(), "decl.yaml")
	require.NoError(t, err)

	assert.Equal(t, "people", p.Package)
	assert.Equal(t, "people_gen.go", p.Output)
	assert.Equal(t, "decl.yaml", p.Origin)
	require.Len(t, p.Mappers, 1)
	assert.Equal(t, []Assignment{
		{Source: "NamePrefix", Target: "NamePrefix"},
		{Source: "FirstName", Target: "FirstName"},
		{Source: "MiddleName", Target: "MiddleName"},
		{Source: "LastName", Target: "LastName"},
	}, p.Mappers[0].Assignments)
}

func TestResolve_ExplicitFieldWins(t *testing.T) {
	p, err := Resolve(declFile(mapping.MapperDecl{
		Source: "Entity",
		Target: "DTO",
		Fields: []mapping.FieldDecl{{Source: "GivenName", Target: "FirstName"}},
	}), personPackage(), "")
	require.NoError(t, err)

	assert.Equal(t, Assignment{Source: "GivenName", Target: "FirstName"}, p.Mappers[0].Assignments[1])
}

func TestResolve_IgnoredFieldIsSkipped(t *testing.T) {
	p, err := Resolve(declFile(mapping.MapperDecl{
		Source: "Entity",
		Target: "DTO",
		Ignore: []string{"MiddleName"},
	}), personPackage(), "")
	require.NoError(t, err)

	for _, a := range p.Mappers[0].Assignments {
		assert.NotEqual(t, "MiddleName", a.Target)
	}
	assert.Len(t, p.Mappers[0].Assignments, 3)
}

func TestResolve_Errors(t *testing.T) {
	off := false
	tests := []struct {
		name    string
		file    *mapping.File
		wantErr error
	}{
		{
			name:    "unknown source type",
			file:    declFile(mapping.MapperDecl{Source: "Nope", Target: "DTO"}),
			wantErr: ErrUnknownType,
		},
		{
			name:    "unknown target type",
			file:    declFile(mapping.MapperDecl{Source: "Entity", Target: "Nope"}),
			wantErr: ErrUnknownType,
		},
		{
			name: "unknown pinned source field",
			file: declFile(mapping.MapperDecl{
				Source: "Entity",
				Target: "DTO",
				Fields: []mapping.FieldDecl{{Source: "Surname", Target: "LastName"}},
			}),
			wantErr: ErrUnknownField,
		},
		{
			name: "unknown pinned target field",
			file: declFile(mapping.MapperDecl{
				Source: "Entity",
				Target: "DTO",
				Fields: []mapping.FieldDecl{{Source: "LastName", Target: "Surname"}},
			}),
			wantErr: ErrUnknownField,
		},
		{
			name:    "unknown ignored field",
			file:    declFile(mapping.MapperDecl{Source: "Entity", Target: "DTO", Ignore: []string{"Surname"}}),
			wantErr: ErrUnknownField,
		},
		{
			name:    "type mismatch",
			file:    declFile(mapping.MapperDecl{Source: "Entity", Target: "Summary", Ignore: []string{"Nickname"}}),
			wantErr: ErrTypeMismatch,
		},
		{
			name:    "unmatched target field",
			file:    declFile(mapping.MapperDecl{Source: "Entity", Target: "Summary", Ignore: []string{"Age"}}),
			wantErr: ErrUnmappedField,
		},
		{
			name:    "auto matching disabled",
			file:    declFile(mapping.MapperDecl{Source: "Entity", Target: "DTO", Auto: &off}),
			wantErr: ErrUnmappedField,
		},
		{
			name: "package mismatch",
			file: &mapping.File{Version: "1", Package: "other", Output: "x.go", Mappers: []mapping.MapperDecl{
				{Name: "A", Func: "B", Source: "Entity", Target: "DTO"},
			}},
			wantErr: ErrWrongPackage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.file, personPackage(), "")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
