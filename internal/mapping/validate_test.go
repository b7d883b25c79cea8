package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFile() *File {
	return &File{
		Version: "1",
		Package: "people",
		Output:  "people_gen.go",
		Mappers: []MapperDecl{{
			Name:   "EntityToDTO",
			Func:   "MapEntity",
			Source: "Entity",
			Target: "DTO",
		}},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(f *File)
		wantErr string
	}{
		{
			name:   "valid",
			modify: func(f *File) {},
		},
		{
			name:    "unsupported version",
			modify:  func(f *File) { f.Version = "2" },
			wantErr: `unsupported version "2"`,
		},
		{
			name:    "bad package",
			modify:  func(f *File) { f.Package = "my-pkg" },
			wantErr: `package "my-pkg" is not a Go identifier`,
		},
		{
			name:    "no mappers",
			modify:  func(f *File) { f.Mappers = nil },
			wantErr: "no mappers declared",
		},
		{
			name:    "bad source",
			modify:  func(f *File) { f.Mappers[0].Source = "pkg.Entity" },
			wantErr: `mappers[0]: source "pkg.Entity" is not a Go identifier`,
		},
		{
			name: "duplicate mapper",
			modify: func(f *File) {
				f.Mappers = append(f.Mappers, f.Mappers[0])
			},
			wantErr: `mappers[1]: "EntityToDTO" declared twice`,
		},
		{
			name: "target mapped twice",
			modify: func(f *File) {
				f.Mappers[0].Fields = []FieldDecl{
					{Source: "A", Target: "Name"},
					{Source: "B", Target: "Name"},
				}
			},
			wantErr: `mappers[0].fields[1]: target "Name" mapped twice`,
		},
		{
			name: "mapped and ignored",
			modify: func(f *File) {
				f.Mappers[0].Fields = []FieldDecl{{Source: "A", Target: "Name"}}
				f.Mappers[0].Ignore = []string{"Name"}
			},
			wantErr: `mappers[0]: target "Name" is both mapped and ignored`,
		},
		{
			name: "empty field pair",
			modify: func(f *File) {
				f.Mappers[0].Fields = []FieldDecl{{Target: "Name"}}
			},
			wantErr: `mappers[0].fields[0]: "" -> "Name" is not a field pair`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFile()
			tt.modify(f)

			err := Validate(f)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	f := validFile()
	f.Version = "0"
	f.Package = ""

	err := Validate(f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported version")
	assert.Contains(t, err.Error(), "is not a Go identifier")
}

func TestValidate_Nil(t *testing.T) {
	assert.ErrorIs(t, Validate(nil), ErrInvalid)
}
