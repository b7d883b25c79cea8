package beanmorph_test

import (
	"testing"

	"github.com/dklassen/beanmorph"
)

var benchSink *beanmorph.PersonDTO

func BenchmarkPersonMappers(b *testing.B) {
	reg, err := beanmorph.NewPersonRegistry()
	if err != nil {
		b.Fatal(err)
	}
	prefix := "Dr."

	for _, strategy := range reg.Strategies() {
		mapper, err := reg.Lookup(strategy)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(string(strategy), func(b *testing.B) {
			b.ReportAllocs()
			for x := 0; x < b.N; x++ {
				dto, err := mapper.Map(&beanmorph.PersonEntity{NamePrefix: &prefix, FirstName: "Jane", LastName: "Doe"})
				if err != nil {
					b.Fatal(err)
				}
				benchSink = dto
			}
		})
	}
}

func BenchmarkCopyProperties(b *testing.B) {
	prefix := "Dr."
	src := beanmorph.PersonEntity{NamePrefix: &prefix, FirstName: "Jane", LastName: "Doe"}
	for x := 0; x < b.N; x++ {
		var dst beanmorph.PersonDTO
		if err := beanmorph.CopyProperties(&dst, &src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDerivePlan(b *testing.B) {
	for x := 0; x < b.N; x++ {
		if _, err := beanmorph.DerivePlan[beanmorph.PersonEntity, beanmorph.PersonDTO](); err != nil {
			b.Fatal(err)
		}
	}
}
