package bench

import (
	"fmt"

	"github.com/dklassen/beanmorph"
)

var (
	namePrefix = "Dr."

	// sink keeps mapped records reachable so the compiler cannot drop the call.
	sink *beanmorph.PersonDTO
)

// PersonBenchmarks builds one benchmark per strategy. With no strategies
// given, every registered strategy is benchmarked in sorted order. Each op
// maps a freshly constructed PersonEntity.
func PersonBenchmarks(reg *beanmorph.Registry[beanmorph.PersonEntity, beanmorph.PersonDTO], strategies ...beanmorph.Strategy) ([]Benchmark, error) {
	if len(strategies) == 0 {
		strategies = reg.Strategies()
	}

	benchmarks := make([]Benchmark, 0, len(strategies))
	for _, strategy := range strategies {
		mapper, err := reg.Lookup(strategy)
		if err != nil {
			return nil, err
		}
		benchmarks = append(benchmarks, Benchmark{
			Name: string(strategy),
			Op: func() error {
				dto, err := mapper.Map(&beanmorph.PersonEntity{
					NamePrefix: &namePrefix,
					FirstName:  "Jane",
					LastName:   "Doe",
				})
				if err != nil {
					return err
				}
				if dto == nil {
					return fmt.Errorf("%s returned no record", strategy)
				}
				sink = dto
				return nil
			},
		})
	}
	return benchmarks, nil
}

// Find returns the benchmark with the given name.
func Find(benchmarks []Benchmark, name string) (Benchmark, bool) {
	for _, b := range benchmarks {
		if b.Name == name {
			return b, true
		}
	}
	return Benchmark{}, false
}
