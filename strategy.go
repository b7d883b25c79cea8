package beanmorph

import (
	"fmt"
	"slices"

	"golang.org/x/exp/maps"
)

// Strategy names a way of producing the copy.
type Strategy string

const (
	StrategyManual    Strategy = "manual"
	StrategyCopier    Strategy = "copier"
	StrategyPlan      Strategy = "plan"
	StrategyGenerated Strategy = "generated"
	StrategyJSON      Strategy = "json"
)

// Registry holds interchangeable mappers for one source/target pair, keyed by
// strategy. It is not safe to Register while other goroutines read from it.
type Registry[S, T any] struct {
	mappers map[Strategy]Mapper[S, T]
}

func NewRegistry[S, T any]() *Registry[S, T] {
	return &Registry[S, T]{mappers: make(map[Strategy]Mapper[S, T])}
}

// Register adds or replaces the mapper for strategy.
func (r *Registry[S, T]) Register(strategy Strategy, mapper Mapper[S, T]) *Registry[S, T] {
	r.mappers[strategy] = mapper
	return r
}

func (r *Registry[S, T]) Lookup(strategy Strategy) (Mapper[S, T], error) {
	m, ok := r.mappers[strategy]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
	return m, nil
}

// Strategies returns the registered strategy names in sorted order.
func (r *Registry[S, T]) Strategies() []Strategy {
	keys := maps.Keys(r.mappers)
	slices.Sort(keys)
	return keys
}

func (r *Registry[S, T]) Map(strategy Strategy, src *S) (*T, error) {
	m, err := r.Lookup(strategy)
	if err != nil {
		return nil, err
	}
	return m.Map(src)
}

// NewPersonRegistry registers every PersonEntity -> PersonDTO strategy.
func NewPersonRegistry() (*Registry[PersonEntity, PersonDTO], error) {
	plan, err := NewPlanMapper[PersonEntity, PersonDTO]()
	if err != nil {
		return nil, fmt.Errorf("person plan mapper: %w", err)
	}

	return NewRegistry[PersonEntity, PersonDTO]().
		Register(StrategyManual, ManualPersonMapper{}).
		Register(StrategyCopier, NewPropertyCopier[PersonEntity, PersonDTO]()).
		Register(StrategyPlan, plan).
		Register(StrategyGenerated, GeneratedPersonMapper{}).
		Register(StrategyJSON, JSONMapper[PersonEntity, PersonDTO]{}), nil
}
