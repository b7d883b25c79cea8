package beanmorph

import (
	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONMapper copies a record by encoding it and decoding the bytes into the
// target type. Fields are matched by their json names.
type JSONMapper[S, T any] struct{}

func (JSONMapper[S, T]) Map(src *S) (*T, error) {
	if src == nil {
		return nil, nil
	}
	data, err := jsonAPI.Marshal(src)
	if err != nil {
		return nil, newMappingError("json map", "", err)
	}
	dst := new(T)
	if err := jsonAPI.Unmarshal(data, dst); err != nil {
		return nil, newMappingError("json map", "", err)
	}
	return dst, nil
}
