// Package mapping loads and validates mapper declaration files.
//
// A declaration names the source and target struct of each mapper and,
// optionally, explicit field correspondences and ignored target fields.
// Remaining target fields are matched by name unless auto is false.
//
//	version: "1"
//	package: beanmorph
//	output: person_mapper_gen.go
//	mappers:
//	  - name: GeneratedPersonMapper
//	    func: MapPersonEntityToPersonDTO
//	    source: PersonEntity
//	    target: PersonDTO
//	    fields:
//	      - source: FirstName
//	        target: FirstName
//	    ignore: []
//
// Source and target types must live in the declared package.
package mapping
