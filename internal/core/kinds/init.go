// Package kinds registers the service record kinds with the core registry.
// Import this package for its side effects to make every kind available.
//
// Each kind file uses init() to register its definition: the row
// processor, the alias and enum tables it reads with, its export column
// layout and its import template.
package kinds
