// Package registry is the module catalogue.
//
// Every pipeline stage lives in its own package under modules/ and registers
// its ModuleDef here at startup. The Registry then answers the only question
// the rest of the program asks of it: given a module name, what options does
// it take and what are their defaults.
//
// The catalogue is closed and defined in code. Option lists are explicit and
// ordered, so the serialization contract of each stage can be read straight
// from its module package.
package registry
