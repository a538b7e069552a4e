// Package kernel provides core domain primitives for the delivery system.
// It implements the fundamental building blocks used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for unique delivery identifiers with validation and comparison
//   - ConstructorGuard: A defensive pattern that ensures objects are built via their constructors
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are immutable and thread-safe,
// making them suitable for concurrent use by many consumer workers.
package kernel
