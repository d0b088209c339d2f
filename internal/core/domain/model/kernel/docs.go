// Package kernel provides core domain primitives for the agromarket system.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison
//   - Money: A value object for monetary amounts in minor currency units
//   - Address: A value object for structured shipping addresses
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are immutable and
// thread-safe, making them suitable for concurrent use.
package kernel
