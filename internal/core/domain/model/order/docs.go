// Package order provides domain entities and business logic for order
// management in the agromarket system. It implements the Order aggregate
// root with lifecycle management and role-gated state transitions.
//
// The package includes:
//   - Order: The aggregate root managing one buyer/seller transaction
//   - Status: A state machine that enforces valid status transitions
//   - Actor: The party attempting a transition (buyer or seller)
//
// Key business rules:
//   - Orders must reference a valid buyer, seller, item and positive quantity
//   - The total amount equals quantity times unit price at creation and is
//     never recomputed afterwards
//   - Status follows pending -> confirmed -> in_transit -> delivered, with
//     cancellation allowed before shipment; delivered, cancelled and
//     returned are terminal
//   - Buyers may only cancel an order that is still pending
//
// The package follows Domain-Driven Design principles, providing rich
// domain behavior, encapsulation, and validation to ensure business rules
// are enforced.
package order
