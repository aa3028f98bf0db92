// Package vm implements a minimal stack machine.
//
// This package contains:
//   - The closed opcode set and its metadata table
//   - Immutable, construction-validated instructions
//   - A fixed-capacity value stack with a soft overflow policy
//   - The fetch-decode-execute engine with relative branch semantics
//   - Injectable observation hooks (write sink, tracing)
package vm
