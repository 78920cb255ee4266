// Package core defines the shared language of the ecltoml translator.
//
// This package contains:
//   - The source AST (Document, Section, Assignment, ConstantDef, Value)
//   - The resolved AST handed to the emitter (ResolvedDocument, ResolvedValue)
//   - Traversal helpers used by the resolver and tooling
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
package core
