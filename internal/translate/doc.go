// Package translate converts a signal graph into Wagner IR.
//
// Translation is a recursive classify, look up, construct walk. Every visit
// bumps the occurrence counter of the node. A node already translated in one
// of the open scopes is a cache hit; otherwise its shape picks the IR variant,
// the operands are translated in order, and the result is bound in the
// innermost scope table before a Reference to it is returned.
//
// A de Bruijn recursive binder opens a fresh scope for its body and closes it
// afterwards; the closed table travels with the Feedback node and is never
// searched again. The legacy named binder translates in the current scope.
//
// Nothing here fails: unrecognized shapes become Error leaves and a warning
// goes to the diag.Reporter.
package translate
