package formula

// Grammar accepted by Parse. spec.md fixes the shape of the resulting
// Phi tree, not any concrete syntax, so this grammar is this package's
// own invention, chosen to keep the lexer free of lookahead ambiguity
// (in particular "-" is reserved for the atom polarity suffix, so
// implication and iff use "=>"/"<=>" rather than "->"/"<->").
//
//	formula    := iff
//	iff        := implies ( "<=>" implies )*
//	implies    := or ( "=>" or )*
//	or         := and ( "|" and )*
//	and        := unary ( "&" unary )*
//	unary      := "!" unary
//	            | quantified
//	            | atom
//	            | "(" formula ")"
//	quantified := ("E"|"A") unarymod annotation? unary
//	            | ("E"|"A") "[" formula binarymod formula "]" annotation?
//	unarymod   := "X" | "F" | "G"
//	binarymod  := "U" | "W" | "R" | "M"
//	annotation := "{" annitem ( ";" annitem )* "}"
//	annitem    := "actions" ":" actionexpr
//	            | "ufair" ":" event ( "," event )*
//	            | "wfair" ":" fairpair ( "," fairpair )*
//	            | "sfair" ":" fairpair ( "," fairpair )*
//	fairpair   := event "THEN" event
//	event      := "@" actionexpr | unary
//	actionexpr := actor ( ( "&" | "|" ) actor )*
//	actor      := "!" actor | "true" | "false" | ident | "(" actionexpr ")"
//	atom       := "true" | "false" | ident
//
// ident optionally carries a trailing "+" or "-" polarity suffix with
// no intervening whitespace (spec.md §4.1's v, v+, v- atom forms).
//
// Example: EG{actions: up|down; wfair: @retry THEN @ack} ready
//
// Note: the lexer scans "EX", "AG", etc. as single fused identifiers
// (text/scanner's greedy ident rule gives no other choice when nothing
// separates the two letters), so the parser treats a two-letter E/A
// token as a ready-made unarymod pair rather than re-splitting it.
