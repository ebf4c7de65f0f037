package errors

// Violation is the value form of a law failure. Enumeration loops reject
// most candidates, so the checkers report a Violation, which costs no
// allocation, and only Validate turns it into an error.
type Violation struct {
	Code    string
	Witness [3]int
}

// OK reports whether no law was violated.
func (v Violation) OK() bool {
	return v.Code == ""
}

// Err converts the violation into its LawError, or nil when OK.
func (v Violation) Err() error {
	w := v.Witness
	switch v.Code {
	case "":
		return nil
	case CodeIncompatibleComposition:
		return IncompatibleComposition(w[0], w[1])
	case CodeNonAssociative:
		return NonAssociative(w[0], w[1], w[2])
	case CodeNotAnIdentity:
		return NotAnIdentity(w[0])
	case CodeNotWellDefined:
		return NotWellDefined(w[0], w[1])
	case CodeNonFunctorial:
		return NonFunctorial(w[0], w[1], w[2])
	default:
		return NewInternalError("unknown violation "+v.Code, nil)
	}
}
