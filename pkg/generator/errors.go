package generator

import (
	"fmt"
)

// StructuralError is a fatal generation error. It always names
// the qualified model element causing the abort.
type StructuralError struct {
	Element string
	msg     string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s: %s", e.Element, e.msg)
}

func structural(element, format string, args ...interface{}) *StructuralError {
	return &StructuralError{Element: element, msg: fmt.Sprintf(format, args...)}
}
