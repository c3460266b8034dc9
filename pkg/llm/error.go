package llm

import "fmt"

// InvalidShapeError is returned when a payload is requested in a shape the
// builder does not know how to assemble. It is a configuration error: the
// builder never guesses a default shape.
type InvalidShapeError struct {
	Shape Shape
}

func (e InvalidShapeError) Error() string {
	return fmt.Sprintf("unsupported payload shape: %q", string(e.Shape))
}
