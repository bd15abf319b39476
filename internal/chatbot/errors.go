package chatbot

import "fmt"

// Entities a recommendation can be missing
const (
	MissingClient  = "client"
	MissingProduct = "product"
)

// UnresolvedEntityError means a size recommendation lacked a client or product even after
// falling back to the session's active entities.
type UnresolvedEntityError struct {
	Missing string
}

func (e *UnresolvedEntityError) Error() string {
	return fmt.Sprintf("unresolved entity: no %s in message or session", e.Missing)
}
