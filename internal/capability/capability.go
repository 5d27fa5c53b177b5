// Package capability defines the closed set of actions the model may invoke
// during a conversation: searching the knowledge base and handing out the
// demo booking link. The set is fixed; adding a capability means adding a
// Kind, its argument type, and a branch wherever Kind is matched.
package capability

import (
	"encoding/json"
	"fmt"

	"github.com/firebase/genkit/go/ai"
)

// Wire-level capability names exposed to the model.
const (
	NameSearchKnowledgeBase = "search_knowledge_base"
	NameBookDemo            = "book_demo"
)

// Kind identifies a capability. The zero value is invalid.
type Kind int

const (
	KindUnknown Kind = iota
	KindSearchKnowledgeBase
	KindBookDemo
)

// String returns the wire-level name of the capability.
func (k Kind) String() string {
	switch k {
	case KindSearchKnowledgeBase:
		return NameSearchKnowledgeBase
	case KindBookDemo:
		return NameBookDemo
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// KindFromName maps a wire-level name to its Kind.
// Returns KindUnknown for names outside the closed set.
func KindFromName(name string) Kind {
	switch name {
	case NameSearchKnowledgeBase:
		return KindSearchKnowledgeBase
	case NameBookDemo:
		return KindBookDemo
	default:
		return KindUnknown
	}
}

// SearchArgs are the arguments of search_knowledge_base.
type SearchArgs struct {
	// Query is the search query. The model is instructed to be specific;
	// an empty query is tolerated and simply retrieves nothing useful.
	Query string `json:"query"`
}

// BookDemoArgs are the arguments of book_demo.
type BookDemoArgs struct {
	// Reason is a brief note on why the prospect wants a demo. Optional.
	Reason string `json:"reason,omitempty"`
}

// ArgumentError reports that a model-supplied invocation could not be decoded
// into the capability's argument type. It is absorbed as a neutral tool
// result so the conversation continues.
type ArgumentError struct {
	Capability string // wire-level name as the model sent it
	Err        error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments for capability %q: %v", e.Capability, e.Err)
}

func (e *ArgumentError) Unwrap() error { return e.Err }

// Invocation is a decoded tool request: which capability, the model's call
// reference, and exactly one populated argument struct matching Kind.
type Invocation struct {
	Kind   Kind
	Ref    string // model-assigned call id, echoed back in the tool result
	Search *SearchArgs
	Book   *BookDemoArgs
}

// Decode converts a raw model tool request into a typed Invocation.
// Unknown capability names and arguments that do not fit the declared
// parameter types return an *ArgumentError.
func Decode(req *ai.ToolRequest) (Invocation, error) {
	inv := Invocation{Ref: req.Ref}

	kind := KindFromName(req.Name)
	if kind == KindUnknown {
		return inv, &ArgumentError{
			Capability: req.Name,
			Err:        fmt.Errorf("not a registered capability"),
		}
	}
	inv.Kind = kind

	// Tool inputs arrive as decoded JSON (map[string]any). A round-trip
	// through encoding/json is the typed boundary.
	raw, err := json.Marshal(req.Input)
	if err != nil {
		return inv, &ArgumentError{Capability: req.Name, Err: err}
	}

	switch kind {
	case KindSearchKnowledgeBase:
		var args SearchArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return inv, &ArgumentError{Capability: req.Name, Err: err}
		}
		inv.Search = &args
	case KindBookDemo:
		var args BookDemoArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return inv, &ArgumentError{Capability: req.Name, Err: err}
		}
		inv.Book = &args
	}

	return inv, nil
}
