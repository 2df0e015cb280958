package jsonx

// Status says where an Outcome value came from
type Status int

const (
	// Success means the value was decoded from the completion
	Success Status = iota
	// PartialDefault means the call or the parse failed and Value is the documented default
	PartialDefault
)

func (s Status) String() string {
	if s == Success {
		return "success"
	}
	return "partial_default"
}

// Outcome is the result of one extraction call
type Outcome[T any] struct {
	Value  T
	Status Status
	Err    error
}

func (o Outcome[T]) OK() bool { return o.Status == Success }

// Decode extracts a T from text on top of def, so keys the completion left out keep
// their default. On failure it returns def with the error that forced it.
func Decode[T any](text string, def T) Outcome[T] {
	v := def
	if err := ExtractInto(text, &v); err != nil {
		return Default(def, err)
	}
	return Outcome[T]{Value: v, Status: Success}
}

// Default wraps a fallback value
func Default[T any](def T, err error) Outcome[T] {
	return Outcome[T]{Value: def, Status: PartialDefault, Err: err}
}
