package feature

// Parser converts a descriptor into a Record. A failed parse returns an
// error satisfying IsParseError.
type Parser interface {
	Parse(descriptor string) (Record, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(descriptor string) (Record, error)

func (f ParserFunc) Parse(descriptor string) (Record, error) {
	return f(descriptor)
}
