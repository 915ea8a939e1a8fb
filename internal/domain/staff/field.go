package staff

// Field is a raw, optionally present input value as it arrived from a form
// or JSON body.
type Field struct {
	Value string
	Set   bool
}

func Value(s string) Field {
	return Field{Value: s, Set: true}
}

func Absent() Field {
	return Field{}
}
