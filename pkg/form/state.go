package form

// Values maps field names to their current string values.
type Values map[string]string

// Clone returns a copy of the values map.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = value
	}
	return out
}

// state tracks field values and per-field error messages. Errors are stored
// only for fields that currently hold at least one message.
type state struct {
	values Values
	errors map[string][]string
}

func newState(values Values) *state {
	return &state{
		values: values.Clone(),
		errors: make(map[string][]string),
	}
}

func (s *state) setErrors(name string, messages []string) {
	if len(messages) == 0 {
		delete(s.errors, name)
		return
	}
	s.errors[name] = append([]string(nil), messages...)
}

func (s *state) clearErrors(name string) {
	delete(s.errors, name)
}

func (s *state) valid() bool {
	for _, messages := range s.errors {
		if len(messages) > 0 {
			return false
		}
	}
	return true
}

func (s *state) cloneErrors() map[string][]string {
	if len(s.errors) == 0 {
		return nil
	}
	out := make(map[string][]string, len(s.errors))
	for name, messages := range s.errors {
		out[name] = append([]string(nil), messages...)
	}
	return out
}
