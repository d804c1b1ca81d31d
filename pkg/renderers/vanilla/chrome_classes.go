package vanilla

// ChromeClass is a typed identifier for the semantic CSS classes the form
// templates emit.
type ChromeClass string

const (
	ClassForm         ChromeClass = "fp-form"
	ClassHeader       ChromeClass = "fp-header"
	ClassNotice       ChromeClass = "fp-notice"
	ClassErrors       ChromeClass = "fp-errors"
	ClassField        ChromeClass = "fp-field"
	ClassFieldInvalid ChromeClass = "fp-field--invalid"
	ClassFieldErrors  ChromeClass = "fp-field__errors"
	ClassActions      ChromeClass = "fp-actions"
)

func chromeClasses() map[string]string {
	return map[string]string{
		"form":         string(ClassForm),
		"header":       string(ClassHeader),
		"notice":       string(ClassNotice),
		"errors":       string(ClassErrors),
		"field":        string(ClassField),
		"fieldInvalid": string(ClassFieldInvalid),
		"fieldErrors":  string(ClassFieldErrors),
		"actions":      string(ClassActions),
	}
}
