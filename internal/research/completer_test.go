package research

import "context"

// fakeCompleter routes completions through a test-provided function keyed on
// the persona instruction and user message.
type fakeCompleter struct {
	fn func(persona, user string) (string, error)
}

func (f fakeCompleter) Complete(_ context.Context, persona, user string) (string, error) {
	return f.fn(persona, user)
}

// fixedCompleter always returns the same text.
func fixedCompleter(text string) fakeCompleter {
	return fakeCompleter{fn: func(string, string) (string, error) {
		return text, nil
	}}
}

// failingCompleter always returns the same error.
func failingCompleter(err error) fakeCompleter {
	return fakeCompleter{fn: func(string, string) (string, error) {
		return "", err
	}}
}
