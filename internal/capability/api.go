package capability

// chatRequest is the request body for the OpenAI-compatible
// chat completions endpoint.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

// chatMessage is one message in a chat completion request or response.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the chat completions response the client
// consumes.
type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// chatChoice is one completion candidate.
type chatChoice struct {
	Message chatMessage `json:"message"`
}

// apiError is the error envelope returned by OpenAI-compatible backends.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}
