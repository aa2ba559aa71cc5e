package contagem

// LoginRequest is the credential document posted to the login endpoint.
type LoginRequest struct {
	UserID   string `json:"userID"`
	Password string `json:"password"`
}

// TokenResponse is the document returned by the login endpoint.
type TokenResponse struct {
	Authenticated bool   `json:"authenticated"`
	Created       string `json:"created,omitempty"`
	Expiration    string `json:"expiration,omitempty"`
	AccessToken   string `json:"accessToken,omitempty"`
	Message       string `json:"message,omitempty"`
}

// CounterResult is the document returned by the counter endpoint.
type CounterResult struct {
	CurrentValue int    `json:"valorAtual"`
	Local        string `json:"local,omitempty"`
	Kernel       string `json:"kernel,omitempty"`
	Framework    string `json:"framework,omitempty"`
	Message      string `json:"mensagem,omitempty"`
}
