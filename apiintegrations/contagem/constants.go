package contagem

// Endpoint constants represent the URL suffixes exposed by the counting API.
const (
	APIName         = "api contagem" // APIName: represents the name of the API.
	LoginEndpoint   = "/login"       // LoginEndpoint: exchanges user credentials for a JWT access token.
	CounterEndpoint = "/contador"    // CounterEndpoint: protected endpoint returning the current counter value.
)
