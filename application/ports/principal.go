package ports

// Principal is the authenticated caller of an operation.
// A nil *Principal means the request carried no valid credentials.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
