package domain

// Account is a stored remote identity. Its presence is what switches the
// remote mirror on; sign-in flows themselves live outside this app.
type Account struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}
