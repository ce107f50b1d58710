package types

// Credential is the opaque account record passed to the game
type Credential struct {
	DisplayName string
	UUID        string
	AccessToken string
	// UserType is the session type tag ("mojang", "msa", "legacy")
	UserType string
}
