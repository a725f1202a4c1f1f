package domain

// Identity is the verified subject and role extracted from a token or a
// successful credential check. Immutable once constructed.
type Identity struct {
	Subject string
	Role    Role
}
