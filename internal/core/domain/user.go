package domain

// Role is a closed two-value enumeration. USER/ADMIN are the only legal
// values; anything else is rejected by ValidateRole.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// CanManageCatalog reports whether the role may mutate the sweet catalog
// (create/update/delete/restock).
func (r Role) CanManageCatalog() bool {
	return r == RoleAdmin
}

// User models an authenticated actor. Password always holds a bcrypt hash,
// never the original secret. ID is zero until the store assigns one.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	EmailID  string `json:"emailId"`
	Password string `json:"-"`
	Role     Role   `json:"role"`
}

// NewUser validates every attribute and returns a user ready to persist.
// passwordHash must already be hashed; hashing is the caller's concern so the
// entity never sees a plaintext secret.
func NewUser(username, emailID, passwordHash string, role Role) (*User, error) {
	name, err := ValidateUsername(username)
	if err != nil {
		return nil, err
	}
	email, err := ValidateEmail(emailID)
	if err != nil {
		return nil, err
	}
	if err := ValidateRole(role); err != nil {
		return nil, err
	}
	return &User{
		Username: name,
		EmailID:  email,
		Password: passwordHash,
		Role:     role,
	}, nil
}
