package user

// CreateUserDTO carries already-parsed values from the CLI boundary.
type CreateUserDTO struct {
	Name     string
	Email    string
	Password string
	RoleName string
}

// UpdateUserDTO has partial-update semantics: a blank field keeps the
// prior value.
type UpdateUserDTO struct {
	Name     string
	Email    string
	Password string
}
