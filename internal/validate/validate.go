package validate

import "fmt"

// Error describes a single failed field constraint.
type Error struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Field is a declarative constraint on one request field. A nil Value marks
// the field as absent; absent optional fields skip the remaining rules.
type Field struct {
	Name      string
	Value     *string
	Required  bool
	MinLength int
}

// Fields applies each field's rules in order and collects every violation.
func Fields(fields ...Field) []Error {
	var errs []Error
	for _, f := range fields {
		if f.Value == nil || *f.Value == "" {
			if f.Required {
				errs = append(errs, Error{Field: f.Name, Message: fmt.Sprintf("%s is required", f.Name)})
			}
			continue
		}
		if f.MinLength > 0 && len(*f.Value) < f.MinLength {
			errs = append(errs, Error{
				Field:   f.Name,
				Message: fmt.Sprintf("%s must be at least %d characters", f.Name, f.MinLength),
			})
		}
	}
	return errs
}

// Signup validates the signup payload: username >= 3 chars, password >= 6 chars.
func Signup(username, password string) []Error {
	return Fields(
		Field{Name: "username", Value: &username, Required: true, MinLength: 3},
		Field{Name: "password", Value: &password, Required: true, MinLength: 6},
	)
}

// Login validates the login payload: both fields present and non-empty.
func Login(username, password string) []Error {
	return Fields(
		Field{Name: "username", Value: &username, Required: true, MinLength: 1},
		Field{Name: "password", Value: &password, Required: true, MinLength: 1},
	)
}

// Update validates the sparse update payload: each field optional, same
// length rules as signup when present.
func Update(username, password *string) []Error {
	return Fields(
		Field{Name: "username", Value: username, MinLength: 3},
		Field{Name: "password", Value: password, MinLength: 6},
	)
}
