package validate

import (
	"github.com/Abdallah-SE/ecommerce-api/model"
)

const (
	maxNameLength     = 100
	minPasswordLength = 6
)

// StoreAdmin validates input for creating an admin: name and email are
// required, the password must meet the minimum length. Returns an Errors
// value when any rule is violated.
func StoreAdmin(in model.AdminInput) error {
	errs := Errors{}

	required(errs, "name", in.Name)
	maxLen(errs, "name", in.Name, maxNameLength)

	required(errs, "email", in.Email)
	email(errs, "email", in.Email)

	required(errs, "password", in.Password)
	minLen(errs, "password", in.Password, minPasswordLength)

	return errs.OrNil()
}

// UpdateAdmin validates input for updating an admin. All fields are optional;
// supplied fields must still satisfy their rules.
func UpdateAdmin(in model.AdminInput) error {
	errs := Errors{}

	maxLen(errs, "name", in.Name, maxNameLength)
	email(errs, "email", in.Email)
	minLen(errs, "password", in.Password, minPasswordLength)

	return errs.OrNil()
}

// Credentials validates a login request: both fields are required.
func Credentials(emailAddr, password string) error {
	errs := Errors{}

	required(errs, "email", emailAddr)
	required(errs, "password", password)

	return errs.OrNil()
}
