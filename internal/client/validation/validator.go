// Package validation holds the checks applied to user data before the
// collection is mutated. All functions are pure; callers mutate and persist
// only after a nil result.
package validation

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/common"
	"github.com/hashicorp/go-multierror"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// Field names reported in FieldError.
const (
	FieldLogin    = "login"
	FieldPassword = "password"
	FieldRole     = "role"
	FieldStatus   = "status"
)

// FieldError names the offending field of a rejected value.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Draft carries user-supplied values for a create or an edit. A nil field is
// not being set and is not checked.
type Draft struct {
	Surname  *string
	Name     *string
	Login    *string
	Password *string
	// Role is the raw role token, "0" or "1".
	Role *string
}

// ValidateLogin rejects an empty login.
func ValidateLogin(login string) error {
	if login == "" {
		return &FieldError{Field: FieldLogin, Err: common.ErrEmptyLogin}
	}
	return nil
}

// EnsureUniqueLogin fails if a record other than excluding already uses login.
func EnsureUniqueLogin(login string, c *models.Collection, excluding *models.User) error {
	for _, u := range c.Users {
		if u == excluding {
			continue
		}
		if u.Login == login {
			return &FieldError{Field: FieldLogin, Err: common.ErrDuplicateLogin}
		}
	}
	return nil
}

// ValidatePassword rejects passwords shorter than MinPasswordLength bytes.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return &FieldError{Field: FieldPassword, Err: common.ErrWeakPassword}
	}
	return nil
}

// ParseRole accepts "0" (standard) or "1" (admin).
func ParseRole(token string) (models.Role, error) {
	switch token {
	case "0":
		return models.RoleStandard, nil
	case "1":
		return models.RoleAdmin, nil
	}
	return models.RoleStandard, &FieldError{Field: FieldRole, Err: common.ErrInvalidRole}
}

// ValidateRole is ParseRole without the result.
func ValidateRole(token string) error {
	_, err := ParseRole(token)
	return err
}

// ParseStatus accepts "active" or "inactive".
func ParseStatus(token string) (models.Status, error) {
	switch token {
	case models.StatusActive.String():
		return models.StatusActive, nil
	case models.StatusInactive.String():
		return models.StatusInactive, nil
	}
	return models.StatusActive, &FieldError{Field: FieldStatus, Err: common.ErrInvalidStatus}
}

// ValidateDraft runs every check that applies to the set fields of d and
// returns all failures at once, or nil. The result matches the individual
// sentinels with errors.Is.
func ValidateDraft(d Draft, c *models.Collection, excluding *models.User) error {
	var result *multierror.Error

	if d.Login != nil {
		if err := ValidateLogin(*d.Login); err != nil {
			result = multierror.Append(result, err)
		} else if err := EnsureUniqueLogin(*d.Login, c, excluding); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if d.Password != nil {
		if err := ValidatePassword(*d.Password); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if d.Role != nil {
		if err := ValidateRole(*d.Role); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

// Fields lists the names of the fields rejected in err, in order.
func Fields(err error) []string {
	var fields []string

	var merr *multierror.Error
	if errors.As(err, &merr) {
		for _, e := range merr.Errors {
			fields = append(fields, Fields(e)...)
		}
		return fields
	}

	var ferr *FieldError
	if errors.As(err, &ferr) {
		fields = append(fields, ferr.Field)
	}
	return fields
}
