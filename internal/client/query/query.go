// Package query implements sorting, filtering and substring search over a
// user collection. Filters and search return new slices and never touch the
// collection; SortBy reorders the collection itself.
package query

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/userdir/internal/client/models"
)

// Field is a sortable text field.
type Field string

const (
	FieldSurname Field = "surname"
	FieldName    Field = "name"
	FieldLogin   Field = "login"
)

// Fields lists the sortable fields in menu order.
var Fields = []Field{FieldSurname, FieldName, FieldLogin}

// ParseField maps a field name to a Field.
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

func (f Field) value(u *models.User) string {
	switch f {
	case FieldSurname:
		return u.Surname
	case FieldName:
		return u.Name
	default:
		return u.Login
	}
}

// SortBy reorders c by field using byte-wise comparison. The sort is stable
// in both directions: equal keys keep their current relative order.
func SortBy(c *models.Collection, field Field, ascending bool) {
	slices.SortStableFunc(c.Users, func(a, b *models.User) int {
		if ascending {
			return cmp.Compare(field.value(a), field.value(b))
		}
		return cmp.Compare(field.value(b), field.value(a))
	})
}

// FilterByStatus returns the users whose status equals status.
func FilterByStatus(c *models.Collection, status models.Status) []*models.User {
	return filter(c, func(u *models.User) bool { return u.Status == status })
}

// FilterByRole returns the users whose role equals role.
func FilterByRole(c *models.Collection, role models.Role) []*models.User {
	return filter(c, func(u *models.User) bool { return u.Role == role })
}

// Search returns every user for which q is a case-sensitive substring of
// the id, surname, name, login, password, role label or status label. The
// empty query matches everything.
func Search(c *models.Collection, q string) []*models.User {
	return filter(c, func(u *models.User) bool {
		for _, v := range searchable(u) {
			if strings.Contains(v, q) {
				return true
			}
		}
		return false
	})
}

func searchable(u *models.User) []string {
	return []string{
		u.IDText(),
		u.Surname,
		u.Name,
		u.Login,
		u.Password,
		u.Role.String(),
		u.Status.String(),
	}
}

func filter(c *models.Collection, keep func(*models.User) bool) []*models.User {
	out := make([]*models.User, 0, len(c.Users))
	for _, u := range c.Users {
		if keep(u) {
			out = append(out, u)
		}
	}
	return out
}
