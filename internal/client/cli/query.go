package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/client/query"
	"github.com/dmitrijs2005/userdir/internal/client/validation"
)

// Sort reorders the loaded records and prints them.
//
//	sort <surname|name|login> [asc|desc]
func (a *App) Sort(ctx context.Context, args []string) error {
	fieldArg, err := a.argOrPrompt(args, fmt.Sprintf("Sort by (%s)", fieldNames()))
	if err != nil {
		return err
	}
	field, err := query.ParseField(fieldArg)
	if err != nil {
		return err
	}

	ascending := true
	if len(args) > 1 {
		switch strings.ToLower(args[1]) {
		case "asc":
		case "desc":
			ascending = false
		default:
			return fmt.Errorf("unknown direction %q, use asc or desc", args[1])
		}
	}

	a.directory.Sort(a.users, field, ascending)
	renderUsers(a.out, a.users.Users)
	return nil
}

// Filter prints the records with the given status or role.
//
//	filter status <active|inactive>
//	filter role <0|1>
func (a *App) Filter(ctx context.Context, args []string) error {
	kind, err := a.argOrPrompt(args, "Filter by (status, role)")
	if err != nil {
		return err
	}

	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}

	var list []*models.User
	switch strings.ToLower(kind) {
	case "status":
		v, err := a.argOrPrompt(rest, "Status (active, inactive)")
		if err != nil {
			return err
		}
		st, err := validation.ParseStatus(v)
		if err != nil {
			return err
		}
		list = a.directory.FilterByStatus(a.users, st)
	case "role":
		v, err := a.argOrPrompt(rest, "Role (0 = standard, 1 = administrator)")
		if err != nil {
			return err
		}
		r, err := validation.ParseRole(v)
		if err != nil {
			return err
		}
		list = a.directory.FilterByRole(a.users, r)
	default:
		return fmt.Errorf("unknown filter %q, use status or role", kind)
	}

	renderUsers(a.out, list)
	return nil
}

// Search prints the records containing the text in any field. Everything
// after the command word is the query.
func (a *App) Search(ctx context.Context, args []string) error {
	q := strings.Join(args, " ")
	if q == "" {
		var err error
		if q, err = getSimpleText(a.reader, "Search for", a.out); err != nil {
			return err
		}
	}

	renderUsers(a.out, a.directory.Search(a.users, q))
	return nil
}

func fieldNames() string {
	names := make([]string, len(query.Fields))
	for i, f := range query.Fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
