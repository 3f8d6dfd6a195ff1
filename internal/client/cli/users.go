package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/userdir/internal/client/validation"
)

// List prints every record in canonical order.
func (a *App) List(ctx context.Context) error {
	renderUsers(a.out, a.users.Users)
	return nil
}

// Add walks through the new-user form. Login, password and role are
// re-prompted until valid; the whole form restarts if the summary is not
// confirmed.
func (a *App) Add(ctx context.Context) error {
	for {
		surname, err := getSimpleText(a.reader, "Surname", a.out)
		if err != nil {
			return err
		}
		name, err := getSimpleText(a.reader, "Name", a.out)
		if err != nil {
			return err
		}
		login, err := a.promptValid("Login", func(v string) error {
			if err := validation.ValidateLogin(v); err != nil {
				return err
			}
			return validation.EnsureUniqueLogin(v, a.users, nil)
		})
		if err != nil {
			return err
		}
		password, err := a.promptValid(fmt.Sprintf("Password (at least %d characters)", validation.MinPasswordLength),
			validation.ValidatePassword)
		if err != nil {
			return err
		}
		role, err := a.promptValid("Role (0 = standard user, 1 = administrator)", validation.ValidateRole)
		if err != nil {
			return err
		}

		r, _ := validation.ParseRole(role)
		a.println("Please check the entered data:")
		a.printf("  Surname:  %s\n  Name:     %s\n  Login:    %s\n  Password: %s\n  Role:     %s\n",
			surname, name, login, password, r)

		ok, err := a.confirm("Is everything correct?")
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		u, err := a.directory.Create(ctx, a.users, validation.Draft{
			Surname: &surname, Name: &name, Login: &login, Password: &password, Role: &role,
		})
		if err != nil {
			return err
		}
		a.printf("User %s added with id %d.\n", u.Login, u.ID)
		renderUsers(a.out, a.users.Users)
		return nil
	}
}

// Delete removes a record. The logged-in user cannot delete themselves.
func (a *App) Delete(ctx context.Context, args []string) error {
	login, err := a.argOrPrompt(args, "Login of the user to delete")
	if err != nil {
		return err
	}
	if login == a.current.Login {
		a.println("You cannot delete the account you are logged in with.")
		return nil
	}

	if err := a.directory.Delete(ctx, a.users, login); err != nil {
		return err
	}
	a.printf("User %s deleted.\n", login)
	return nil
}

// Edit changes the fields of a record. An empty answer keeps the current
// value.
func (a *App) Edit(ctx context.Context, args []string) error {
	login, err := a.argOrPrompt(args, "Login of the user to edit")
	if err != nil {
		return err
	}
	u, err := a.directory.Find(a.users, login)
	if err != nil {
		return err
	}

	a.println("Enter new values (leave empty to keep the current one):")
	var d validation.Draft

	if d.Surname, err = a.promptOptional(fmt.Sprintf("Surname (%s)", u.Surname), nil); err != nil {
		return err
	}
	if d.Name, err = a.promptOptional(fmt.Sprintf("Name (%s)", u.Name), nil); err != nil {
		return err
	}
	if d.Login, err = a.promptOptional(fmt.Sprintf("Login (%s)", u.Login), func(v string) error {
		return validation.EnsureUniqueLogin(v, a.users, u)
	}); err != nil {
		return err
	}
	if d.Password, err = a.promptOptional(fmt.Sprintf("Password (at least %d characters, shown as typed)", validation.MinPasswordLength),
		validation.ValidatePassword); err != nil {
		return err
	}
	if d.Role, err = a.promptOptional(fmt.Sprintf("Role (%s; 0 = standard, 1 = administrator)", u.Role),
		validation.ValidateRole); err != nil {
		return err
	}

	if _, err := a.directory.Update(ctx, a.users, login, d); err != nil {
		return err
	}
	a.printf("User %s updated.\n", login)
	return nil
}

// Toggle switches a record between active and inactive. The logged-in user
// cannot disable themselves.
func (a *App) Toggle(ctx context.Context, args []string) error {
	login, err := a.argOrPrompt(args, "Login of the user to enable/disable")
	if err != nil {
		return err
	}
	if login == a.current.Login {
		a.println("You cannot disable the account you are logged in with.")
		return nil
	}

	u, err := a.directory.ToggleStatus(ctx, a.users, login)
	if err != nil {
		return err
	}
	a.printf("User %s is now %s.\n", u.Login, u.Status)
	return nil
}

// promptOptional returns nil for an empty answer; other answers must pass
// check (when given) or are asked again.
func (a *App) promptOptional(prompt string, check func(string) error) (*string, error) {
	v, err := a.promptValid(prompt, func(v string) error {
		if v == "" || check == nil {
			return nil
		}
		return check(v)
	})
	if err != nil || v == "" {
		return nil, err
	}
	return &v, nil
}
