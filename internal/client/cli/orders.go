package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/userdir/internal/common"
)

var errOrderCancelled = errors.New("order cancelled")

// Order asks for every form field (blank answers are asked again), shows the
// result and submits it on confirmation.
func (a *App) Order(ctx context.Context) error {
	fields := a.orders.Fields()
	values := make(map[string]string, len(fields))

	for _, f := range fields {
		v, err := a.promptValid(strings.ToUpper(f[:1])+f[1:], func(v string) error {
			if strings.TrimSpace(v) == "" {
				return common.ErrEmptyField
			}
			return nil
		})
		if err != nil {
			return err
		}
		values[f] = v
	}

	a.println("Order summary:")
	for _, f := range fields {
		a.printf("  %s: %s\n", f, values[f])
	}
	ok, err := a.confirm("Submit the order?")
	if err != nil {
		return err
	}
	if !ok {
		return errOrderCancelled
	}

	o, err := a.orders.Submit(ctx, a.current, values)
	if err != nil {
		return err
	}
	a.printf("Order %s saved to %s\n", o.ID, o.DocumentRef)
	return nil
}

// Orders lists the orders of the logged-in user.
func (a *App) Orders(ctx context.Context) error {
	list, err := a.orders.List(ctx, a.current.Login)
	if err != nil {
		return err
	}
	renderOrders(a.out, list, a.orders.Fields())
	return nil
}
