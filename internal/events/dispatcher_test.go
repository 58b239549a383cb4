package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherRoutesByType(t *testing.T) {
	d := NewInMemoryDispatcher()
	ctx := context.Background()

	var logins, logouts int
	d.Subscribe(EventEmployeeLoggedIn, func(context.Context, Event) error {
		logins++
		return nil
	})
	d.Subscribe(EventEmployeeLoggedOut, func(context.Context, Event) error {
		logouts++
		return nil
	})

	d.Publish(ctx, Event{Type: EventEmployeeLoggedIn, SubjectID: 1})
	d.Publish(ctx, Event{Type: EventEmployeeLoggedIn, SubjectID: 2})
	d.Publish(ctx, Event{Type: EventLoginFailed})

	if logins != 2 {
		t.Errorf("login handler calls = %d, want 2", logins)
	}
	if logouts != 0 {
		t.Errorf("logout handler calls = %d, want 0", logouts)
	}
}

func TestDispatcherSwallowsHandlerErrors(t *testing.T) {
	d := NewInMemoryDispatcher()
	ctx := context.Background()

	var second bool
	d.Subscribe(EventLoginFailed, func(context.Context, Event) error {
		return errors.New("sink down")
	})
	d.Subscribe(EventLoginFailed, func(context.Context, Event) error {
		second = true
		return nil
	})

	// Publish never fails; a broken sink cannot block the others.
	d.Publish(ctx, Event{Type: EventLoginFailed})
	if !second {
		t.Error("handler after a failing one did not run")
	}
}
