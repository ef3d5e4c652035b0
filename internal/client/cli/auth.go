package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shareling/internal/common"
)

func (a *App) register(ctx context.Context) {
	userName, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	defer common.WipeByteArray(password)

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	if err := a.api.RegisterAccount(opCtx, userName, string(password)); err != nil {
		fmt.Fprintf(a.out, "Registration failed: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Registered. You can now log in.")
}

func (a *App) login(ctx context.Context) {
	userName, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	defer common.WipeByteArray(password)

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	if _, err := a.api.Login(opCtx, userName, string(password)); err != nil {
		fmt.Fprintf(a.out, "Login failed: %v\n", err)
		return
	}
	a.userName = userName

	// Initial list load for the dashboard-style commands.
	a.refresh(ctx)
}
