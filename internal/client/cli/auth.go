package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/recipebox/internal/client/api"
	"github.com/dmitrijs2005/recipebox/internal/common"
)

// getSimpleText and getPassword point to the interactive input helpers and
// can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for the account fields and creates the account. The new
// account starts unconfirmed, so login fails until an admin confirms it.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	firstName, err := getSimpleText(a.reader, "Enter first name", a.out)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Enter last name", a.out)
	if err != nil {
		return err
	}

	msg, err := a.api.Signup(ctx, api.Signup{
		Email:     email,
		Password:  string(password),
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		fmt.Fprintf(a.out, "Signup unsuccessful: %v\n", err)
		return err
	}

	fmt.Fprintln(a.out, msg)
	return nil
}

// Login prompts for credentials and keeps the returned token for later
// commands.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		fmt.Fprintf(a.out, "Login unsuccessful: %v\n", err)
		return err
	}

	a.token = token
	a.userName = email
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Logout forgets the token. The server keeps no session, so nothing is sent.
func (a *App) Logout(_ context.Context) error {
	a.token = ""
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
