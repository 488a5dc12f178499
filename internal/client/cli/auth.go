package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/bookwarm/internal/common"
)

// getSimpleText, getMultiline and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getMultiline = GetMultiline
var getPassword = GetPassword

// Register prompts the user for a username, email and password and attempts
// to create a new account.
//
// On success the server signs the user in right away, so the guard moves the
// session into the main area. The password byte slice is securely wiped
// before returning. Any I/O or service error is returned unchanged.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.store.Register(ctx, username, email, string(password)); err != nil {
		log.Printf("Registration unsuccessfull: %s", err.Error())
		return err
	}

	log.Printf("Registration successfull")
	return nil
}

// Login prompts the user for credentials and tries to authenticate.
//
// Failures are reported to the user and do not return an error: a wrong
// password is a normal outcome of the prompt, not a program fault. On success
// the session is persisted and the guard redirects to the main area.
//
// The password is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.store.Login(ctx, email, string(password))
	if !res.Success {
		log.Printf("Login unsuccessfull: %s", res.Error)
		return nil
	}

	log.Printf("Login successfull")
	return nil
}

// Logout signs the user out; the guard sends the session back to the auth area.
func (a *App) Logout(ctx context.Context) error {
	a.store.Logout(ctx)
	log.Printf("Logged out")
	return nil
}

// Whoami shows the signed-in user.
func (a *App) Whoami(ctx context.Context) error {
	snap := a.store.Snapshot()
	if !snap.Authenticated() {
		fmt.Println("Not signed in")
		return nil
	}
	fmt.Printf("%s <%s>\n", snap.User.Username, snap.User.Email)
	return nil
}
