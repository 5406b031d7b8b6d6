package cli

import (
	"context"
)

// LoginView collects credentials and establishes a session
func (a *App) LoginView(ctx context.Context) {
	email, err := a.promptRequired("Email")
	if err != nil {
		return
	}
	password, err := a.promptPassword("Password")
	if err != nil {
		return
	}

	if err := a.session.Login(ctx, email, password); err != nil {
		a.println("Login failed:", err.Error())
		return
	}
	a.printf("Welcome back, %s.\n", a.session.User().Name)
}

// SignupView registers a new account and establishes a session
func (a *App) SignupView(ctx context.Context) {
	name, err := a.promptRequired("Name")
	if err != nil {
		return
	}
	email, err := a.promptRequired("Email")
	if err != nil {
		return
	}
	password, err := a.promptPassword("Password (min 6 characters)")
	if err != nil {
		return
	}

	if err := a.session.Signup(ctx, email, password, name); err != nil {
		a.println("Signup failed:", err.Error())
		return
	}
	a.printf("Account created. Welcome, %s.\n", a.session.User().Name)
}
