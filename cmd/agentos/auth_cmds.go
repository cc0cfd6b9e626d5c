package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"
)

func cmdConfigure(args []string) error {
	flags := pflag.NewFlagSet("configure", pflag.ContinueOnError)
	baseURL := flags.String("base-url", "", "API base URL, e.g. http://localhost:8000")
	workspace := flags.String("workspace", "", "default workspace id")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if *workspace != "" {
		cfg.DefaultWorkspace = *workspace
	}
	if cfg.BaseURL == "" {
		return fmt.Errorf("--base-url is required on first configure")
	}
	if err := saveConfig(cfg); err != nil {
		return err
	}
	path, _ := configPath()
	fmt.Fprintf(os.Stderr, "Configuration saved to %s\n", path)
	return nil
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("login", pflag.ContinueOnError)
	email := flags.String("email", "", "account email")
	password := flags.String("password", "", "account password (omit to prompt)")
	register := flags.Bool("register", false, "create the account first")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return fmt.Errorf("--email is required")
	}

	pw := *password
	if pw == "" {
		read, err := promptPassword()
		if err != nil {
			return err
		}
		pw = read
	}

	if *register {
		user, err := a.client.Auth.Register(ctx, *email, pw)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Registered %s\n", user.Email)
	}

	user, err := a.client.Auth.Login(ctx, *email, pw)
	if err != nil {
		return err
	}
	if err := a.saveSession(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Logged in as %s\n", user.Email)
	return nil
}

func (a *app) cmdLogout(ctx context.Context) error {
	// Best effort server side; the local session is dropped regardless.
	if err := a.client.Auth.Logout(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: server logout failed: %v\n", err)
	}
	a.jar.Clear()
	if err := a.saveSession(); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "Logged out")
	return nil
}

func (a *app) cmdMe(ctx context.Context) error {
	user, err := a.client.Auth.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s\t%s\n", user.ID, user.Email)
	return nil
}

// promptPassword reads a password from the terminal with echo disabled.
func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no terminal for password prompt (use --password)")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(raw), nil
}
