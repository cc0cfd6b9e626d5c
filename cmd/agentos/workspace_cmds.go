package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

func (a *app) cmdWorkspace(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: agentos workspace <list|create|members|invite>")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list":
		all, err := a.client.Workspaces.List(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME")
		for _, ws := range all {
			fmt.Fprintf(w, "%s\t%s\n", ws.ID, ws.Name)
		}
		return w.Flush()

	case "create":
		if len(rest) != 1 {
			return fmt.Errorf("usage: agentos workspace create <name>")
		}
		ws, err := a.client.Workspaces.Create(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\n", ws.ID, ws.Name)
		return nil

	case "members":
		flags := pflag.NewFlagSet("workspace members", pflag.ContinueOnError)
		workspaceFlag := flags.String("workspace", "", "workspace id")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		wsID, err := a.workspaceOrDefault(*workspaceFlag)
		if err != nil {
			return err
		}
		members, err := a.client.Workspaces.ListMembers(ctx, wsID)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
		fmt.Fprintln(w, "USER\tEMAIL\tROLE")
		for _, m := range members {
			fmt.Fprintf(w, "%s\t%s\t%s\n", m.UserID, m.Email, m.Role)
		}
		return w.Flush()

	case "invite":
		flags := pflag.NewFlagSet("workspace invite", pflag.ContinueOnError)
		workspaceFlag := flags.String("workspace", "", "workspace id")
		email := flags.String("email", "", "email of the user to invite")
		role := flags.String("role", "member", "viewer, member or admin")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		if *email == "" {
			return fmt.Errorf("--email is required")
		}
		wsID, err := a.workspaceOrDefault(*workspaceFlag)
		if err != nil {
			return err
		}
		m, err := a.client.Workspaces.InviteMember(ctx, wsID, *email, *role)
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\t%s\n", m.UserID, m.Email, m.Role)
		return nil

	default:
		return fmt.Errorf("unknown workspace subcommand %q", sub)
	}
}

func (a *app) cmdAgents(ctx context.Context) error {
	defs, err := a.client.Agents.List(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tVERSION\tOUTPUT TYPES\tDESCRIPTION")
	for _, d := range defs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.ID, d.Version, strings.Join(d.OutputArtifactTypes, ","), d.Description)
	}
	return w.Flush()
}
