package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/hupe1980/agentos-go/internal/schema"
	"github.com/hupe1980/agentos-go/run"
)

func (a *app) cmdRun(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: agentos run <create|list|show|status>")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "create":
		return a.cmdRunCreate(ctx, rest)

	case "list":
		flags := pflag.NewFlagSet("run list", pflag.ContinueOnError)
		workspaceFlag := flags.String("workspace", "", "workspace id")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		wsID, err := a.workspaceOrDefault(*workspaceFlag)
		if err != nil {
			return err
		}
		runs, err := a.client.Runs.List(ctx, wsID)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tAGENT\tSTATUS")
		for _, r := range runs {
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.ID, r.AgentID, r.Status)
		}
		return w.Flush()

	case "show":
		if len(rest) != 1 {
			return fmt.Errorf("usage: agentos run show <run-id>")
		}
		r, err := a.client.Runs.Get(ctx, rest[0])
		if err != nil {
			return err
		}
		return printJSON(r)

	case "status":
		flags := pflag.NewFlagSet("run status", pflag.ContinueOnError)
		status := flags.String("set", "", "new status: created, running, completed or failed")
		summary := flags.String("summary", "", "output summary to record")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		if flags.NArg() != 1 {
			return fmt.Errorf("usage: agentos run status --set <status> <run-id>")
		}
		if *status == "" {
			return fmt.Errorf("--set is required")
		}
		update := run.StatusUpdate{Status: *status}
		if *summary != "" {
			update.OutputSummary = summary
		}
		r, err := a.client.Runs.UpdateStatus(ctx, flags.Arg(0), update)
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\n", r.ID, r.Status)
		return nil

	default:
		return fmt.Errorf("unknown run subcommand %q", sub)
	}
}

func (a *app) cmdRunCreate(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("run create", pflag.ContinueOnError)
	workspaceFlag := flags.String("workspace", "", "workspace id")
	agentID := flags.String("agent", "", "agent definition id")
	inputJSON := flags.String("input", "{}", "input payload as JSON")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *agentID == "" {
		return fmt.Errorf("--agent is required")
	}
	wsID, err := a.workspaceOrDefault(*workspaceFlag)
	if err != nil {
		return err
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(*inputJSON), &payload); err != nil {
		return fmt.Errorf("parse --input: %w", err)
	}

	// Validate against the agent's declared input schema before the
	// request leaves the machine; the backend checks again.
	def, err := a.client.Agents.Get(ctx, *agentID)
	if err != nil {
		return err
	}
	if len(def.InputSchema) > 0 {
		if err := schema.Validate(payload, def.InputSchema); err != nil {
			return err
		}
	}

	r, err := a.client.Runs.Create(ctx, wsID, run.CreateInput{
		AgentID:      *agentID,
		InputPayload: payload,
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s\t%s\n", r.ID, r.Status)
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
