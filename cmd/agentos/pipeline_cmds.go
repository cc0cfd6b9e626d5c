package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/hupe1980/agentos-go/pipeline"
)

func (a *app) cmdPipeline(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: agentos pipeline <template-create|templates|start|next|execute-all|show>")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "template-create":
		flags := pflag.NewFlagSet("pipeline template-create", pflag.ContinueOnError)
		workspaceFlag := flags.String("workspace", "", "workspace id")
		name := flags.String("name", "", "template name")
		description := flags.String("description", "", "template description")
		definition := flags.String("definition", "", "definition JSON with a steps list (- for stdin)")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		if *name == "" || *definition == "" {
			return fmt.Errorf("--name and --definition are required")
		}
		wsID, err := a.workspaceOrDefault(*workspaceFlag)
		if err != nil {
			return err
		}
		raw := []byte(*definition)
		if *definition == "-" {
			raw, err = readFileOrStdin("-")
			if err != nil {
				return err
			}
		}
		var def map[string]any
		if err := json.Unmarshal(raw, &def); err != nil {
			return fmt.Errorf("parse --definition: %w", err)
		}
		tpl, err := a.client.Pipelines.CreateTemplate(ctx, wsID, pipeline.TemplateInput{
			Name:           *name,
			Description:    *description,
			DefinitionJSON: def,
		})
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\n", tpl.ID, tpl.Name)
		return nil

	case "templates":
		flags := pflag.NewFlagSet("pipeline templates", pflag.ContinueOnError)
		workspaceFlag := flags.String("workspace", "", "workspace id")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		wsID, err := a.workspaceOrDefault(*workspaceFlag)
		if err != nil {
			return err
		}
		all, err := a.client.Pipelines.ListTemplates(ctx, wsID)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
		for _, t := range all {
			fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Name, t.Description)
		}
		return w.Flush()

	case "start":
		flags := pflag.NewFlagSet("pipeline start", pflag.ContinueOnError)
		workspaceFlag := flags.String("workspace", "", "workspace id")
		template := flags.String("template", "", "template id")
		inputJSON := flags.String("input", "{}", "pipeline input payload as JSON")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		if *template == "" {
			return fmt.Errorf("--template is required")
		}
		wsID, err := a.workspaceOrDefault(*workspaceFlag)
		if err != nil {
			return err
		}
		var payload map[string]any
		if err := json.Unmarshal([]byte(*inputJSON), &payload); err != nil {
			return fmt.Errorf("parse --input: %w", err)
		}
		r, err := a.client.Pipelines.Start(ctx, wsID, pipeline.StartInput{
			TemplateID:   *template,
			InputPayload: payload,
		})
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\t%d steps\n", r.ID, r.Status, len(r.Steps))
		return nil

	case "next":
		if len(rest) != 1 {
			return fmt.Errorf("usage: agentos pipeline next <pipeline-run-id>")
		}
		res, err := a.client.Pipelines.Next(ctx, rest[0])
		if err != nil {
			return err
		}
		if res.CreatedRunID != nil {
			fmt.Printf("step %d executed, created run %s\n", res.PipelineRun.CurrentStepIndex, *res.CreatedRunID)
		} else {
			fmt.Printf("pipeline %s, no step executed\n", res.PipelineRun.Status)
		}
		return nil

	case "execute-all":
		if len(rest) != 1 {
			return fmt.Errorf("usage: agentos pipeline execute-all <pipeline-run-id>")
		}
		res, err := a.client.Pipelines.ExecuteAll(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Printf("pipeline %s, created %d runs\n", res.PipelineRun.Status, len(res.CreatedRunIDs))
		for _, id := range res.CreatedRunIDs {
			fmt.Println(id)
		}
		return nil

	case "show":
		if len(rest) != 1 {
			return fmt.Errorf("usage: agentos pipeline show <pipeline-run-id>")
		}
		r, err := a.client.Pipelines.Get(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\tstep %d/%d\n", r.ID, r.Status, r.CurrentStepIndex, len(r.Steps))
		w := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
		fmt.Fprintln(w, "IDX\tNAME\tAGENT\tSTATUS\tRUN")
		for _, s := range r.Steps {
			runID := "-"
			if s.RunID != nil {
				runID = *s.RunID
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", s.StepIndex, s.StepName, s.AgentID, s.Status, runID)
		}
		return w.Flush()

	default:
		return fmt.Errorf("unknown pipeline subcommand %q", sub)
	}
}
