package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/hupe1980/agentos-go/artifact"
	"github.com/hupe1980/agentos-go/render"
)

func (a *app) cmdArtifact(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: agentos artifact <list|show|export|status|version>")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list":
		if len(rest) != 1 {
			return fmt.Errorf("usage: agentos artifact list <run-id>")
		}
		all, err := a.client.Artifacts.List(ctx, rest[0])
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tKEY\tVERSION\tSTATUS\tTITLE")
		for _, art := range all {
			fmt.Fprintf(w, "%s\t%s\tv%d\t%s\t%s\n", art.ID, art.LogicalKey, art.Version, art.Status, art.Title)
		}
		return w.Flush()

	case "show":
		if len(rest) != 1 {
			return fmt.Errorf("usage: agentos artifact show <artifact-id>")
		}
		art, err := a.client.Artifacts.Get(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Println(art.ContentMD)
		return nil

	case "export":
		return a.cmdArtifactExport(ctx, rest)

	case "status":
		flags := pflag.NewFlagSet("artifact status", pflag.ContinueOnError)
		status := flags.String("set", "", "new status: draft, in_review or final")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		if flags.NArg() != 1 || *status == "" {
			return fmt.Errorf("usage: agentos artifact status --set <status> <artifact-id>")
		}
		art, err := a.client.Artifacts.SetStatus(ctx, flags.Arg(0), *status)
		if err != nil {
			return err
		}
		fmt.Printf("%s\tv%d\t%s\n", art.ID, art.Version, art.Status)
		return nil

	case "version":
		flags := pflag.NewFlagSet("artifact version", pflag.ContinueOnError)
		file := flags.String("file", "", "markdown file with the new content (- for stdin)")
		title := flags.String("title", "", "title override (defaults to the previous title)")
		status := flags.String("status", artifact.StatusDraft, "status of the new version")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		if flags.NArg() != 1 || *file == "" {
			return fmt.Errorf("usage: agentos artifact version --file <path> <artifact-id>")
		}
		content, err := readFileOrStdin(*file)
		if err != nil {
			return err
		}
		in := artifact.VersionInput{ContentMD: string(content), Status: *status}
		if *title != "" {
			in.Title = title
		}
		art, err := a.client.Artifacts.NewVersion(ctx, flags.Arg(0), in)
		if err != nil {
			return err
		}
		fmt.Printf("%s\tv%d\t%s\n", art.ID, art.Version, art.Status)
		return nil

	default:
		return fmt.Errorf("unknown artifact subcommand %q", sub)
	}
}

func (a *app) cmdArtifactExport(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("artifact export", pflag.ContinueOnError)
	format := flags.String("format", "pdf", "pdf or html")
	out := flags.String("out", "", "output file (defaults to a name derived from the artifact)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return fmt.Errorf("usage: agentos artifact export [--format pdf|html] <artifact-id>")
	}
	artifactID := flags.Arg(0)

	switch *format {
	case "pdf":
		exp, err := a.client.Artifacts.ExportPDF(ctx, artifactID)
		if err != nil {
			return err
		}
		path := *out
		if path == "" {
			path = exp.Filename
		}
		if path == "" {
			path = artifactID + ".pdf"
		}
		if err := os.WriteFile(path, exp.Body, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", path, len(exp.Body))
		return nil

	case "html":
		// HTML export renders locally from the stored markdown.
		art, err := a.client.Artifacts.Get(ctx, artifactID)
		if err != nil {
			return err
		}
		page, err := render.Document(art.Title, art.ContentMD)
		if err != nil {
			return err
		}
		path := *out
		if path == "" {
			path = artifactID + ".html"
		}
		if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
		return nil

	default:
		return fmt.Errorf("unknown export format %q", *format)
	}
}

func readFileOrStdin(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
