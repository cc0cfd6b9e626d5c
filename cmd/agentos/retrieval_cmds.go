package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/hupe1980/agentos-go/evidence"
	"github.com/hupe1980/agentos-go/retrieval"
)

func (a *app) cmdSource(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: agentos source <list|ensure-docs>")
	}
	sub, rest := args[0], args[1:]

	flags := pflag.NewFlagSet("source "+sub, pflag.ContinueOnError)
	workspaceFlag := flags.String("workspace", "", "workspace id")
	name := flags.String("name", "Docs", "docs source display name")
	if err := flags.Parse(rest); err != nil {
		return err
	}
	wsID, err := a.workspaceOrDefault(*workspaceFlag)
	if err != nil {
		return err
	}

	switch sub {
	case "list":
		sources, err := a.client.Retrieval.ListSources(ctx, wsID)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tTYPE\tNAME")
		for _, s := range sources {
			fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.Type, s.Name)
		}
		return w.Flush()

	case "ensure-docs":
		src, err := a.client.Retrieval.EnsureDocsSource(ctx, wsID, *name)
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\t%s\n", src.ID, src.Type, src.Name)
		return nil

	default:
		return fmt.Errorf("unknown source subcommand %q", sub)
	}
}

func (a *app) cmdDoc(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: agentos doc <ingest|list|embed>")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "ingest":
		flags := pflag.NewFlagSet("doc ingest", pflag.ContinueOnError)
		workspaceFlag := flags.String("workspace", "", "workspace id")
		title := flags.String("title", "", "document title")
		file := flags.String("file", "", "text file to ingest (- for stdin)")
		externalID := flags.String("external-id", "", "upstream identity, e.g. a file path")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		if *title == "" || *file == "" {
			return fmt.Errorf("--title and --file are required")
		}
		wsID, err := a.workspaceOrDefault(*workspaceFlag)
		if err != nil {
			return err
		}
		text, err := readFileOrStdin(*file)
		if err != nil {
			return err
		}
		in := retrieval.IngestInput{Title: *title, Text: string(text)}
		if *externalID != "" {
			in.ExternalID = externalID
		}
		res, err := a.client.Retrieval.IngestText(ctx, wsID, in)
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%d chunks\n", res.Document.ID, res.ChunksCreated)
		return nil

	case "list":
		flags := pflag.NewFlagSet("doc list", pflag.ContinueOnError)
		workspaceFlag := flags.String("workspace", "", "workspace id")
		sourceType := flags.String("source-type", "", "filter by source type")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		wsID, err := a.workspaceOrDefault(*workspaceFlag)
		if err != nil {
			return err
		}
		docs, err := a.client.Retrieval.ListDocuments(ctx, wsID, *sourceType)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tSOURCE")
		for _, d := range docs {
			fmt.Fprintf(w, "%s\t%s\t%s\n", d.ID, d.Title, d.SourceID)
		}
		return w.Flush()

	case "embed":
		flags := pflag.NewFlagSet("doc embed", pflag.ContinueOnError)
		force := flags.Bool("force", false, "re-embed chunks that already have vectors")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		if flags.NArg() != 1 {
			return fmt.Errorf("usage: agentos doc embed [--force] <document-id>")
		}
		res, err := a.client.Retrieval.EmbedDocument(ctx, flags.Arg(0), *force)
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\t%d chunks embedded\n", res.DocumentID, res.Model, res.ChunksEmbedded)
		return nil

	default:
		return fmt.Errorf("unknown doc subcommand %q", sub)
	}
}

func (a *app) cmdRetrieve(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("retrieve", pflag.ContinueOnError)
	workspaceFlag := flags.String("workspace", "", "workspace id")
	k := flags.Int("k", 0, "max hits (server default 8)")
	alpha := flags.Float64("alpha", 0, "vector weight 0..1 (server default 0.65)")
	sourceTypes := flags.StringSlice("source-types", nil, "restrict to source types")
	timeframe := flags.String("timeframe", "", "preset: 7d, 30d or 90d")
	startDate := flags.String("start-date", "", "custom timeframe start, YYYY-MM-DD")
	endDate := flags.String("end-date", "", "custom timeframe end, YYYY-MM-DD")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return fmt.Errorf("usage: agentos retrieve [flags] <query>")
	}
	wsID, err := a.workspaceOrDefault(*workspaceFlag)
	if err != nil {
		return err
	}

	res, err := a.client.Retrieval.Retrieve(ctx, wsID, retrieval.Query{
		Q:               flags.Arg(0),
		K:               *k,
		Alpha:           *alpha,
		SourceTypes:     *sourceTypes,
		TimeframePreset: *timeframe,
		StartDate:       *startDate,
		EndDate:         *endDate,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SCORE\tDOCUMENT\tSNIPPET")
	for _, it := range res.Items {
		fmt.Fprintf(w, "%.3f\t%s\t%s\n", it.ScoreHybrid, it.DocumentTitle, it.Snippet)
	}
	return w.Flush()
}

func (a *app) cmdTrace(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: agentos trace <list|show|items>")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list":
		flags := pflag.NewFlagSet("trace list", pflag.ContinueOnError)
		workspaceFlag := flags.String("workspace", "", "workspace id")
		limit := flags.Int("limit", 0, "max rows (server default 50)")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		wsID, err := a.workspaceOrDefault(*workspaceFlag)
		if err != nil {
			return err
		}
		reqs, err := a.client.Retrieval.ListRequests(ctx, wsID, *limit)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tQUERY\tK\tALPHA\tWHEN")
		for _, r := range reqs {
			fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%s\n", r.ID, r.Q, r.K, r.Alpha, r.CreatedAt)
		}
		return w.Flush()

	case "show":
		if len(rest) != 1 {
			return fmt.Errorf("usage: agentos trace show <request-id>")
		}
		r, err := a.client.Retrieval.GetRequest(ctx, rest[0])
		if err != nil {
			return err
		}
		return printJSON(r)

	case "items":
		if len(rest) != 1 {
			return fmt.Errorf("usage: agentos trace items <request-id>")
		}
		items, err := a.client.Retrieval.ListRequestItems(ctx, rest[0])
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
		fmt.Fprintln(w, "RANK\tHYBRID\tFTS\tVEC\tSNIPPET")
		for _, it := range items {
			fmt.Fprintf(w, "%d\t%.3f\t%.3f\t%.3f\t%s\n", it.Rank, it.ScoreHybrid, it.ScoreFTS, it.ScoreVec, it.Snippet)
		}
		return w.Flush()

	default:
		return fmt.Errorf("unknown trace subcommand %q", sub)
	}
}

func (a *app) cmdEvidence(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: agentos evidence <add|list|auto>")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "add":
		flags := pflag.NewFlagSet("evidence add", pflag.ContinueOnError)
		kind := flags.String("kind", "quote", "evidence kind")
		sourceRef := flags.String("source-ref", "", "link or reference to the source")
		excerpt := flags.String("excerpt", "", "excerpt text")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		if flags.NArg() != 1 {
			return fmt.Errorf("usage: agentos evidence add [flags] <run-id>")
		}
		in := evidence.AddInput{Kind: *kind, Excerpt: *excerpt}
		if *sourceRef != "" {
			in.SourceRef = sourceRef
		}
		ev, err := a.client.Evidence.Add(ctx, flags.Arg(0), in)
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\n", ev.ID, ev.Kind)
		return nil

	case "list":
		if len(rest) != 1 {
			return fmt.Errorf("usage: agentos evidence list <run-id>")
		}
		items, err := a.client.Evidence.List(ctx, rest[0])
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tKIND\tSOURCE\tEXCERPT")
		for _, e := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.Kind, e.SourceName, e.Excerpt)
		}
		return w.Flush()

	case "auto":
		flags := pflag.NewFlagSet("evidence auto", pflag.ContinueOnError)
		query := flags.String("query", "", "search text")
		k := flags.Int("k", 0, "max hits (server default 6)")
		alpha := flags.Float64("alpha", 0, "vector weight (server default 0.65)")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		if flags.NArg() != 1 || *query == "" {
			return fmt.Errorf("usage: agentos evidence auto --query <text> <run-id>")
		}
		items, err := a.client.Evidence.Auto(ctx, flags.Arg(0), evidence.AutoInput{
			Query: *query,
			K:     *k,
			Alpha: *alpha,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Attached %d evidence records\n", len(items))
		for _, e := range items {
			fmt.Printf("%s\t%s\n", e.ID, e.Excerpt)
		}
		return nil

	default:
		return fmt.Errorf("unknown evidence subcommand %q", sub)
	}
}
