// Command agentos is a terminal frontend for the Agent OS API. It signs
// in with email and password, keeps the session in a local cookie file,
// and exposes workspaces, runs, artifacts, pipelines and retrieval as
// subcommands.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hupe1980/agentos-go"
	"github.com/hupe1980/agentos-go/logging"
	"github.com/hupe1980/agentos-go/session"
	"github.com/hupe1980/agentos-go/transport"
)

const usage = `Usage: agentos <command> [subcommand] [flags]

Commands:
  configure   set the API base URL
  login       sign in and persist the session
  logout      end the session and drop local credentials
  me          show the signed-in user
  workspace   list | create | members | invite
  agents      list the agent catalog
  run         create | list | show | status
  artifact    list | show | export | status | version
  pipeline    template-create | templates | start | next | execute-all | show
  source      list | ensure-docs
  doc         ingest | list | embed
  retrieve    hybrid search over the workspace index
  trace       list | show | items
  evidence    add | list | auto

Run "agentos <command> --help" for command flags.`

func main() {
	if err := dispatch(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "agentos:", err)
		os.Exit(1)
	}
}

func dispatch(args []string) error {
	if len(args) == 0 {
		fmt.Println(usage)
		return nil
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "help", "--help", "-h":
		fmt.Println(usage)
		return nil
	case "configure":
		return cmdConfigure(rest)
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	ctx := context.Background()
	switch cmd {
	case "login":
		return a.cmdLogin(ctx, rest)
	case "logout":
		return a.cmdLogout(ctx)
	case "me":
		return a.cmdMe(ctx)
	case "workspace":
		return a.cmdWorkspace(ctx, rest)
	case "agents":
		return a.cmdAgents(ctx)
	case "run":
		return a.cmdRun(ctx, rest)
	case "artifact":
		return a.cmdArtifact(ctx, rest)
	case "pipeline":
		return a.cmdPipeline(ctx, rest)
	case "source":
		return a.cmdSource(ctx, rest)
	case "doc":
		return a.cmdDoc(ctx, rest)
	case "retrieve":
		return a.cmdRetrieve(ctx, rest)
	case "trace":
		return a.cmdTrace(ctx, rest)
	case "evidence":
		return a.cmdEvidence(ctx, rest)
	default:
		return fmt.Errorf("unknown command %q\n\n%s", cmd, usage)
	}
}

// app wires the SDK client to the CLI's persisted config and session.
type app struct {
	cfg     Config
	jar     *session.Jar
	jarPath string
	client  *agentos.Client
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("no API base URL configured (run \"agentos configure --base-url <url>\" or set AGENTOS_BASE_URL)")
	}

	jarPath, err := sessionPath()
	if err != nil {
		return nil, err
	}
	jar, err := session.Load(jarPath)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var logger logging.Logger = logging.NoOpLogger{}
	if os.Getenv("AGENTOS_DEBUG") != "" {
		logger = logging.NewSlogLogger(logging.LogLevelDebug, "text")
	}

	client, err := agentos.New(cfg.BaseURL, func(o *transport.Options) {
		o.Jar = jar
		o.Logger = logger
		o.UserAgent = "agentos-cli"
		o.OnUnauthenticated = func() {
			fmt.Fprintln(os.Stderr, "session expired, run \"agentos login\"")
		}
	})
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, jar: jar, jarPath: jarPath, client: client}, nil
}

// saveSession persists the cookie jar so the session survives the process.
func (a *app) saveSession() error {
	if err := a.jar.Save(a.jarPath); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// workspaceOrDefault resolves the effective workspace id from a flag
// value or the configured default.
func (a *app) workspaceOrDefault(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if a.cfg.DefaultWorkspace != "" {
		return a.cfg.DefaultWorkspace, nil
	}
	return "", fmt.Errorf("no workspace given (use --workspace or configure a default)")
}
