// Command directory-admin is a small CLI against the business directory
// API. It keeps the bearer token in a file store so repeated calls do
// not need to log in again.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/grensregio/directory-ui/internal/bootstrap"
	"github.com/grensregio/directory-ui/internal/directory"
	"github.com/grensregio/directory-ui/internal/token"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx     context.Context
	Logger  *slog.Logger
	Client  *directory.Client
	Tokens  *token.FileStore
	BaseURL string
}

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cmdCtx, err := newCommandContext(logger)
	if err != nil {
		logger.Error("setup failed", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal setup failure to shell scripts
	}

	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func newCommandContext(logger *slog.Logger) (*commandContext, error) {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	client, err := directory.NewClient(directory.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	})
	if err != nil {
		return nil, err
	}

	dir, err := token.DefaultDir()
	if err != nil {
		return nil, fmt.Errorf("resolve token dir: %w", err)
	}

	return &commandContext{
		Ctx:     context.Background(),
		Logger:  logger,
		Client:  client,
		Tokens:  token.NewFileStore(dir),
		BaseURL: cfg.API.BaseURL,
	}, nil
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Authenticate against the directory API and store the token",
			run:         runLogin,
		},
		"logout": {
			name:        "logout",
			description: "Remove the stored token",
			run:         runLogout,
		},
		"profile": {
			name:        "profile",
			description: "Show the profile for the stored token",
			run:         runProfile,
		},
		"businesses": {
			name:        "businesses",
			description: "List businesses, optionally filtered by category or city",
			run:         runBusinesses,
		},
		"create": {
			name:        "create",
			description: "Create a new business entry",
			run:         runCreate,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: directory-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	for _, c := range commands() {
		if err := writef(os.Stdout, "  %-12s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}

func runLogin(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var email, password string
	fs.StringVar(&email, "email", "", "Account email (prompted when omitted)")
	fs.StringVar(&password, "password", "", "Account password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var err error
	if email == "" {
		if email, err = promptLine("Email: "); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = promptLine("Password: "); err != nil {
			return err
		}
	}

	tok, user, err := ctx.Client.Login(ctx.Ctx, email, password)
	if err != nil {
		return err
	}
	if err := ctx.Tokens.Save(tok); err != nil {
		return fmt.Errorf("store token: %w", err)
	}

	return writef(os.Stdout, "Logged in as %s %s (%s)\n", user.FirstName, user.LastName, user.Role)
}

func runLogout(ctx *commandContext, _ []string) error {
	// Local only. The stored token simply ages out server-side.
	if err := ctx.Tokens.Remove(); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	return writef(os.Stdout, "Logged out\n")
}

func runProfile(ctx *commandContext, _ []string) error {
	tok, err := requireToken(ctx)
	if err != nil {
		return err
	}

	user, err := ctx.Client.Profile(ctx.Ctx, tok)
	if err != nil {
		return err
	}

	if err := writef(os.Stdout, "Email:      %s\n", user.Email); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Name:       %s %s\n", user.FirstName, user.LastName); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Role:       %s\n", user.Role); err != nil {
		return err
	}
	if user.StudentID != "" {
		if err := writef(os.Stdout, "Student ID: %s\n", user.StudentID); err != nil {
			return err
		}
	}
	if user.University != "" {
		if err := writef(os.Stdout, "University: %s\n", user.University); err != nil {
			return err
		}
	}
	return nil
}

// requireToken loads the stored token, rejecting stale logins before a
// request goes out.
func requireToken(ctx *commandContext) (string, error) {
	tok, err := ctx.Tokens.ReadValid()
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if tok == "" {
		return "", errors.New("not logged in, run: directory-admin login")
	}
	return tok, nil
}

func promptLine(prompt string) (string, error) {
	if err := writef(os.Stderr, "%s", prompt); err != nil {
		return "", err
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
