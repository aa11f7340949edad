// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
)

// handler runs one command. The returned data is printed as the JSON
// envelope in --json mode; text output is written by the handler itself.
type handler func(ctx context.Context, env *Env) (any, error)

var handlers = map[Command]handler{
	CmdTUI:         HandleTUI,
	CmdAnalyze:     HandleAnalyze,
	CmdAsk:         HandleAsk,
	CmdChat:        HandleChat,
	CmdStatus:      HandleStatus,
	CmdAdmin:       HandleAdmin,
	CmdConfig:      HandleConfig,
	CmdMockBackend: HandleMockBackend,
}

// Run parses argv, executes the command and returns the exit code.
func Run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	args, err := Parse(argv)
	if err != nil {
		return report(args, stdout, stderr, err)
	}

	switch args.Command {
	case CmdHelp:
		PrintUsage(stdout)
		return ExitSuccess
	case CmdVersion:
		if args.JSON {
			NewJSONResponse("version", versionInfo()).Print(stdout)
		} else {
			PrintVersion(stdout)
		}
		return ExitSuccess
	}

	env, err := NewEnv(args, stdin, stdout, stderr)
	if err != nil {
		return report(args, stdout, stderr, err)
	}
	defer env.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	log.Printf("CLI_COMMAND | command=%s backend=%s", args.Command, env.Config.Backend.URL)
	data, err := handlers[args.Command](ctx, env)
	if err != nil {
		log.Printf("CLI_COMMAND_FAILED | command=%s error=%v", args.Command, err)
		return report(args, stdout, stderr, err)
	}
	if args.JSON {
		if err := NewJSONResponse(args.Command.String(), data).Print(stdout); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return ExitGeneralError
		}
	}
	return ExitSuccess
}

// report prints err in the selected format and returns its exit code.
func report(args Args, stdout, stderr io.Writer, err error) int {
	if args.JSON {
		NewJSONErrorResponse(args.Command.String(), err).Print(stdout)
	} else {
		fmt.Fprintln(stderr, ErrorStyle.Render("Error: ")+userMessage(err))
		var usage *UsageError
		if errors.As(err, &usage) {
			fmt.Fprintln(stderr, MutedStyle.Render("Run 'streamintel help' for usage."))
		}
	}
	return ExitCodeFor(err)
}

// interruptible derives a context that Ctrl+C cancels. It is used around
// single backend requests so an interrupt aborts the request, not the
// process.
func interruptible(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt)
}
