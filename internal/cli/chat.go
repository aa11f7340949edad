// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/peterh/liner"

	"github.com/SweetySeelam2/StreamIntel360-AI/internal/api"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/render"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/session"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/util"
)

const chatPrompt = "You: "

// lineReader is the part of *liner.State the REPL uses.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// HandleChat starts the interactive copilot REPL on the terminal.
func HandleChat(ctx context.Context, env *Env) (any, error) {
	if env.Args.JSON {
		return nil, &UsageError{Msg: "chat is interactive; use 'streamintel ask --json' instead"}
	}

	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	defer line.Close()

	sess := session.New()
	sess.SetMaxTurns(env.Config.UI.MaxTurns)

	fmt.Fprintln(env.Stdout, TitleStyle.Render("StreamIntel360 Copilot"))
	fmt.Fprintln(env.Stdout, MutedStyle.Render("Backend: "+env.Client.BaseURL()+"   /help for commands, Ctrl+D to quit"))
	fmt.Fprintln(env.Stdout)

	return nil, runChatREPL(ctx, env.Stdout, line, sess, env.Client, env.Renderer())
}

// runChatREPL reads messages until EOF, Ctrl+C at the prompt or /quit.
// Ctrl+C while a request is pending aborts only that request.
func runChatREPL(ctx context.Context, out io.Writer, reader lineReader, sess *session.Session, backend session.Chatter, renderer *render.Renderer) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		input, err := reader.Prompt(chatPrompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				printChatSummary(out, sess)
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		reader.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			if !handleSlashCommand(out, input, sess) {
				printChatSummary(out, sess)
				return nil
			}
			continue
		}

		sendChatLine(ctx, out, sess, backend, renderer, input)
	}
}

func sendChatLine(ctx context.Context, out io.Writer, sess *session.Session, backend session.Chatter, renderer *render.Renderer, message string) {
	reqCtx, stop := interruptible(ctx)
	defer stop()

	fmt.Fprintln(out, MutedStyle.Render("Thinking…"))
	turn, err := sess.SendChat(reqCtx, backend, message)
	switch {
	case errors.Is(err, session.ErrAborted), errors.Is(err, context.Canceled):
		fmt.Fprintln(out, WarningStyle.Render("[Cancelled]"))
		return
	case api.IsBackendUnavailable(err):
		fmt.Fprintln(out, UserStyle.Render("AI: ")+ErrorStyle.Render(render.Sanitize(turn.Content)))
		return
	case err != nil:
		log.Printf("CHAT_SEND_FAILED | error=%v", err)
		fmt.Fprintln(out, ErrorStyle.Render("[Error] ")+err.Error())
		return
	}

	fmt.Fprintln(out, UserStyle.Render("AI:"))
	fmt.Fprintln(out, renderer.Render(turn.Content))
}

// handleSlashCommand runs a REPL command. It returns false to leave the REPL.
func handleSlashCommand(out io.Writer, input string, sess *session.Session) bool {
	command := strings.ToLower(strings.Fields(input)[0])

	switch command {
	case "/quit", "/exit", "/q":
		return false
	case "/clear", "/c":
		sess.Reset()
		fmt.Fprintln(out, MutedStyle.Render("[Conversation cleared]"))
	case "/history":
		printChatHistory(out, sess)
	case "/help", "/h", "/?", "/":
		printChatHelp(out)
	default:
		fmt.Fprintf(out, "%s unknown command: %s (type /help for commands)\n", ErrorStyle.Render("[Error]"), command)
	}
	return true
}

func printChatHelp(out io.Writer) {
	fmt.Fprintln(out, TitleStyle.Render("Commands"))
	fmt.Fprintln(out, "  /history   Show the conversation so far")
	fmt.Fprintln(out, "  /clear     Start a new conversation")
	fmt.Fprintln(out, "  /quit      Leave the copilot")
}

func printChatHistory(out io.Writer, sess *session.Session) {
	turns := sess.Transcript()
	if len(turns) == 0 {
		fmt.Fprintln(out, MutedStyle.Render("No messages yet."))
		return
	}
	for _, turn := range turns {
		label := "AI:  "
		if turn.IsUser() {
			label = "You: "
		}
		fmt.Fprintln(out, UserStyle.Render(label)+util.Preview(render.Sanitize(turn.Content), 72))
	}
}

func printChatSummary(out io.Writer, sess *session.Session) {
	n := sess.TurnCount()
	fmt.Fprintln(out, MutedStyle.Render(fmt.Sprintf("Session %s ended after %d %s.",
		sess.ID(), n, util.Pluralize(n, "message", "messages"))))
}
