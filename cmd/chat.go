package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/bnema/synapse-cli/internal/application"
	"github.com/bnema/synapse-cli/internal/domain"
)

const defaultChatAgent = "general_assistant"

func newChatCmd(app *app) *cobra.Command {
	var agentID string
	var plain bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive conversation with an agent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			router, _, err := app.newRouter(cmd.Context())
			if err != nil {
				return err
			}
			if !router.Has(agentID) {
				return fmt.Errorf("chat with %s: %w", agentID, domain.ErrNodeNotFound)
			}

			return runConversation(cmd, router, agentID, plain)
		},
	}

	cmd.Flags().StringVar(&agentID, "agent", defaultChatAgent, "Agent ID to talk to")
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable the wait spinner")

	return cmd
}

func runConversation(cmd *cobra.Command, router *application.Router, agentID string, plain bool) error {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "--- Conversation with %s ---\n", agentID)
	_, _ = fmt.Fprintln(out, "Type your message and press Enter. Type 'quit' or 'exit' to end the conversation.")

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for {
		_, _ = fmt.Fprint(out, "\nYou: ")
		if !scanner.Scan() {
			_, _ = fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "quit", "exit":
			_, _ = fmt.Fprintln(out, "Ending conversation. Goodbye!")
			return nil
		}

		err := waitFor(cmd.Context(), cmd.ErrOrStderr(), plain, "Thinking...", func(ctx context.Context) error {
			router.SendData(ctx, agentID, domain.NewUserInput(line))
			return nil
		})
		if err != nil {
			return err
		}

		reply, err := router.Fetch(agentID)
		if err != nil {
			return err
		}
		writeReply(out, agentID, reply)
	}
}

func writeReply(out io.Writer, agentID string, reply domain.Record) {
	text := reply.Summary()
	if text == "" {
		text = "(no output)"
	}
	_, _ = fmt.Fprintf(out, "%s: %s\n", agentID, sanitizeForTerminal(text))
}

// sanitizeForTerminal strips control characters except line breaks and tabs.
func sanitizeForTerminal(value string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
}
