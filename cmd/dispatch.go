package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/synapse-cli/internal/application"
	"github.com/bnema/synapse-cli/internal/domain"
)

var errDispatchFailed = errors.New("dispatch failed")

// recordSource describes where a dispatched record comes from: literal
// content, or the current output of another node.
type recordSource struct {
	content      string
	instructions string
	from         string
}

func (s *recordSource) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.content, "content", "", "Content of the user_input record to send")
	cmd.Flags().StringVar(&s.instructions, "instructions", "", "Instructions for the api_communicator node")
	cmd.Flags().StringVar(&s.from, "from", "", "Forward the current output of this node instead of --content")
	cmd.MarkFlagsMutuallyExclusive("content", "from")
	cmd.MarkFlagsOneRequired("content", "from")
}

func (s recordSource) record() domain.Record {
	record := domain.NewUserInput(s.content)
	if s.instructions != "" {
		record[application.FieldInstructions] = s.instructions
	}
	return record
}

func newSendCmd(app *app) *cobra.Command {
	var to string
	var source recordSource
	var plain bool

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Push a record into one node and print its output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			router, _, err := app.newRouter(cmd.Context())
			if err != nil {
				return err
			}
			if !router.Has(to) {
				return fmt.Errorf("send to %s: %w", to, domain.ErrNodeNotFound)
			}

			var ok bool
			err = waitFor(cmd.Context(), cmd.ErrOrStderr(), plain, "Waiting for "+to+"...", func(ctx context.Context) error {
				if source.from != "" {
					ok = router.Send(ctx, to, source.from)
				} else {
					ok = router.SendData(ctx, to, source.record())
				}
				return nil
			})
			if err != nil {
				return err
			}

			output, err := router.Fetch(to)
			if err != nil {
				return err
			}
			if err := writeJSON(cmd, output); err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("send to %s: %w", to, errDispatchFailed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Target node ID")
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable the wait spinner")
	source.bind(cmd)
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newStreamCmd(app *app) *cobra.Command {
	var nodes []string
	var source recordSource
	var asJSON bool
	var plain bool

	cmd := &cobra.Command{
		Use:     "stream",
		Aliases: []string{"pipeline"},
		Short:   "Send a record through nodes in order, each output feeding the next",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			router, _, err := app.newRouter(cmd.Context())
			if err != nil {
				return err
			}

			ids := cleanIDs(nodes)
			var ok bool
			err = waitFor(cmd.Context(), cmd.ErrOrStderr(), plain, "Running pipeline...", func(ctx context.Context) error {
				if source.from != "" {
					ok = router.SendStream(ctx, ids, source.from)
				} else {
					ok = router.SendDataStream(ctx, ids, source.record())
				}
				return nil
			})
			if err != nil {
				return err
			}

			if err := writeOutputs(cmd, application.CollectOutputs(router, ids), asJSON); err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("pipeline %s: %w", strings.Join(ids, " -> "), errDispatchFailed)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&nodes, "nodes", nil, "Comma-separated node IDs, in pipeline order")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable the wait spinner")
	source.bind(cmd)
	_ = cmd.MarkFlagRequired("nodes")

	return cmd
}

func newMultiCmd(app *app) *cobra.Command {
	var nodes []string
	var source recordSource
	var asJSON bool
	var plain bool

	cmd := &cobra.Command{
		Use:     "multi",
		Aliases: []string{"broadcast"},
		Short:   "Send the same record to several nodes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			router, _, err := app.newRouter(cmd.Context())
			if err != nil {
				return err
			}

			ids := cleanIDs(nodes)
			var ok bool
			err = waitFor(cmd.Context(), cmd.ErrOrStderr(), plain, "Broadcasting...", func(ctx context.Context) error {
				if source.from != "" {
					ok = router.SendMulti(ctx, ids, source.from)
				} else {
					ok = router.SendDataMulti(ctx, ids, source.record())
				}
				return nil
			})
			if err != nil {
				return err
			}

			if err := writeOutputs(cmd, application.CollectOutputs(router, ids), asJSON); err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("broadcast to %s: %w", strings.Join(ids, ", "), errDispatchFailed)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&nodes, "to", nil, "Comma-separated target node IDs")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable the wait spinner")
	source.bind(cmd)
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

type nodeOutputJSON struct {
	Node   string        `json:"node"`
	Found  bool          `json:"found"`
	Output domain.Record `json:"output,omitempty"`
}

func writeOutputs(cmd *cobra.Command, outputs []application.NodeOutput, asJSON bool) error {
	if asJSON {
		payload := make([]nodeOutputJSON, 0, len(outputs))
		for _, output := range outputs {
			payload = append(payload, nodeOutputJSON{Node: output.NodeID, Found: output.Found, Output: output.Record})
		}
		return writeJSON(cmd, payload)
	}

	for _, output := range outputs {
		line := "(not registered)"
		if output.Found {
			line = output.Record.Summary()
			if line == "" {
				line = "(no output)"
			}
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", output.NodeID, sanitizeForTerminal(line)); err != nil {
			return err
		}
	}
	return nil
}

func cleanIDs(raw []string) []string {
	ids := make([]string, 0, len(raw))
	for _, id := range raw {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}
