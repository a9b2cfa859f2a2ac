package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	nodesadapter "github.com/bnema/synapse-cli/internal/adapters/render/nodes"
	"github.com/bnema/synapse-cli/internal/adapters/repo/agentfile"
	"github.com/bnema/synapse-cli/internal/application"
	"github.com/bnema/synapse-cli/internal/domain"
)

func newAgentsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "agents",
		Aliases: []string{"agent"},
		Short:   "Manage agent definitions",
	}

	cmd.AddCommand(
		newAgentsListCmd(app),
		newAgentsAddCmd(app),
	)

	return cmd
}

type agentsListOutput struct {
	Agents   []application.AgentSummary `json:"agents"`
	Builtins []string                   `json:"builtins"`
	Routes   []routeOutput              `json:"routes"`
	Skipped  []string                   `json:"skipped,omitempty"`
}

func newAgentsListCmd(app *app) *cobra.Command {
	var asJSON bool
	var showSources bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List agent definitions and routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := app.service.ListAgents(cmd.Context())
			if err != nil && !errors.Is(err, agentfile.ErrAgentsDirNotFound) {
				return err
			}

			routes, err := app.routes.List(cmd.Context())
			if err != nil {
				return err
			}

			builtins := []string{application.DefaultGeneratorNodeID, application.DefaultFormatterNodeID}

			if asJSON {
				output := agentsListOutput{
					Agents:   catalog.Agents,
					Builtins: builtins,
					Routes:   make([]routeOutput, 0, len(routes)),
				}
				for _, route := range routes {
					output.Routes = append(output.Routes, newRouteOutput(route))
				}
				for _, skipped := range catalog.Skipped {
					output.Skipped = append(output.Skipped, skipped.Error())
				}
				return writeJSON(cmd, output)
			}

			rendered, err := app.nodeRenderer(nodesadapter.Catalog{
				Agents:   catalog.Agents,
				Builtins: builtins,
				Routes:   routes,
				Skipped:  catalog.Skipped,
			}, nodesadapter.RenderOptions{ShowSources: showSources})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&showSources, "sources", false, "Show the file each definition was loaded from")

	return cmd
}

func newAgentsAddCmd(app *app) *cobra.Command {
	var command application.SaveAgentCommand
	var id string
	params := domain.DefaultLLMParameters()

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create or replace an agent definition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			command.ID = domain.NodeID(id)
			command.Parameters = params

			def, err := app.service.SaveAgent(cmd.Context(), command)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved agent %s (%s)\n", def.ID, def.Parameters.Model)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Agent ID (node id used for routing)")
	cmd.Flags().StringVar(&command.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&params.Model, "model", params.Model, "Model name")
	cmd.Flags().StringVar(&params.Instructions, "instructions", "", "System instructions primed into the history")
	cmd.Flags().Float64Var(&params.Temperature, "temperature", params.Temperature, "Sampling temperature (0-2)")
	cmd.Flags().Float64Var(&params.TopP, "top-p", params.TopP, "Nucleus sampling probability (0-1)")
	cmd.Flags().IntVar(&params.TopK, "top-k", params.TopK, "Top-k sampling (0 disables)")
	cmd.Flags().IntVar(&params.MaxOutputTokens, "max-output-tokens", params.MaxOutputTokens, "Maximum tokens per response")
	cmd.Flags().IntVar(&params.MaxHistoryTurns, "max-history-turns", params.MaxHistoryTurns, "Exchanges kept besides the instructions")
	cmd.Flags().BoolVar(&command.Replace, "replace", false, "Overwrite an existing definition")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func writeJSON(cmd *cobra.Command, value any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
