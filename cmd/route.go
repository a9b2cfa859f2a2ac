package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/synapse-cli/internal/application"
	"github.com/bnema/synapse-cli/internal/domain"
)

func newRouteCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "route",
		Aliases: []string{"routes"},
		Short:   "Manage and run named pipelines and broadcasts",
	}

	cmd.AddCommand(
		newRouteListCmd(app),
		newRouteAddCmd(app),
		newRouteRunCmd(app),
	)

	return cmd
}

type routeOutput struct {
	ID          string   `json:"id"`
	Kind        string   `json:"kind"`
	Nodes       []string `json:"nodes"`
	Description string   `json:"description,omitempty"`
}

func newRouteOutput(route domain.Route) routeOutput {
	return routeOutput{
		ID:          string(route.ID),
		Kind:        string(route.Kind),
		Nodes:       route.NodeStrings(),
		Description: route.Description,
	}
}

func newRouteListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			routes, err := application.NewRouteService(app.routes, nil).List(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				output := make([]routeOutput, 0, len(routes))
				for _, route := range routes {
					output = append(output, newRouteOutput(route))
				}
				return writeJSON(cmd, output)
			}

			if len(routes) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "routes: none")
				return nil
			}
			for _, route := range routes {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", route.ID, route.Kind, strings.Join(route.NodeStrings(), ","))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newRouteAddCmd(app *app) *cobra.Command {
	var id string
	var kind string
	var nodes []string
	var description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create or replace a route",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			routeKind, err := domain.ParseRouteKind(kind)
			if err != nil {
				return err
			}

			command := application.SaveRouteCommand{
				ID:          domain.RouteID(strings.TrimSpace(id)),
				Kind:        routeKind,
				Description: description,
			}
			for _, node := range nodes {
				command.Nodes = append(command.Nodes, domain.NodeID(node))
			}

			route, err := application.NewRouteService(app.routes, nil).Save(cmd.Context(), command.Route())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved route %s (%s, nodes: %d)\n", route.ID, route.Kind, len(route.Nodes))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Route ID")
	cmd.Flags().StringVar(&kind, "kind", string(domain.RouteKindPipeline), "Route kind (pipeline|broadcast)")
	cmd.Flags().StringSliceVar(&nodes, "nodes", nil, "Comma-separated node IDs")
	cmd.Flags().StringVar(&description, "description", "", "Free-form description")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("nodes")

	return cmd
}

func newRouteRunCmd(app *app) *cobra.Command {
	var content string
	var asJSON bool
	var plain bool

	cmd := &cobra.Command{
		Use:   "run <route-id>",
		Short: "Send a user_input record through a saved route",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			router, _, err := app.newRouter(cmd.Context())
			if err != nil {
				return err
			}
			service := application.NewRouteService(app.routes, router)

			var result application.RouteResult
			err = waitFor(cmd.Context(), cmd.ErrOrStderr(), plain, "Running route "+args[0]+"...", func(ctx context.Context) error {
				var dispatchErr error
				result, dispatchErr = service.Dispatch(ctx, domain.RouteID(args[0]), domain.NewUserInput(content))
				return dispatchErr
			})
			if err != nil {
				return err
			}

			if err := writeOutputs(cmd, result.Outputs, asJSON); err != nil {
				return err
			}
			if !result.OK {
				return fmt.Errorf("route %s: %w", result.Route.ID, errDispatchFailed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "Content of the user_input record")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable the wait spinner")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}
