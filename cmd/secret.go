package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/synapse-cli/internal/application"
)

func newSecretCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage secrets such as the generation API key",
	}

	cmd.AddCommand(newSecretSetCmd(app), newSecretRemoveCmd(app))

	return cmd
}

func newSecretSetCmd(app *app) *cobra.Command {
	var command application.SetSecretCommand

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store a secret in the first writable backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.service.SetSecret(cmd.Context(), command); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stored secret %s\n", command.Key)
			return nil
		},
	}

	cmd.Flags().StringVar(&command.Key, "key", app.cfg.GetString(keyAPIKeyRef), "Secret key")
	cmd.Flags().StringVar(&command.Value, "value", "", "Secret value")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newSecretRemoveCmd(app *app) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a secret from every backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.service.RemoveSecret(cmd.Context(), key); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed secret %s\n", key)
			return nil
		},
	}

	cmd.Flags().StringVar(&key, "key", app.cfg.GetString(keyAPIKeyRef), "Secret key")

	return cmd
}
