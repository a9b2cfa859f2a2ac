package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "syn",
		Short:         "Synapse CLI (syn): route records between LLM agents",
		Long:          "syn loads agent definitions, registers them as nodes with a router, and lets you chat with an agent or send records through single nodes, pipelines, and broadcasts.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (panic|fatal|error|warn|info|debug|trace)")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		app.logger.SetOutput(cmd.ErrOrStderr())
		setLogLevel(app.logger, logLevel)
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAgentsCmd(app),
		newChatCmd(app),
		newSendCmd(app),
		newStreamCmd(app),
		newMultiCmd(app),
		newRouteCmd(app),
		newSecretCmd(app),
	)

	return rootCmd
}
