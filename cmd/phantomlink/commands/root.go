package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"phantomlink/internal/protocol/session"
)

var (
	appURL         string
	redirectScheme string
	walletURL      string
	cluster        string
	verbose        bool

	sess *session.Session
)

func Execute() error {
	root := &cobra.Command{
		Use:   "phantomlink",
		Short: "Encrypted wallet deeplink session CLI",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.WarnLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).
				With().Timestamp().Logger()

			sess = session.New(session.Config{
				WalletBaseURL:  walletURL,
				AppURL:         appURL,
				RedirectScheme: redirectScheme,
				Cluster:        cluster,
				Logger:         &log,
			})
		},
	}

	root.PersistentFlags().StringVar(&appURL, "app-url", "https://example.dapp", "dapp URL shown on the wallet's approval screen")
	root.PersistentFlags().StringVar(&redirectScheme, "redirect-scheme", "phantomlink", "URL scheme the OS routes back to this app")
	root.PersistentFlags().StringVar(&walletURL, "wallet-url", "", "wallet universal-link base (default https://phantom.app/ul/v1)")
	root.PersistentFlags().StringVar(&cluster, "cluster", "", "network cluster (default mainnet-beta)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log state transitions")

	root.AddCommand(connectCmd(), simulateCmd())
	return root.Execute()
}
