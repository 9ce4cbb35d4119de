package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"phantomlink/internal/walletsim"
)

// simulateCmd runs the whole protocol against the in-process wallet: useful
// as a smoke test and as a worked example of the URL flow.
func simulateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate <message> [message...]",
		Short: "Run connect/sign/disconnect against a simulated wallet",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wallet, err := walletsim.New()
			if err != nil {
				return err
			}
			defer sess.Disconnect()

			reqURL, err := sess.Connect()
			if err != nil {
				return err
			}
			fmt.Printf("-> %s\n", reqURL)

			respURL, err := wallet.HandleConnect(reqURL)
			if err != nil {
				return fmt.Errorf("wallet: %w", err)
			}
			fmt.Printf("<- %s\n", respURL)

			res, err := sess.HandleConnectResponse(respURL)
			if err != nil {
				return err
			}
			fmt.Printf("Connected to %s\n", res.WalletAddress)

			for _, message := range args {
				signURL, err := sess.SignMessage(message)
				if err != nil {
					return err
				}
				fmt.Printf("-> %s\n", signURL)

				signedURL, err := wallet.HandleSign(signURL)
				if err != nil {
					return fmt.Errorf("wallet: %w", err)
				}
				fmt.Printf("<- %s\n", signedURL)

				sig, err := sess.HandleSignResponse(signedURL)
				if err != nil {
					return err
				}
				fmt.Printf("Signed %q: %s\n", message, sig.Signature)
			}
			return nil
		},
	}
}
