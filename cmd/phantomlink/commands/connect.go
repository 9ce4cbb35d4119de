package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// connectCmd drives a real session interactively. It prints the connect URL
// for the user to open, reads the wallet's callback URL from stdin, then
// treats each further line as a message to sign (each followed by its own
// callback URL). EOF disconnects.
func connectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connect",
		Short: "Connect to the wallet and sign messages interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer sess.Disconnect()

			reqURL, err := sess.Connect()
			if err != nil {
				return err
			}
			fmt.Printf("Open this URL, then paste the callback URL:\n%s\n", reqURL)

			in := bufio.NewScanner(os.Stdin)
			if !in.Scan() {
				return in.Err()
			}
			res, err := sess.HandleConnectResponse(strings.TrimSpace(in.Text()))
			if err != nil {
				return err
			}
			fmt.Printf("Connected to %s\n", res.WalletAddress)

			for {
				fmt.Print("message> ")
				if !in.Scan() {
					break
				}
				message := in.Text()
				if message == "" {
					continue
				}

				signURL, err := sess.SignMessage(message)
				if err != nil {
					return err
				}
				fmt.Printf("Open this URL, then paste the callback URL:\n%s\n", signURL)
				if !in.Scan() {
					break
				}
				sig, err := sess.HandleSignResponse(strings.TrimSpace(in.Text()))
				if err != nil {
					// A rejection keeps the session; anything else ended it.
					fmt.Fprintf(os.Stderr, "sign failed: %v\n", err)
					continue
				}
				fmt.Printf("Signature: %s\n", sig.Signature)
			}
			return in.Err()
		},
	}
}
