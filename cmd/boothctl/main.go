// Command boothctl is an interactive operator console for a single booth. It
// connects to the live conversation agent through the booth API and mirrors
// everything a kiosk screen would show.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	booth "github.com/cekatlabs/booth-core/core"
	"github.com/cekatlabs/booth-core/core/agents/elevenlabs"
	"github.com/cekatlabs/booth-core/core/booths"
	"github.com/cekatlabs/booth-core/core/events"
	"github.com/cekatlabs/booth-core/internal/console"
)

func main() {
	_ = godotenv.Load()

	var (
		boothID string
		apiURL  string
	)

	rootCmd := &cobra.Command{
		Use:           "boothctl",
		Short:         "Operator console for an experience booth",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := booths.LoadCatalog()
			if err != nil {
				return err
			}
			config, ok := catalog.Lookup(boothID)
			if !ok {
				return fmt.Errorf("unknown booth %q (known: %s)", boothID, strings.Join(catalog.IDs(), ", "))
			}

			feed := make(chan events.Event, 64)
			b, err := booth.New(config,
				booth.WithSessionDialer(elevenlabs.NewClient()),
				booth.WithSignedURLProvider(elevenlabs.NewSignedURLClient(apiURL)),
				booth.WithEventListener(func(event events.Event) {
					select {
					case feed <- event:
					default:
					}
				}),
			)
			if err != nil {
				return err
			}
			defer b.Close()

			return console.Run(b, feed)
		},
	}

	rootCmd.Flags().StringVarP(&boothID, "booth", "b", booths.DefaultBoothID, "booth id to operate")
	rootCmd.Flags().StringVar(&apiURL, "api-url", "http://localhost:8080", "base URL of the booth API")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List configured booths",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := booths.LoadCatalog()
			if err != nil {
				return err
			}
			for _, id := range catalog.IDs() {
				config, _ := catalog.Lookup(id)
				fmt.Printf("%-12s %s\n", id, config.Name)
			}
			return nil
		},
	}
	rootCmd.AddCommand(listCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
