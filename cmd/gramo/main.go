package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gramofon/gramofon/internal/adapters/output"
	"github.com/gramofon/gramofon/internal/client"
)

type app struct {
	client  *client.Client
	printer output.Printer
	timeout time.Duration
}

type appKey struct{}

func fromContext(cmd *cobra.Command) *app {
	val := cmd.Context().Value(appKey{})
	if val == nil {
		return nil
	}
	return val.(*app)
}

func (a *app) callContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.timeout)
}

// ack runs a method with no interesting result and prints an acknowledgement.
func (a *app) ack(method string, params map[string]any) error {
	ctx, cancel := a.callContext()
	defer cancel()
	if _, err := a.client.Call(ctx, method, params); err != nil {
		return err
	}
	return a.printer.Print(output.Ack{})
}

func main() {
	root := &cobra.Command{
		Use:          "gramo",
		Short:        "Gramofon player control",
		SilenceUsage: true,
	}

	var (
		server  string
		timeout time.Duration
		jsonOut bool
	)

	root.PersistentFlags().StringVarP(&server, "server", "s", "http://127.0.0.1:8555/jsonrpc", "daemon endpoint URL")
	root.PersistentFlags().DurationVarP(&timeout, "timeout", "t", 2*time.Second, "command timeout")
	root.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output json")

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if env := os.Getenv("GRAMO_SERVER"); env != "" && !cmd.Flags().Changed("server") {
			server = env
		}
		var printer output.Printer
		if jsonOut {
			printer = output.JSONPrinter{}
		} else {
			printer = output.HumanPrinter{}
		}
		cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, &app{
			client:  client.New(server, timeout),
			printer: printer,
			timeout: timeout,
		}))
	}

	root.AddCommand(statusCommand())
	root.AddCommand(playCommand())
	root.AddCommand(pauseCommand())
	root.AddCommand(stopCommand())
	root.AddCommand(seekCommand())
	root.AddCommand(nextCommand())
	root.AddCommand(prevCommand())
	root.AddCommand(gotoCommand())
	root.AddCommand(volumeCommand())
	root.AddCommand(queueCommand())
	root.AddCommand(libraryCommand())
	root.AddCommand(playlistCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
