// Command apfinger looks up WebFinger and ActivityPub actor documents.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/totegamma/twitton/client"
	"github.com/totegamma/twitton/internal/infra/providers"
)

func main() {
	root, err := newRootCmd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() (*cobra.Command, error) {
	v := viper.New()
	v.SetEnvPrefix("APFINGER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:          "apfinger",
		Short:        "Discover federated identities",
		SilenceUsage: true,
	}
	root.PersistentFlags().Duration("timeout", 3*time.Second, "request timeout")
	root.PersistentFlags().String("scheme", "https", "scheme used to reach remote nodes")
	root.PersistentFlags().String("user-agent", "", "User-Agent header")
	if err := v.BindPFlags(root.PersistentFlags()); err != nil {
		return nil, errors.Wrap(err, "failed to bind flags")
	}

	newClient := func() *client.Client {
		return providers.NewClient(client.Options{
			Timeout:   v.GetDuration("timeout"),
			Scheme:    v.GetString("scheme"),
			UserAgent: v.GetString("user-agent"),
		})
	}

	root.AddCommand(newWebfingerCmd(newClient), newActorCmd(newClient))
	return root, nil
}

func newWebfingerCmd(newClient func() *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "webfinger <user@domain>",
		Short: "Print the WebFinger document for a handle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := newClient().Webfinger(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), doc)
		},
	}
}

func newActorCmd(newClient func() *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "actor <user@domain | url>",
		Short: "Print the actor document for a handle or actor URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			target := args[0]

			if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
				actor, err := c.Actor(cmd.Context(), target)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), actor)
			}

			actor, err := c.Lookup(cmd.Context(), target)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), actor)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
