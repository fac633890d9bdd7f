package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/venturoid/driverproxy/connurl"
	"github.com/venturoid/driverproxy/logger"
)

type buildOptions struct {
	protocol   string
	host       string
	names      connurl.PropertyNames
	properties []string
	reveal     bool
}

func newBuildCmd() *cobra.Command {
	opts := buildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Print the connection URL for a protocol, host and properties",
		Example: `  connurl build --protocol postgres:// --host db:5432 -p database=orders -p user=app
  connurl build --protocol mysql --server-key host --port-key port -p host=10.0.0.1 -p port=3306`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			url, err := opts.build()
			if err != nil {
				return err
			}

			if !opts.reveal {
				url = logger.RedactURL(url, opts.names.User, opts.names.Password)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), url)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.protocol, "protocol", "", "Protocol identifier, for example postgres:// or mysql")
	flags.StringVar(&opts.host, "host", "", "Explicit host[:port], takes precedence over the server and port properties")
	flags.StringVar(&opts.names.Server, "server-key", "", "Property holding the server name")
	flags.StringVar(&opts.names.Port, "port-key", "", "Property holding the port")
	flags.StringVar(&opts.names.Database, "database-key", "", "Property name removed from the query as the database")
	flags.StringVar(&opts.names.User, "user-key", "", "Query name for the user property")
	flags.StringVar(&opts.names.Password, "password-key", "", "Query name for the password property")
	flags.StringArrayVarP(&opts.properties, "property", "p", nil, "Connection property key=value, repeatable, kept in order")
	flags.BoolVar(&opts.reveal, "reveal", false, "Print credentials instead of masking them")

	return cmd
}

func (o buildOptions) build() (string, error) {
	props, err := connurl.ParseProperties(o.properties)
	if err != nil {
		return "", err
	}

	var host connurl.HostSpec
	if o.host != "" {
		h, err := connurl.ParseHost(o.host)
		if err != nil {
			return "", err
		}
		host = h
	}

	return connurl.Build(o.protocol, host, o.names, props)
}
