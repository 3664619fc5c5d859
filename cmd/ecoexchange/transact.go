package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vbonduro/ecoexchange/internal/domain"
)

func newTransactCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transact [json]",
		Short: "Record a completed transaction with a timestamp and hash",
		Long: `transact appends a JSON object to the transactions document, stamped with
the current time and a SHA-256 hash of the object and the timestamp. The object
is read from the argument, or from stdin when no argument is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var src io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				src = strings.NewReader(args[0])
			}

			var data domain.Fields
			if err := json.NewDecoder(src).Decode(&data); err != nil {
				return fmt.Errorf("transaction must be a json object: %w", err)
			}

			a, err := c.newApp(cmd.Context())
			if err != nil {
				return err
			}
			tx, err := a.service.RecordTransaction(cmd.Context(), data)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), tx)
		},
	}
	return cmd
}
