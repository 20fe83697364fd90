package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/smsledger/internal/export"
	"github.com/cleared-dev/smsledger/internal/id"
	"github.com/cleared-dev/smsledger/internal/model"
)

func newExportCommand(a *app) *cobra.Command {
	var dir string
	var messageType string
	var recordID string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write stored records to a .csv or .jsonl file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			match, err := recordMatcher(recordID)
			if err != nil {
				return err
			}

			p, err := a.project(cmd, dir)
			if err != nil {
				return err
			}

			st, err := openStore(cmd, p)
			if err != nil {
				return err
			}
			defer st.Close()

			recs, err := st.Records(cmd.Context())
			if err != nil {
				return err
			}
			recs = filter(recs, func(c model.Classified) bool {
				return match(c) && (messageType == "" || c.Record.MessageType == model.MessageType(messageType))
			})

			if err := export.WriteFile(args[0], recs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", len(recs), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory")
	cmd.Flags().StringVar(&messageType, "type", "", "only export this message type")
	cmd.Flags().StringVar(&recordID, "id", "", "only export the record with this ID or message fingerprint")

	return cmd
}

// recordMatcher selects records by record ID or message fingerprint. An
// empty value matches everything.
func recordMatcher(v string) (func(model.Classified) bool, error) {
	switch {
	case v == "":
		return func(model.Classified) bool { return true }, nil
	case id.IsFingerprint(strings.ToLower(v)):
		fp := strings.ToLower(v)
		return func(c model.Classified) bool { return c.Fingerprint == fp }, nil
	}
	rid, err := id.ParseRecordID(v)
	if err != nil {
		return nil, err
	}
	return func(c model.Classified) bool { return c.ID == rid }, nil
}

func filter(recs []model.Classified, keep func(model.Classified) bool) []model.Classified {
	var out []model.Classified
	for _, r := range recs {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
