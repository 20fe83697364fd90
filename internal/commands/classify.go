package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/smsledger/internal/model"
)

func newClassifyCommand(a *app) *cobra.Command {
	var sender string
	var dir string
	var explain bool

	cmd := &cobra.Command{
		Use:   "classify <message>",
		Short: "Classify a single SMS and print the record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.project(cmd, dir)
			if err != nil {
				return err
			}
			c, err := p.classifier()
			if err != nil {
				return err
			}

			rec, rule := c.Explain(args[0], sender)
			p.log.Debug().
				Str("sender", sender).
				Str("rule", rule).
				Str("message_type", string(rec.MessageType)).
				Msg("classified message")

			var out any = rec
			if explain {
				out = struct {
					Rule   string                 `json:"rule"`
					Record model.ClassifiedRecord `json:"record"`
				}{rule, rec}
			}

			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding record: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().StringVar(&sender, "sender", "", "sender ID, e.g. VM-HDFCBK")
	cmd.Flags().StringVar(&dir, "dir", ".", "project directory")
	cmd.Flags().BoolVar(&explain, "explain", false, "include the deciding rule")

	return cmd
}
