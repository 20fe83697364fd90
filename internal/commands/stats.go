package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/smsledger/internal/logging"
	"github.com/cleared-dev/smsledger/internal/model"
	"github.com/cleared-dev/smsledger/internal/store"
)

func newStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [directory]",
		Short: "Show counts of stored messages",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
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

			s, err := st.Stats(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Messages: %d\n", s.Messages)
			types := make([]string, 0, len(s.ByType))
			for t := range s.ByType {
				types = append(types, string(t))
			}
			sort.Strings(types)
			for _, t := range types {
				fmt.Fprintf(w, "  %-16s %d\n", t, s.ByType[model.MessageType(t)])
			}
			fmt.Fprintln(w, "Risk:")
			for _, lvl := range []model.RiskLevel{model.RiskNone, model.RiskLow, model.RiskMedium, model.RiskHigh} {
				fmt.Fprintf(w, "  %-16s %d\n", lvl, s.ByRisk[lvl])
			}
			fmt.Fprintf(w, "Transactions: %d\nFraud logs: %d\nPromotional: %d\n", s.Transactions, s.FraudLogs, s.Promotional)
			return nil
		},
	}
}

// openStore opens and migrates the project database.
func openStore(cmd *cobra.Command, p *project) (*store.Store, error) {
	st, err := store.Open(p.cfg.StorePath(p.root))
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(cmd.Context()); err != nil {
		_ = st.Close()
		return nil, err
	}
	log := logging.FromContext(cmd.Context())
	log.Debug().Str("path", st.Path()).Msg("opened store")
	return st, nil
}
