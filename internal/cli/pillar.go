package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "pillar",
		Short: "Look up the pillars of a calendar date through the cache",
		Run:   runPillar,
	}

	cmd.Flags().String("date", "", "Solar date, e.g. 2001-05-20 (required)")
	cmd.MarkFlagRequired("date")

	RootCmd.AddCommand(cmd)
}

func runPillar(cmd *cobra.Command, args []string) {
	raw, _ := cmd.Flags().GetString("date")
	d, err := parseInstant(raw)
	if err != nil {
		exitErr("date", err)
	}

	s, err := openSession()
	if err != nil {
		exitErr("init", err)
	}
	defer s.Close()

	v, err := s.svc.DayPillar(cmd.Context(), d.Year(), int(d.Month()), d.Day())
	if err != nil {
		s.Close()
		exitErr("pillar", err)
	}
	if err := printOutput(v, sajuTemplate, vectorValues("", v)); err != nil {
		s.Close()
		exitErr("output", err)
	}
}
