package cli

import (
	"github.com/spf13/cobra"
)

const sajuTemplate = `${pillars}
year ${year}  month ${month}  day ${day}
indices ${ints}`

func init() {
	cmd := &cobra.Command{
		Use:   "saju",
		Short: "Show the pillars of a birth instant",
		Run:   runSaju,
	}

	cmd.Flags().String("birth", "", "Birth date and time (required)")
	cmd.MarkFlagRequired("birth")

	RootCmd.AddCommand(cmd)
}

func runSaju(cmd *cobra.Command, args []string) {
	raw, _ := cmd.Flags().GetString("birth")
	birth, err := parseInstant(raw)
	if err != nil {
		exitErr("birth", err)
	}

	s, err := openSession()
	if err != nil {
		exitErr("init", err)
	}
	defer s.Close()

	v, err := s.svc.ComputeSajuVector(cmd.Context(), birth)
	if err != nil {
		s.Close()
		exitErr("saju", err)
	}
	if err := printOutput(v, sajuTemplate, vectorValues("", v)); err != nil {
		s.Close()
		exitErr("output", err)
	}
}
