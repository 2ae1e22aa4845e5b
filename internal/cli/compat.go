package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"saju-match/internal/core"
	"saju-match/internal/model"
)

const compatTemplate = `report ${id}
A (${a_gender}) ${a_pillars}: ${a_explain}
B (${b_gender}) ${b_pillars}: ${b_explain}
raw ${raw}  adjusted ${adjusted}  stress ${stress}  ${warning}`

func init() {
	cmd := &cobra.Command{
		Use:   "compat",
		Short: "Score the compatibility of two people",
		Run:   runCompat,
	}

	cmd.Flags().String("a", "", "Birth date and time of person A (required)")
	cmd.Flags().String("ga", "", "Gender of person A: M or F (required)")
	cmd.Flags().String("b", "", "Birth date and time of person B (required)")
	cmd.Flags().String("gb", "", "Gender of person B: M or F (required)")

	cmd.MarkFlagRequired("a")
	cmd.MarkFlagRequired("ga")
	cmd.MarkFlagRequired("b")
	cmd.MarkFlagRequired("gb")

	RootCmd.AddCommand(cmd)
}

func personFlags(cmd *cobra.Command, birthFlag, genderFlag string) (core.PersonInput, error) {
	raw, _ := cmd.Flags().GetString(birthFlag)
	g, _ := cmd.Flags().GetString(genderFlag)
	birth, err := parseInstant(raw)
	if err != nil {
		return core.PersonInput{}, err
	}
	gender, err := model.ParseGender(g)
	if err != nil {
		return core.PersonInput{}, err
	}
	return core.PersonInput{Birth: birth, Gender: gender}, nil
}

func runCompat(cmd *cobra.Command, args []string) {
	a, err := personFlags(cmd, "a", "ga")
	if err != nil {
		exitErr("person a", err)
	}
	b, err := personFlags(cmd, "b", "gb")
	if err != nil {
		exitErr("person b", err)
	}

	s, err := openSession()
	if err != nil {
		exitErr("init", err)
	}
	defer s.Close()

	rep, err := s.svc.ComputeCompatibility(cmd.Context(), a, b)
	if err != nil {
		s.Close()
		exitErr("compat", err)
	}

	values := merge(vectorValues("a_", rep.A.Vector), vectorValues("b_", rep.B.Vector), map[string]string{
		"id":        rep.ID,
		"a_gender":  rep.A.Gender.String(),
		"b_gender":  rep.B.Gender.String(),
		"a_explain": strings.Join(rep.A.Explanation, ", "),
		"b_explain": strings.Join(rep.B.Explanation, ", "),
		"raw":       num(rep.Bundle.Raw),
		"adjusted":  num(rep.Bundle.Adjusted),
		"stress":    num(rep.Bundle.Stress),
		"warning":   rep.Bundle.Warning.String(),
	})
	if err := printOutput(rep, compatTemplate, values); err != nil {
		s.Close()
		exitErr("output", err)
	}
}
