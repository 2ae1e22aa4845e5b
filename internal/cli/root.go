// Package cli implements the sajumatch commands.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/araddon/dateparse"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"saju-match/internal/config"
	"saju-match/internal/core"
	"saju-match/internal/logging"
	"saju-match/internal/metrics"
)

var (
	cfgPath    string
	formatFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "sajumatch",
	Short: "Saju compatibility scoring",
	Long:  "Computes four-pillar vectors from birth instants and scores the compatibility of two people.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "Config file (defaults apply when it does not exist)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

// kst is the zone birth instants are read in when the input carries none.
var kst = time.FixedZone("KST", 9*60*60)

type session struct {
	cfg    config.Config
	logger *logging.Logger
	svc    *core.Service
	closer io.Closer
}

func openSession() (*session, error) {
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger := logging.New(cfg.Logging.JSON)
	svc, closer, err := core.Build(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, logger: logger, svc: svc, closer: closer}, nil
}

// Close releases the cache and writes the metrics textfile when configured.
func (s *session) Close() {
	if err := s.closer.Close(); err != nil {
		s.logger.Warn("cache close failed", logging.Field{Key: "err", Val: err})
	}
	if path := s.cfg.Metrics.Textfile; path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			s.logger.Warn("metrics textfile write failed", logging.Field{Key: "path", Val: path}, logging.Field{Key: "err", Val: err})
		}
	}
}

// parseInstant accepts any layout dateparse understands. Inputs without a
// zone are read as Korean standard time.
func parseInstant(s string) (time.Time, error) {
	t, err := dateparse.ParseIn(s, kst)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(kst), nil
}

func printOutput(v any, tpl string, values map[string]string) error {
	switch formatFlag {
	case "json":
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
	case "text":
		fmt.Println(renderTemplate(tpl, values))
	default:
		return fmt.Errorf("unknown format %q", formatFlag)
	}
	return nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
