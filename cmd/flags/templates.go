package flags

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sboehler/gledger/lib/ledger"
)

// ParamsFlags manages the flags which override the report parameters of
// the data file.
type ParamsFlags struct {
	from, to   DateFlag
	targetMove TargetMoveFlag
	centralize bool
}

func (pf *ParamsFlags) Setup(cmd *cobra.Command) {
	cmd.Flags().Var(&pf.from, "from", "start of the reported period")
	cmd.Flags().Var(&pf.to, "to", "end of the reported period")
	cmd.Flags().Var(&pf.targetMove, "target-move", "posted or all entries")
	cmd.Flags().BoolVar(&pf.centralize, "centralize", false, "report centralized journals")
}

// Apply overrides p with the flags which have been set.
func (pf *ParamsFlags) Apply(cmd *cobra.Command, p *ledger.Params) {
	p.DateFrom = pf.from.ValueOr(p.DateFrom)
	p.DateTo = pf.to.ValueOr(p.DateTo)
	if cmd.Flags().Changed("target-move") {
		p.TargetMove = pf.targetMove.Value()
	}
	if cmd.Flags().Changed("centralize") {
		p.Centralize = pf.centralize
	}
}

// LogFlags manages the persistent logging flags.
type LogFlags struct {
	level, format string
}

func (lf *LogFlags) Setup(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&lf.level, "log-level", "warn", "debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&lf.format, "log-format", "console", "console or json")
}

// Logger creates a logger writing to w.
func (lf LogFlags) Logger(w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(lf.level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q", lf.level)
	}
	var out io.Writer
	switch lf.format {
	case "console":
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	case "json":
		out = w
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q, expected console or json", lf.format)
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
