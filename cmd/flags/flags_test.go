package flags

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/sboehler/gledger/lib/common/date"
	"github.com/sboehler/gledger/lib/ledger"
)

func TestFormatFlag(t *testing.T) {
	tests := []struct {
		set, path string
		want      Format
	}{
		{"", "", Text},
		{"", "report.CSV", CSV},
		{"", "report.xlsx", XLSX},
		{"", "report.txt", Text},
		{"csv", "report.xlsx", CSV},
		{"text", "", Text},
	}
	for _, test := range tests {
		var f FormatFlag
		if test.set != "" {
			if err := f.Set(test.set); err != nil {
				t.Fatalf("f.Set(%q) returned unexpected error: %v", test.set, err)
			}
		}
		if got := f.ValueFor(test.path); got != test.want {
			t.Errorf("ValueFor(%q) with %q = %v, want %v", test.path, test.set, got, test.want)
		}
	}
	var f FormatFlag
	if err := f.Set("pdf"); err == nil {
		t.Errorf("f.Set(pdf) returned no error")
	}
}

func TestParamsFlags(t *testing.T) {
	var (
		pf ParamsFlags
		c  = &cobra.Command{Use: "test", Run: func(*cobra.Command, []string) {}}
		p  = ledger.Params{
			DateFrom:   date.Date(2024, 1, 1),
			DateTo:     date.Date(2024, 12, 31),
			Centralize: true,
		}
	)
	pf.Setup(c)
	c.SetArgs([]string{"--to", "2024-06-30", "--target-move", "all"})
	if err := c.Execute(); err != nil {
		t.Fatalf("c.Execute() returned unexpected error: %v", err)
	}

	pf.Apply(c, &p)

	want := ledger.Params{
		DateFrom:   date.Date(2024, 1, 1),
		DateTo:     date.Date(2024, 6, 30),
		TargetMove: ledger.All,
		Centralize: true,
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Fatalf("unexpected params (-want/+got):\n%s", diff)
	}
}

func TestInvalidFlagValues(t *testing.T) {
	var (
		d  DateFlag
		tm TargetMoveFlag
		e  EncodingFlag
	)
	if err := d.Set("2024-13-01"); err == nil {
		t.Errorf("DateFlag.Set() returned no error")
	}
	if err := tm.Set("draft"); err == nil {
		t.Errorf("TargetMoveFlag.Set() returned no error")
	}
	if err := e.Set("ebcdic"); err == nil {
		t.Errorf("EncodingFlag.Set() returned no error")
	}
}

func TestLogFlags(t *testing.T) {
	var (
		buf bytes.Buffer
		lf  = LogFlags{level: "info", format: "json"}
	)

	log, err := lf.Logger(&buf)
	if err != nil {
		t.Fatalf("lf.Logger() returned unexpected error: %v", err)
	}
	log.Debug().Msg("hidden")
	log.Info().Str("account", "1000").Msg("rendered")

	if got := buf.String(); !bytes.Contains(buf.Bytes(), []byte(`"account":"1000"`)) || bytes.Contains(buf.Bytes(), []byte("hidden")) {
		t.Errorf("unexpected log output %q", got)
	}
	for _, lf := range []LogFlags{{level: "loud", format: "json"}, {level: "info", format: "xml"}} {
		if _, err := lf.Logger(&buf); err == nil {
			t.Errorf("%+v: lf.Logger() returned no error", lf)
		}
	}
}
