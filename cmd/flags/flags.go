// Copyright 2021 Silvio Böhler
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package flags

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/sboehler/gledger/lib/common/date"
	"github.com/sboehler/gledger/lib/ledger"
)

// DateFlag manages a flag to determine a date.
type DateFlag time.Time

var _ pflag.Value = (*DateFlag)(nil)

func (tf DateFlag) String() string {
	return date.Format(tf.Value())
}

// Set implements pflag.Value.
func (tf *DateFlag) Set(v string) error {
	t, err := date.Parse(v)
	if err != nil {
		return err
	}
	*tf = (DateFlag)(t)
	return nil
}

// Type implements pflag.Value.
func (tf DateFlag) Type() string {
	return "YYYY-MM-DD"
}

// Value returns the flag value.
func (tf DateFlag) Value() time.Time {
	return time.Time(tf)
}

// ValueOr returns the flag value, or t if the flag is not set.
func (tf DateFlag) ValueOr(t time.Time) time.Time {
	v := tf.Value()
	if v.IsZero() {
		return t
	}
	return v
}

// Format is an output format.
type Format int

const (
	// Text is a plain text table.
	Text Format = iota
	// CSV is comma-separated values.
	CSV
	// XLSX is an Excel workbook.
	XLSX
)

func (f Format) String() string {
	switch f {
	case Text:
		return "text"
	case CSV:
		return "csv"
	case XLSX:
		return "xlsx"
	}
	return ""
}

// FormatFlag manages a flag to select the output format.
type FormatFlag struct {
	val Format
	set bool
}

var _ pflag.Value = (*FormatFlag)(nil)

func (ff FormatFlag) String() string {
	return ff.val.String()
}

// Set implements pflag.Value.
func (ff *FormatFlag) Set(v string) error {
	switch strings.ToLower(v) {
	case "text", "txt":
		ff.val = Text
	case "csv":
		ff.val = CSV
	case "xlsx":
		ff.val = XLSX
	default:
		return fmt.Errorf("invalid format %q, expected text, csv or xlsx", v)
	}
	ff.set = true
	return nil
}

// Type implements pflag.Value.
func (ff FormatFlag) Type() string {
	return "text|csv|xlsx"
}

// ValueFor returns the format. If the flag has not been set, the format is
// inferred from the extension of the output path.
func (ff FormatFlag) ValueFor(path string) Format {
	if ff.set {
		return ff.val
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSV
	case ".xlsx":
		return XLSX
	}
	return Text
}

// TargetMoveFlag manages a flag to select the target moves.
type TargetMoveFlag struct {
	val ledger.TargetMove
}

var _ pflag.Value = (*TargetMoveFlag)(nil)

func (tf TargetMoveFlag) String() string {
	return tf.val.String()
}

// Set implements pflag.Value.
func (tf *TargetMoveFlag) Set(v string) error {
	tm, err := ledger.ParseTargetMove(v)
	if err != nil {
		return err
	}
	tf.val = tm
	return nil
}

// Type implements pflag.Value.
func (tf TargetMoveFlag) Type() string {
	return "posted|all"
}

// Value returns the flag value.
func (tf TargetMoveFlag) Value() ledger.TargetMove {
	return tf.val
}

// EncodingFlag manages a flag to select the input encoding.
type EncodingFlag struct {
	val ledger.Encoding
}

var _ pflag.Value = (*EncodingFlag)(nil)

func (ef EncodingFlag) String() string {
	return ef.val.String()
}

// Set implements pflag.Value.
func (ef *EncodingFlag) Set(v string) error {
	enc, err := ledger.ParseEncoding(v)
	if err != nil {
		return err
	}
	ef.val = enc
	return nil
}

// Type implements pflag.Value.
func (ef EncodingFlag) Type() string {
	return "<encoding>"
}

// Value returns the flag value.
func (ef EncodingFlag) Value() ledger.Encoding {
	return ef.val
}
