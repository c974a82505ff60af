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

package main

import (
	"os"
	"strings"
	"text/template"

	"github.com/sboehler/gledger/cmd"
)

type config struct {
	ExampleFile string
	Commands    map[string]string
}

func main() {
	c, err := createConfig()
	if err != nil {
		panic(err)
	}
	err = generate(c)
	if err != nil {
		panic(err)
	}
}

func createConfig() (*config, error) {
	var c = &config{
		Commands: make(map[string]string),
	}
	content, err := os.ReadFile("doc/example.yaml")
	if err != nil {
		return nil, err
	}
	c.ExampleFile = string(content)

	c.Commands["help"] = run([]string{"--help"})
	c.Commands["HelpGeneralLedger"] = run([]string{"general-ledger", "--help"})
	c.Commands["GeneralLedger"] = run([]string{"general-ledger",
		"--color=false", "doc/example.yaml",
	})
	c.Commands["GeneralLedgerCurrency"] = run([]string{"general-ledger",
		"--color=false", "--currency", "--from", "2024-01-01", "--to", "2024-03-31", "doc/example.yaml",
	})
	c.Commands["GeneralLedgerCSV"] = run([]string{"general-ledger",
		"--format", "csv", "doc/example.yaml",
	})
	c.Commands["Check"] = run([]string{"check", "--color=false", "doc/example.yaml"})
	return c, nil
}

func generate(c *config) error {
	tpl, err := template.ParseFiles("doc/README.md")
	if err != nil {
		return err
	}
	if err = tpl.Execute(os.Stdout, c); err != nil {
		return err
	}
	return nil
}

func run(args []string) string {
	var c = cmd.CreateCmd("development")
	c.SetArgs(args)
	var b strings.Builder
	b.WriteString("$ gledger")
	for _, a := range args {
		b.WriteRune(' ')
		b.WriteString(a)
	}
	b.WriteRune('\n')
	c.SetOut(&b)
	c.Execute()
	return b.String()
}
