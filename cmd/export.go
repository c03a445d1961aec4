package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/cowwoc/capi/interactivebrokers"
	"github.com/google/subcommands"
)

type exportCmd struct {
	outputFile string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the parsed statement as JSON" }
func (*exportCmd) Usage() string {
	return `cas export [-o <file>]

  Parses the statement and writes it as a single JSON document, for
  downstream tooling. Writes to stdout by default.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputFile, "o", "", "File to write the JSON document to. Defaults to stdout.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	statement, err := loadStatement()
	if err != nil {
		return fail(err)
	}

	out := os.Stdout
	if c.outputFile != "" {
		out, err = os.Create(c.outputFile)
		if err != nil {
			return fail(fmt.Errorf("cannot create %q: %w", c.outputFile, err))
		}
		defer out.Close()
	}

	if err := interactivebrokers.EncodeStatement(out, statement); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
