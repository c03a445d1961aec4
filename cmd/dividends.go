package cmd

import (
	"context"
	"flag"

	"github.com/cowwoc/capi/renderer"
	"github.com/google/subcommands"
)

type dividendsCmd struct{}

func (*dividendsCmd) Name() string     { return "dividends" }
func (*dividendsCmd) Synopsis() string { return "list the dividends and withheld taxes" }
func (*dividendsCmd) Usage() string {
	return `cas dividends

  Lists the cash dividends paid out and the taxes withheld on them.
`
}

func (c *dividendsCmd) SetFlags(f *flag.FlagSet) {}

func (c *dividendsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	statement, err := loadStatement()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.DividendsMarkdown(statement.Dividends))
	return subcommands.ExitSuccess
}
