// Package cmd implements the CLI application to read activity statements.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/cowwoc/capi/interactivebrokers"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package calls Register() to declare the subcommands, and Execute() on
// the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&summaryCmd{}, "reports")
	c.Register(&cashCmd{}, "reports")
	c.Register(&tradesCmd{}, "reports")
	c.Register(&forexCmd{}, "reports")
	c.Register(&transfersCmd{}, "reports")
	c.Register(&dividendsCmd{}, "reports")

	c.Register(&exportCmd{}, "export")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var statementFile = flag.String("statement", "statement.csv", "Path to the activity statement CSV file")

// loadStatement loads the statement the whole invocation works on.
func loadStatement() (*interactivebrokers.Statement, error) {
	return interactivebrokers.Load(*statementFile)
}

// fail prints the error and returns the failure exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}
