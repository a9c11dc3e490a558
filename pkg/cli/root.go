package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Streams are the standard streams a command reads and writes
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process's standard streams
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Command represents a CLI command
type Command struct {
	Name        string
	Description string
	Run         func(ctx context.Context, args []string) error
	Subcommands map[string]*Command

	streams Streams
}

// NewRootCommand creates the root command
func NewRootCommand(streams Streams) *Command {
	root := &Command{
		Name:        "apiman",
		Description: "apiman - API reference generator",
		Subcommands: make(map[string]*Command),
		streams:     streams,
	}

	root.Subcommands["markdown"] = newMarkdownCommand(streams)
	root.Subcommands["man"] = newManCommand(streams)
	root.Subcommands["serve"] = newServeCommand(streams)
	root.Subcommands["diff"] = newDiffCommand(streams)

	return root
}

// Execute runs the command with the process arguments
func (c *Command) Execute(ctx context.Context) error {
	return c.ExecuteArgs(ctx, os.Args[1:])
}

// ExecuteArgs runs the command with args, the first naming the subcommand
func (c *Command) ExecuteArgs(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.usage()
	}

	switch strings.ToLower(args[0]) {
	case "-h", "--help", "help":
		return c.usage()
	}

	subcmd, ok := c.Subcommands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command: %s", args[0])
	}

	err := subcmd.Run(ctx, args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

// usage prints the command usage
func (c *Command) usage() error {
	names := make([]string, 0, len(c.Subcommands))
	for name := range c.Subcommands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(c.streams.Out, "Usage: %s <command> [args]\n\n", c.Name)
	fmt.Fprintf(c.streams.Out, "Commands:\n")
	for _, name := range names {
		fmt.Fprintf(c.streams.Out, "  %-15s %s\n", name, c.Subcommands[name].Description)
	}
	return nil
}

func newFlagSet(name string, streams Streams) *flag.FlagSet {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(streams.Err)
	return flags
}
