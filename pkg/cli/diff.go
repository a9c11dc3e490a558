package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/platinummonkey/apiman/pkg/docs/diff"
)

// ErrBreakingChanges is returned by the diff command when the new
// description breaks callers of the old one
var ErrBreakingChanges = errors.New("breaking changes detected")

func newDiffCommand(streams Streams) *Command {
	return &Command{
		Name:        "diff",
		Description: "Compare two API descriptions and report breaking changes",
		Run: func(ctx context.Context, args []string) error {
			return runDiff(ctx, streams, args)
		},
	}
}

func runDiff(ctx context.Context, streams Streams, args []string) error {
	sess, err := newSession(streams, "diff")
	if err != nil {
		return err
	}

	flags := newFlagSet("diff", streams)
	format := flags.String("format", "text", "Output format (text or json)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 2 {
		return fmt.Errorf("usage: apiman diff [-format text|json] <old> <new>")
	}
	if *format != "text" && *format != "json" {
		return fmt.Errorf("unknown format: %s", *format)
	}

	from, err := sess.load(ctx, []string{flags.Arg(0)}, nil)
	if err != nil {
		return err
	}
	to, err := sess.load(ctx, []string{flags.Arg(1)}, nil)
	if err != nil {
		return err
	}

	result, err := diff.NewAnalyzer().Compare(from, to)
	if err != nil {
		return err
	}

	if *format == "json" {
		encoder := json.NewEncoder(streams.Out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return fmt.Errorf("failed to encode diff: %w", err)
		}
	} else {
		for _, change := range result.Changes {
			fmt.Fprintf(streams.Out, "%-12s %s: %s\n", change.Severity, change.Location, change.Description)
			if change.MigrationTip != "" {
				fmt.Fprintf(streams.Out, "%-12s %s\n", "", change.MigrationTip)
			}
		}
		fmt.Fprintf(streams.Out, "%d breaking, %d warning, %d non-breaking\n",
			result.Count(diff.Breaking), result.Count(diff.Warning), result.Count(diff.NonBreaking))
	}

	if result.HasBreaking() {
		return ErrBreakingChanges
	}
	return nil
}
