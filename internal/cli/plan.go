package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/printq/internal/queue"
)

// PlanResult is the outcome of the plan command.
type PlanResult struct {
	Order []queue.Job `json:"order"`
	Tree  string      `json:"tree"`
}

// String renders the plan the way the shell's list option does.
func (p PlanResult) String() string {
	if len(p.Order) == 0 {
		return "Fila vazia.\n"
	}
	return formatOrder(p.Order) + "\nRepresentação da Heap:\n" + p.Tree
}

// NewPlanCommand creates the plan command.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <name:priority>...",
		Short: "Show print order and heap layout for a batch of jobs",
		Long: `Load the given jobs into a fresh queue, in argument order, and show
the order they would print in together with the heap layout.

Any integer priority is accepted here; lower prints first.

Examples:
  printq plan A:2 B:1 C:1
  printq plan report:0 "slides v2:3" --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(rootOpts, args, cmd)
		},
	}
}

func runPlan(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	q := queue.New()
	for _, arg := range args {
		job, err := parseJobArg(arg)
		if err != nil {
			_ = formatter.Error(ErrCodeInvalidJob, err.Error(), map[string]string{"arg": arg})
			return WrapExitError(ExitCommandError, "invalid job", err)
		}
		q.Insert(job)
		formatter.VerboseLog("queued %s", job)
	}

	return formatter.Success(PlanResult{
		Order: q.SnapshotOrdered(),
		Tree:  q.RenderTree(),
	})
}

// parseJobArg splits "name:priority" on the last colon, so names may
// contain colons themselves.
func parseJobArg(arg string) (queue.Job, error) {
	i := strings.LastIndex(arg, ":")
	if i <= 0 {
		return queue.Job{}, fmt.Errorf("job %q must look like name:priority", arg)
	}

	priority, err := strconv.Atoi(arg[i+1:])
	if err != nil {
		return queue.Job{}, fmt.Errorf("job %q has a non-integer priority", arg)
	}

	return queue.Job{Name: arg[:i], Priority: priority}, nil
}
