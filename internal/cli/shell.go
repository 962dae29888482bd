package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/printq/internal/journal"
	"github.com/roach88/printq/internal/levels"
	"github.com/roach88/printq/internal/queue"
)

// JobQueue is the part of the queue engine the shell drives.
// *queue.PrintQueue and *queue.Locked both satisfy it.
type JobQueue interface {
	Insert(job queue.Job)
	ExtractMin() (queue.Job, bool)
	SnapshotOrdered() []queue.Job
	RenderTree() string
}

// Recorder receives one event per shell operation.
type Recorder interface {
	Record(ctx context.Context, e journal.Event) (int64, error)
}

// Menu choices.
const (
	choiceSubmit = "1"
	choiceList   = "2"
	choicePop    = "3"
	choiceExit   = "4"
)

const menu = `
=== Fila de Impressão ===
1. Enviar documento
2. Ver fila de impressão
3. Imprimir próximo documento
4. Sair
`

// Shell is the interactive print queue menu.
//
// It owns no queue state of its own: every action goes through JobQueue,
// and bad input is reported and dropped without touching the queue.
type Shell struct {
	Queue    JobQueue
	Catalog  *levels.Catalog
	In       io.Reader
	Out      io.Writer
	Recorder Recorder // optional
	Session  string
	Logger   *slog.Logger // optional
}

// Run loops over the menu until the user picks exit, the input ends, or
// ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	in := bufio.NewScanner(s.In)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.Out, menu)
		choice, ok := s.prompt(in, "Escolha uma opção: ")
		if !ok {
			s.farewell()
			return in.Err()
		}

		switch strings.TrimSpace(choice) {
		case choiceSubmit:
			if !s.submit(ctx, in) {
				s.farewell()
				return in.Err()
			}
		case choiceList:
			s.list(ctx)
		case choicePop:
			s.pop(ctx)
		case choiceExit:
			s.farewell()
			return nil
		default:
			fmt.Fprintln(s.Out, "Opção inválida. Tente novamente.")
		}
	}
}

// prompt writes the question and reads one line. ok is false at end of input.
func (s *Shell) prompt(in *bufio.Scanner, question string) (string, bool) {
	fmt.Fprint(s.Out, question)
	if !in.Scan() {
		fmt.Fprintln(s.Out)
		return "", false
	}
	return strings.TrimRight(in.Text(), "\r"), true
}

// submit reads a document name and priority. It returns false only when
// input ran out mid-way.
func (s *Shell) submit(ctx context.Context, in *bufio.Scanner) bool {
	name, ok := s.prompt(in, "Nome do documento: ")
	if !ok {
		return false
	}
	name = norm.NFC.String(name)

	text, ok := s.prompt(in, s.Catalog.Prompt())
	if !ok {
		return false
	}

	priority, err := s.Catalog.Parse(text)
	if err != nil {
		s.Logger.Debug("rejected priority", "input", text, "error", err)
		fmt.Fprintln(s.Out, s.Catalog.InvalidMessage())
		return true
	}

	job := queue.Job{Name: name, Priority: priority}
	s.Queue.Insert(job)
	s.record(ctx, journal.Event{Action: journal.ActionSubmit, Name: job.Name, Priority: job.Priority})

	fmt.Fprintf(s.Out, "Documento '%s' adicionado com prioridade %d.\n", job.Name, job.Priority)
	return true
}

func (s *Shell) list(ctx context.Context) {
	jobs := s.Queue.SnapshotOrdered()
	s.record(ctx, journal.Event{Action: journal.ActionList})

	if len(jobs) == 0 {
		fmt.Fprintln(s.Out, "Fila vazia.")
		return
	}

	fmt.Fprint(s.Out, formatOrder(jobs))
	fmt.Fprintln(s.Out, "\nRepresentação da Heap:")
	fmt.Fprintln(s.Out, s.Queue.RenderTree())
	s.record(ctx, journal.Event{Action: journal.ActionTree})
}

func (s *Shell) pop(ctx context.Context) {
	job, ok := s.Queue.ExtractMin()
	if !ok {
		s.record(ctx, journal.Event{Action: journal.ActionPop, Empty: true})
		fmt.Fprintln(s.Out, "Nenhum documento para imprimir.")
		return
	}

	s.record(ctx, journal.Event{Action: journal.ActionPop, Name: job.Name, Priority: job.Priority})
	fmt.Fprintf(s.Out, "Imprimindo: %s (prioridade %d)\n", job.Name, job.Priority)
}

func (s *Shell) farewell() {
	fmt.Fprintln(s.Out, "Encerrando o sistema de fila de impressão.")
}

// record journals an operation. Journal failures are logged, never shown
// to the user, and never undo the queue operation.
func (s *Shell) record(ctx context.Context, e journal.Event) {
	if s.Recorder == nil {
		return
	}
	e.Session = s.Session
	seq, err := s.Recorder.Record(ctx, e)
	if err != nil {
		s.Logger.Warn("failed to journal operation", "action", e.Action, "error", err)
		return
	}
	s.Logger.Debug("journaled", "seq", seq, "action", e.Action, "name", e.Name, "priority", e.Priority)
}

// formatOrder renders the ordered listing shared by the shell and plan.
func formatOrder(jobs []queue.Job) string {
	var sb strings.Builder
	sb.WriteString("\nOrdem de impressão (ordenada por prioridade e ordem de chegada):\n")
	for _, job := range jobs {
		fmt.Fprintf(&sb, "- %s (prioridade %d)\n", job.Name, job.Priority)
	}
	return sb.String()
}

// NewShellCommand creates the shell command.
func NewShellCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Open the interactive print queue menu",
		Long: `Open the interactive print queue menu.

Documents are submitted with a name and one of the configured priority
levels (by default 1=Urgente, 2=Normal). The queue lives in memory and is
gone when the shell exits.

Example:
  printq shell
  printq shell --levels ./levels.cue --verbose`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(rootOpts, cmd)
		},
	}
}

func runShell(opts *RootOptions, cmd *cobra.Command) error {
	catalog, err := loadCatalog(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load priority levels", err)
	}

	j, err := journal.Open(":memory:")
	if err != nil {
		return WrapExitError(ExitFailure, "failed to open journal", err)
	}
	defer func() {
		if closeErr := j.Close(); closeErr != nil {
			slog.Error("error closing journal", "error", closeErr)
		}
	}()

	session := sessionGenerator(opts).Generate()
	logger := slog.Default().With("session", session)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	shell := &Shell{
		Queue:    queue.New(),
		Catalog:  catalog,
		In:       cmd.InOrStdin(),
		Out:      cmd.OutOrStdout(),
		Recorder: j,
		Session:  session,
		Logger:   logger,
	}

	logger.Info("shell started", "levels", len(catalog.Levels()))
	if err := shell.Run(ctx); err != nil {
		return WrapExitError(ExitFailure, "shell error", err)
	}

	submitted, _ := j.Count(ctx, session, journal.ActionSubmit)
	printed, _ := j.Count(ctx, session, journal.ActionPop)
	logger.Info("shell stopped", "submitted", submitted, "pops", printed)
	return nil
}
