package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"coreselect/internal/shared/telemetry"
	"coreselect/internal/wizard"
)

var errQuit = errors.New("quit")

type wizardRunner struct {
	session  *wizard.Session
	prompter Prompter
	out      io.Writer
}

// run walks the user from Budget to Results. It returns nil when the user
// quits or aborts a form.
func (r *wizardRunner) run(ctx context.Context) error {
	r.session.Start()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		step, ok := r.session.Current()
		if !ok {
			r.session.Start()
			continue
		}
		fmt.Fprintln(r.out, renderSidebar(r.session))

		if step.ID == wizard.StepResults {
			if res, ok := r.session.Store().Recommendation(); ok {
				fmt.Fprintln(r.out, renderResult(res))
			}
			return nil
		}

		err := r.screen(ctx, step)
		switch {
		case err == nil:
		case errors.Is(err, errQuit) || aborted(err):
			return nil
		case isRecoverable(err):
			fmt.Fprintln(r.out, renderError(err))
		default:
			return err
		}
	}
}

func (r *wizardRunner) screen(ctx context.Context, step wizard.Step) error {
	store := r.session.Store()
	switch step.ID {
	case wizard.StepBudget:
		v, err := r.prompter.Budget(store.Budget())
		if err != nil {
			return err
		}
		_, err = r.session.SubmitBudget(v)
		return err
	case wizard.StepPriorities:
		list, err := r.prompter.Priorities(wizard.AvailablePriorities(), store.Priorities())
		if err != nil {
			return err
		}
		_, err = r.session.SubmitPriorities(list)
		return err
	case wizard.StepGaming:
		want, playing, err := r.prompter.Games(store.WantToPlayGames(), store.CurrentlyPlayingGames())
		if err != nil {
			return err
		}
		_, err = r.session.SubmitGames(want, playing)
		return err
	case wizard.StepReview:
		return r.review(ctx)
	}
	return fmt.Errorf("no screen for step %q", step.Name)
}

func (r *wizardRunner) review(ctx context.Context) error {
	choice, err := r.prompter.Review(renderSummary(r.session.Store().Answers()))
	if err != nil {
		return err
	}
	switch choice {
	case ReviewSubmit:
		fmt.Fprintln(r.out, "Finding your build...")
		_, err := r.session.RequestRecommendation(ctx)
		if errors.Is(err, wizard.ErrStale) {
			return nil
		}
		if err != nil {
			telemetry.Warn("wizard.recommend_failed", map[string]any{"error": err})
		}
		return err
	case ReviewEdit:
		_, err := r.session.Visit("/")
		return err
	case ReviewStartOver:
		r.session.Store().Reset()
		_, err := r.session.Visit("/")
		return err
	default:
		return errQuit
	}
}

// isRecoverable reports errors the user can fix by answering again or retrying.
func isRecoverable(err error) bool {
	var vErr *wizard.ValidationError
	if errors.As(err, &vErr) {
		return true
	}
	if errors.Is(err, wizard.ErrStepLocked) || errors.Is(err, wizard.ErrStepNotApplicable) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded) || isClientError(err)
}
