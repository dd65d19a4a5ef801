package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"coreselect/internal/wizard"
)

// ReviewChoice is what the user picked on the review screen.
type ReviewChoice int

const (
	ReviewSubmit ReviewChoice = iota
	ReviewEdit
	ReviewStartOver
	ReviewQuit
)

// Prompter collects answers for each wizard screen.
type Prompter interface {
	Budget(current float64) (float64, error)
	Priorities(available, current []string) ([]string, error)
	Games(want, playing []string) ([]string, []string, error)
	Review(summary string) (ReviewChoice, error)
}

// huhPrompter renders the screens as huh forms.
type huhPrompter struct{}

func (huhPrompter) Budget(current float64) (float64, error) {
	raw := ""
	if current > 0 {
		raw = strconv.FormatFloat(current, 'f', -1, 64)
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What is your budget?").
				Description(fmt.Sprintf("Between $%d and $%d", wizard.MinBudget, wizard.MaxBudget)).
				Placeholder("1500").
				Value(&raw).
				Validate(func(s string) error {
					v, err := parseBudget(s)
					if err != nil {
						return err
					}
					return wizard.ValidateBudget(v)
				}),
		),
	)
	if err := form.Run(); err != nil {
		return 0, fmt.Errorf("prompt cancelled: %w", err)
	}
	return parseBudget(raw)
}

func (huhPrompter) Priorities(available, current []string) ([]string, error) {
	picks := make([]string, wizard.MaxPriorities)
	copy(picks, current)

	labels := []string{"Top priority", "Second priority (optional)", "Third priority (optional)"}
	fields := make([]huh.Field, 0, len(picks))
	for i := range picks {
		opts := make([]huh.Option[string], 0, len(available)+1)
		if i > 0 {
			opts = append(opts, huh.NewOption("None", ""))
		}
		opts = append(opts, huh.NewOptions(available...)...)
		fields = append(fields, huh.NewSelect[string]().
			Title(labels[i]).
			Options(opts...).
			Value(&picks[i]))
	}
	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return nil, fmt.Errorf("prompt cancelled: %w", err)
	}
	return rankedPicks(picks)
}

func (huhPrompter) Games(want, playing []string) ([]string, []string, error) {
	wantRaw := strings.Join(want, ", ")
	playingRaw := strings.Join(playing, ", ")
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Games you want to play (comma-separated, up to 3)").
				Value(&wantRaw).
				Validate(func(s string) error {
					return wizard.ValidateGames("wantToPlayGames", parseList(s))
				}),
			huh.NewInput().
				Title("Games you play now (comma-separated, up to 3)").
				Value(&playingRaw).
				Validate(func(s string) error {
					return wizard.ValidateGames("currentlyPlayingGames", parseList(s))
				}),
		),
	)
	if err := form.Run(); err != nil {
		return nil, nil, fmt.Errorf("prompt cancelled: %w", err)
	}
	return parseList(wantRaw), parseList(playingRaw), nil
}

func (huhPrompter) Review(summary string) (ReviewChoice, error) {
	choice := ReviewSubmit
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Review your answers").
				Description(summary),
			huh.NewSelect[ReviewChoice]().
				Options(
					huh.NewOption("Get my recommendation", ReviewSubmit),
					huh.NewOption("Edit answers", ReviewEdit),
					huh.NewOption("Start over", ReviewStartOver),
					huh.NewOption("Quit", ReviewQuit),
				).
				Value(&choice),
		),
	)
	if err := form.Run(); err != nil {
		return ReviewQuit, fmt.Errorf("prompt cancelled: %w", err)
	}
	return choice, nil
}

func parseBudget(s string) (float64, error) {
	clean := strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if clean == "" {
		return 0, &wizard.ValidationError{Field: "budget", Message: "Budget is required"}
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, &wizard.ValidationError{Field: "budget", Message: "Budget must be a number"}
	}
	return v, nil
}

func parseList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// rankedPicks drops trailing "None" slots. A gap before a later pick is
// rejected, since rank decides each priority's weight.
func rankedPicks(picks []string) ([]string, error) {
	var out []string
	gap := false
	for i, p := range picks {
		if p == "" {
			gap = true
			continue
		}
		if gap {
			return nil, &wizard.ValidationError{
				Field:   "priorities",
				Message: fmt.Sprintf("Choose priority %d before priority %d", len(out)+1, i+1),
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func aborted(err error) bool {
	return errors.Is(err, huh.ErrUserAborted)
}
