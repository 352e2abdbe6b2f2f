package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/xob0t/fluf/pkg/style"
)

// ErrCancelled is returned when the user aborts the prompt.
var ErrCancelled = errors.New("selection cancelled")

// Picker chooses one style from a list. The interactive implementation is
// swapped out in tests.
type Picker interface {
	Pick(ctx context.Context, styles []style.Style) (style.Style, error)
}

type surveyPicker struct{}

func (surveyPicker) Pick(ctx context.Context, styles []style.Style) (style.Style, error) {
	if err := ctx.Err(); err != nil {
		return style.Style{}, err
	}
	if len(styles) == 0 {
		return style.Style{}, errors.New("no styles to pick from")
	}

	options := make([]string, len(styles))
	for i, s := range styles {
		options[i] = s.Name()
	}
	prompt := &survey.Select{
		Message: "Wallpaper style:",
		Options: options,
		Default: options[0],
		Description: func(_ string, i int) string {
			return styles[i].Pattern().String()
		},
		PageSize: len(options),
	}

	var out int
	if err := survey.AskOne(prompt, &out); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return style.Style{}, ErrCancelled
		}
		return style.Style{}, fmt.Errorf("prompt: %w", err)
	}
	return styles[out], nil
}
