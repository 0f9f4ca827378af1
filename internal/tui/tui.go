package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoQuery is returned when neither the user nor the configuration supplied search terms.
var ErrNoQuery = errors.New("no search terms provided")

// ErrCancelled is returned when the user aborts the prompt.
var ErrCancelled = errors.New("prompt cancelled")

// PromptConfig controls how search terms are obtained.
type PromptConfig struct {
	// Prompt asks the user; when false the default is used directly.
	Prompt bool
	// Interactive selects the Bubble Tea prompt; otherwise one line is read from In.
	Interactive bool
	// Default is used when the prompt is skipped or answered with an empty line.
	Default string
	In      io.Reader
	Out     io.Writer
}

// ObtainQuery returns trimmed, non-empty search terms or ErrNoQuery.
func ObtainQuery(cfg PromptConfig) (string, error) {
	answer := ""
	if cfg.Prompt {
		var err error
		if cfg.Interactive {
			answer, err = runPrompt(cfg)
		} else {
			answer, err = readLine(cfg)
		}
		if err != nil {
			return "", err
		}
	}

	q := strings.TrimSpace(answer)
	if q == "" {
		q = strings.TrimSpace(cfg.Default)
	}
	if q == "" {
		return "", ErrNoQuery
	}
	return q, nil
}

func readLine(cfg PromptConfig) (string, error) {
	if cfg.Out != nil {
		if cfg.Default != "" {
			fmt.Fprintf(cfg.Out, "Search terms [%s]: ", cfg.Default)
		} else {
			fmt.Fprint(cfg.Out, "Search terms: ")
		}
	}
	if cfg.In == nil {
		return "", nil
	}
	line, err := bufio.NewReader(cfg.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read search terms: %w", err)
	}
	return line, nil
}

// model is a single-line Bubble Tea prompt. Plain text only.
type model struct {
	input     textinput.Model
	value     string
	done      bool
	cancelled bool
}

func newModel(def string) model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "Type search terms and press Enter"
	if def != "" {
		input.Placeholder = def
	}
	input.CharLimit = 512
	input.Focus()
	return model{input: input}
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.value = m.input.Value()
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.done || m.cancelled {
		return ""
	}
	header := "Searchkit (Enter to search, Esc to quit)\n"
	footer := "\n(empty input uses the default search terms)\n"
	return header + m.input.View() + "\n" + footer
}

func runPrompt(cfg PromptConfig) (string, error) {
	opts := []tea.ProgramOption{}
	if cfg.In != nil {
		opts = append(opts, tea.WithInput(cfg.In))
	}
	if cfg.Out != nil {
		opts = append(opts, tea.WithOutput(cfg.Out))
	}

	final, err := tea.NewProgram(newModel(cfg.Default), opts...).Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	m, ok := final.(model)
	if !ok {
		return "", fmt.Errorf("prompt returned unexpected model %T", final)
	}
	if m.cancelled {
		return "", ErrCancelled
	}
	return m.value, nil
}
