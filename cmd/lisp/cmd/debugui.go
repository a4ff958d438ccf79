//-----------------------------------------------------------------------------
// Copyright (c) 2022-present Detlef Stern
//
// This file is part of sx.
//
// sx is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//
// SPDX-License-Identifier: EUPL-1.2
// SPDX-FileCopyrightText: 2022-present Detlef Stern
//-----------------------------------------------------------------------------

package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sxlisp/golisp"
	"github.com/sxlisp/golisp/lispvm"
)

var (
	stepStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// stepMsg carries one trampoline iteration's one-line trace, captured
// from Machine.Debug.
type stepMsg string

// doneMsg carries the final result (or error) of the form under watch.
type doneMsg struct {
	repr string
	err  error
}

// debugModel pages through the trampoline steps of a single top-level
// form one keypress at a time, rendered with viewport/lipgloss instead
// of scrolling every step straight to stderr.
type debugModel struct {
	vp       viewport.Model
	steps    []string
	shown    int
	result   string
	evalErr  error
	finished bool
	stepCh   chan string
	doneCh   chan doneMsg
}

func newDebugModel(stepCh chan string, doneCh chan doneMsg) debugModel {
	vp := viewport.New(80, 20)
	return debugModel{vp: vp, stepCh: stepCh, doneCh: doneCh}
}

func waitForStep(ch chan string) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return stepMsg(s)
	}
}

func waitForDone(ch chan doneMsg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

func (m debugModel) Init() tea.Cmd {
	return tea.Batch(waitForStep(m.stepCh), waitForDone(m.doneCh))
}

func (m debugModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "n", " ", "enter":
			if m.shown < len(m.steps) {
				m.shown++
				m.vp.SetContent(m.renderShown())
				m.vp.GotoBottom()
			}
		}
		return m, nil

	case stepMsg:
		m.steps = append(m.steps, string(msg))
		m.vp.SetContent(m.renderShown())
		m.vp.GotoBottom()
		return m, waitForStep(m.stepCh)

	case doneMsg:
		m.finished = true
		m.result = msg.repr
		m.evalErr = msg.err
		return m, nil

	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width
		m.vp.Height = msg.Height - 3
		return m, nil
	}
	return m, nil
}

func (m debugModel) renderShown() string {
	var out string
	for _, s := range m.steps[:m.shown] {
		out += stepStyle.Render(s) + "\n"
	}
	return out
}

func (m debugModel) View() string {
	footer := helpStyle.Render("n/space/enter: next step · q: quit")
	if m.finished {
		if m.evalErr != nil {
			footer = resultStyle.Render("error: "+m.evalErr.Error()) + "  " + footer
		} else {
			footer = resultStyle.Render("= "+m.result) + "  " + footer
		}
	}
	return m.vp.View() + "\n" + footer
}

// evalWithStepUI wires m.Debug to stream one-line traces into a
// bubbletea program while the evaluation runs on its own goroutine; the
// final result (or error) appears in the viewer's footer once evaluation
// finishes.
func evalWithStepUI(m *lispvm.Machine, eval func() (string, error)) error {
	stepCh := make(chan string)
	doneCh := make(chan doneMsg, 1)

	prevDebug := m.Debug
	m.Debug = func(mm *lispvm.Machine) {
		stepCh <- fmt.Sprintf("pp=%s sp=%d rr=%s depth=%d", lisp.Repr(mm.PP), mm.SP, lisp.Repr(mm.RR), len(mm.Stack))
	}
	defer func() { m.Debug = prevDebug }()

	go func() {
		repr, err := eval()
		close(stepCh)
		doneCh <- doneMsg{repr: repr, err: err}
	}()

	p := tea.NewProgram(newDebugModel(stepCh, doneCh))
	_, err := p.Run()
	return err
}
