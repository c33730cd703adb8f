// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	rmtypes "github.com/aws/aws-sdk-go-v2/service/robomaker/types"
	tea "github.com/charmbracelet/bubbletea"
)

// SelectSimulationJobs runs an interactive picker over the provided
// simulation jobs and returns the ARNs the user selected. A quit without
// confirming returns nil.
func SelectSimulationJobs(items []rmtypes.SimulationJobSummary) []string {
	p := tea.NewProgram(pickerModel{items: items})
	m, _ := p.Run()

	var arns []string
	for _, job := range m.(pickerModel).selected {
		arns = append(arns, awsv2.ToString(job.Arn))
	}
	return arns
}

type pickerModel struct {
	items    []rmtypes.SimulationJobSummary
	cursor   int
	selected []rmtypes.SimulationJobSummary
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "w":
			return m, tea.WindowSize()
		case "q", "esc":
			m.selected = nil
			return m, tea.Quit
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case " ":
			if pickerContains(m.selected, m.items[m.cursor]) {
				// Remove item from selected
				for i, v := range m.selected {
					if awsv2.ToString(v.Arn) == awsv2.ToString(m.items[m.cursor].Arn) {
						m.selected = append(m.selected[:i], m.selected[i+1:]...)
						break
					}
				}
			} else {
				m.selected = append(m.selected, m.items[m.cursor])
			}
		case "enter":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	s := "Select simulation jobs to cancel:\n\n"
	for i, job := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		mark := " "
		if pickerContains(m.selected, job) {
			mark = "x"
		}

		s += fmt.Sprintf("%s [%s] %-40s %s\n", cursor, mark,
			awsv2.ToString(job.Name), job.Status)
	}
	return s + "\nSPACE: toggle, ENTER: go, Q/ESCAPE: quit\n"
}

func pickerContains(jobs []rmtypes.SimulationJobSummary, job rmtypes.SimulationJobSummary) bool {
	for _, v := range jobs {
		if awsv2.ToString(v.Arn) == awsv2.ToString(job.Arn) {
			return true
		}
	}
	return false
}
