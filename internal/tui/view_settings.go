package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/todoai/internal/config"
)

const (
	settingsMain     = ""
	settingsProvider = "provider"
	settingsModel    = "model"
	settingsAPIKey   = "apikey"
)

func (a *App) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	switch a.state.settingsMode {
	case settingsProvider:
		return a.handleSettingsProviderKey(msg)
	case settingsModel:
		return a.handleSettingsModelKey(msg)
	case settingsAPIKey:
		return a.handleSettingsAPIKeyKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Quit):
		a.view = viewList
	case msg.String() == "p":
		a.state.settingsMode = settingsProvider
		a.state.settingsSelected = providerIndex(a.state.config.Provider)
	case msg.String() == "m":
		p := config.GetProvider(a.state.config.Provider)
		if p == nil || len(p.Models) == 0 {
			a.state.notice = "This provider has no model presets; set model in the config file"
			return nil
		}
		a.state.settingsMode = settingsModel
		a.state.settingsSelected = 0
		for i, m := range p.Models {
			if m == a.state.config.Model {
				a.state.settingsSelected = i
			}
		}
	case msg.String() == "k":
		return a.openAPIKeyInput()
	}
	return nil
}

func (a *App) handleSettingsProviderKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back):
		a.state.settingsMode = settingsMain
	case key.Matches(msg, keys.Up):
		if a.state.settingsSelected > 0 {
			a.state.settingsSelected--
		}
	case key.Matches(msg, keys.Down):
		if a.state.settingsSelected < len(config.Providers)-1 {
			a.state.settingsSelected++
		}
	case key.Matches(msg, keys.Enter):
		p := config.Providers[a.state.settingsSelected]
		a.state.config.Provider = p.ID
		if p.DefaultModel != "" {
			a.state.config.Model = p.DefaultModel
		}
		if p.ID != "custom" {
			a.state.config.BaseURL = ""
		}
		if p.NeedsAPIKey && a.state.config.APIKey == "" {
			return a.openAPIKeyInput()
		}
		a.state.settingsMode = settingsMain
		return a.saveSettings()
	}
	return nil
}

func (a *App) handleSettingsModelKey(msg tea.KeyMsg) tea.Cmd {
	p := config.GetProvider(a.state.config.Provider)
	if p == nil {
		a.state.settingsMode = settingsMain
		return nil
	}

	switch {
	case key.Matches(msg, keys.Back):
		a.state.settingsMode = settingsMain
	case key.Matches(msg, keys.Up):
		if a.state.settingsSelected > 0 {
			a.state.settingsSelected--
		}
	case key.Matches(msg, keys.Down):
		if a.state.settingsSelected < len(p.Models)-1 {
			a.state.settingsSelected++
		}
	case key.Matches(msg, keys.Enter):
		a.state.config.Model = p.Models[a.state.settingsSelected]
		a.state.settingsMode = settingsMain
		return a.saveSettings()
	}
	return nil
}

func (a *App) handleSettingsAPIKeyKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back):
		a.state.apiKeyInput.Blur()
		a.state.settingsMode = settingsMain
		return nil
	case key.Matches(msg, keys.Enter):
		a.state.config.APIKey = strings.TrimSpace(a.state.apiKeyInput.Value())
		a.state.apiKeyInput.Reset()
		a.state.apiKeyInput.Blur()
		a.state.settingsMode = settingsMain
		return a.saveSettings()
	}

	var cmd tea.Cmd
	a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
	return cmd
}

func (a *App) openAPIKeyInput() tea.Cmd {
	a.state.settingsMode = settingsAPIKey
	a.state.apiKeyInput.Reset()
	a.state.apiKeyInput.Focus()
	return textinput.Blink
}

// saveSettings writes a snapshot of the config; the provider is rebuilt once
// the write succeeds.
func (a *App) saveSettings() tea.Cmd {
	cfg := *a.state.config
	path := a.configPath
	return func() tea.Msg {
		var err error
		if path != "" {
			err = cfg.SaveFile(path)
		} else {
			err = cfg.Save()
		}
		if err != nil {
			return settingsErrorMsg{err}
		}
		return settingsSavedMsg{}
	}
}

func providerIndex(id string) int {
	for i, p := range config.Providers {
		if p.ID == id {
			return i
		}
	}
	return 0
}

func (a *App) renderSettings() string {
	switch a.state.settingsMode {
	case settingsProvider:
		return a.renderSettingsProvider()
	case settingsModel:
		return a.renderSettingsModel()
	case settingsAPIKey:
		return a.renderSettingsAPIKey()
	default:
		return a.renderSettingsMain()
	}
}

func (a *App) renderSettingsMain() string {
	var b strings.Builder

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleTitle.Render("Settings")))
	b.WriteString("\n\n")

	cfg := a.state.config
	providerName := cfg.Provider
	if p := config.GetProvider(cfg.Provider); p != nil {
		providerName = p.Name
	}

	configLines := []string{
		fmt.Sprintf("  Provider: %s", providerName),
		fmt.Sprintf("  Model:    %s", cfg.Model),
		fmt.Sprintf("  Endpoint: %s", truncate(cfg.ResolvedBaseURL(), 36)),
		fmt.Sprintf("  API Key:  %s", maskKey(cfg.APIKey)),
		fmt.Sprintf("  Status:   %s", a.providerStatus()),
	}

	configBox := styleBox.Copy().
		Width(a.boxWidth(56)).
		Render(strings.Join(configLines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, configBox))
	b.WriteString("\n\n")

	actions := []string{
		"  [p] Change provider",
		"  [m] Change model",
		"  [k] Update API key",
	}
	actionsBox := styleBox.Copy().
		Width(a.boxWidth(56)).
		Render(strings.Join(actions, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, actionsBox))
	b.WriteString("\n\n")

	if a.state.notice != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleNotice.Render(a.state.notice)))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleStatusBar.Render("[Esc] Back")))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsProvider() string {
	var b strings.Builder

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleTitle.Render("Select Provider")))
	b.WriteString("\n\n")

	var lines []string
	for i, p := range config.Providers {
		line := fmt.Sprintf("  %-12s %s", p.Name, styleSubtitle.Render(p.Description))
		if i == a.state.settingsSelected {
			line = styleSelected.Foreground(colorPrimary).Render("> "+p.Name) + "  " + styleSubtitle.Render(p.Description)
		}
		lines = append(lines, line)
	}

	listBox := styleBox.Copy().
		Width(a.boxWidth(60)).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, listBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Up/Down] Navigate  [Enter] Select  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsModel() string {
	var b strings.Builder

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleTitle.Render("Select Model")))
	b.WriteString("\n\n")

	p := config.GetProvider(a.state.config.Provider)
	if p == nil {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render("No provider selected")))
		return a.centerVertically(b.String())
	}

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render("Provider: "+p.Name)))
	b.WriteString("\n\n")

	var lines []string
	for i, model := range p.Models {
		cursor := "  "
		if i == a.state.settingsSelected {
			cursor = "> "
		}
		current := ""
		if model == a.state.config.Model {
			current = " (current)"
		}
		line := cursor + model + current
		if i == a.state.settingsSelected {
			line = styleSelected.Foreground(colorPrimary).Render(line)
		}
		lines = append(lines, line)
	}

	listBox := styleBox.Copy().
		Width(a.boxWidth(56)).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, listBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Up/Down] Navigate  [Enter] Select  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsAPIKey() string {
	var b strings.Builder

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleTitle.Render("Update API Key")))
	b.WriteString("\n\n")

	desc := "Enter your API key"
	if p := config.GetProvider(a.state.config.Provider); p != nil && p.SignupURL != "" {
		desc = fmt.Sprintf("Enter your %s API key (get one at %s)", p.Name, p.SignupURL)
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render(desc)))
	b.WriteString("\n\n")

	inputBox := styleBox.Copy().
		Width(a.boxWidth(56)).
		BorderForeground(colorPrimary).
		Render(a.state.apiKeyInput.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Enter] Save  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func maskKey(k string) string {
	switch {
	case k == "":
		return "Not set"
	case len(k) > 8:
		return k[:4] + "****" + k[len(k)-4:]
	default:
		return "****"
	}
}

func (a *App) providerStatus() string {
	switch {
	case a.state.providerReady:
		return lipgloss.NewStyle().Foreground(colorSuccess).Render("connected")
	case a.state.providerError != nil:
		return styleOverdue.Render(truncate(a.state.providerError.Error(), 36))
	case a.state.provider == nil:
		return styleSubtitle.Render("not configured")
	default:
		return styleSubtitle.Render("checking...")
	}
}
