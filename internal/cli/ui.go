package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette. Hover is teal and selection green, in the explorer as
// well as in command output.
var (
	colorHover = lipgloss.Color("36")
	colorPick  = lipgloss.Color("35")
	colorWarn  = lipgloss.Color("220")
	colorFail  = lipgloss.Color("167")
	colorCmd   = lipgloss.Color("75")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

// Shared styles, also used by the explorer canvas.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorHover)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorHover)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorPick)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)

	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand = lipgloss.NewStyle().Foreground(colorCmd)
)

// mark is the glyph in front of a status line.
type mark struct {
	glyph string
	style lipgloss.Style
}

var (
	markOK   = mark{"✓", lipgloss.NewStyle().Foreground(colorPick)}
	markFail = mark{"✗", lipgloss.NewStyle().Foreground(colorFail)}
	markWarn = mark{"!", lipgloss.NewStyle().Foreground(colorWarn)}
	markNote = mark{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

func (m mark) println(msg string) {
	fmt.Println(m.style.Render(m.glyph) + " " + msg)
}

func printSuccess(format string, args ...any) { markOK.println(fmt.Sprintf(format, args...)) }
func printError(format string, args ...any)   { markFail.println(fmt.Sprintf(format, args...)) }
func printInfo(format string, args ...any)    { markNote.println(fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	markWarn.println(StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, muted line under a status line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the path of a written file.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value in a fixed-width key column.
func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// printStats prints the node count of a render and whether the output came
// from the render cache.
func printStats(nodeCount int, cached bool) {
	origin := StyleDim.Render("fresh")
	if cached {
		origin = StyleSuccess.Render("cached")
	}
	fmt.Println("  " + strings.Join([]string{StyleDim.Render(fmt.Sprintf("%d nodes", nodeCount)), origin}, StyleDim.Render(" · ")))
}

// printNextStep suggests a command to run next.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() { fmt.Println() }
