// Package notify delivers user-visible notices: styled lines on stderr,
// plus a desktop notification for warnings so they are seen even when the
// terminal is covered by the assistant pane.
package notify

import (
	"fmt"
	"os"

	"agent-pane/log"

	"github.com/charmbracelet/lipgloss"
	"github.com/gen2brain/beeep"
)

const appTitle = "agent-pane"

var (
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#3B82F6"})

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#F59E0B"})

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#EF4444"})
)

// desktop is swapped in tests.
var desktop = func(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Infof prints an informational notice.
func Infof(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	log.InfoLog.Print(msg)
	fmt.Fprintln(os.Stderr, infoStyle.Render(msg))
}

// Warnf prints a warning notice and raises a desktop notification.
func Warnf(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	log.WarningLog.Print(msg)
	fmt.Fprintln(os.Stderr, warnStyle.Render("warning: "+msg))
	if err := desktop(appTitle, msg); err != nil {
		log.WarningLog.Printf("desktop notification failed: %v", err)
	}
}

// Errorf prints an error notice.
func Errorf(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	log.ErrorLog.Print(msg)
	fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+msg))
}
