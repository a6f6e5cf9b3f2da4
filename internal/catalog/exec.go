package catalog

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"multilaunch/internal/models"
)

// DefaultTerminal wraps apps that declare Terminal=true
const DefaultTerminal = "x-terminal-emulator -e"

// LaunchError reports that an application could not be started
type LaunchError struct {
	AppID string
	Err   error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch %s: %v", e.AppID, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Launcher starts applications from their Exec lines
type Launcher struct {
	terminal []string
	start    func(argv []string) error
}

// NewLauncher creates a launcher. terminal is the command prefix used for
// Terminal=true apps, e.g. "kitty -e".
func NewLauncher(terminal string) *Launcher {
	if strings.TrimSpace(terminal) == "" {
		terminal = DefaultTerminal
	}
	argv, err := SplitExec(terminal)
	if err != nil || len(argv) == 0 {
		argv, _ = SplitExec(DefaultTerminal)
	}
	return &Launcher{terminal: argv, start: startDetached}
}

// Command returns the argv that Launch would run for app
func (l *Launcher) Command(app *models.App) ([]string, error) {
	args, err := SplitExec(app.Exec)
	if err != nil {
		return nil, err
	}
	args = expandFieldCodes(args, app)
	if len(args) == 0 {
		return nil, errors.New("empty Exec line")
	}
	for i, a := range args {
		args[i] = expandHome(a)
	}

	if app.Terminal {
		args = append(append([]string(nil), l.terminal...), args...)
	}
	return args, nil
}

// Launch starts app without waiting for it
func (l *Launcher) Launch(app *models.App) error {
	argv, err := l.Command(app)
	if err != nil {
		return &LaunchError{AppID: app.AppID, Err: err}
	}
	if err := l.start(argv); err != nil {
		return &LaunchError{AppID: app.AppID, Err: err}
	}
	return nil
}

func startDetached(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// reap the child so it does not linger as a zombie
	go cmd.Wait()
	return nil
}

// SplitExec splits an Exec value into arguments. Double quotes group words
// and allow backslash escapes; single quotes group words literally.
func SplitExec(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		hasArg  bool
		quote   rune
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case quote == '"' && r == '\\':
			escaped = true
		case quote != 0 && r == quote:
			quote = 0
		case quote != 0:
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			hasArg = true
		case r == ' ' || r == '\t':
			if hasArg {
				args = append(args, cur.String())
				cur.Reset()
				hasArg = false
			}
		default:
			cur.WriteRune(r)
			hasArg = true
		}
	}

	if quote != 0 || escaped {
		return nil, fmt.Errorf("unterminated quote in %q", line)
	}
	if hasArg {
		args = append(args, cur.String())
	}
	return args, nil
}

// expandFieldCodes removes or substitutes the %-codes of an Exec line.
// No files or URLs are passed, so the list codes vanish.
func expandFieldCodes(args []string, app *models.App) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		switch arg {
		case "%f", "%F", "%u", "%U", "%d", "%D", "%n", "%N", "%v", "%m":
			continue
		case "%i":
			if app.Icon != "" {
				out = append(out, "--icon", app.Icon)
			}
			continue
		}

		if !strings.Contains(arg, "%") {
			out = append(out, arg)
			continue
		}

		var b strings.Builder
		for i := 0; i < len(arg); i++ {
			if arg[i] != '%' || i+1 == len(arg) {
				b.WriteByte(arg[i])
				continue
			}
			i++
			switch arg[i] {
			case '%':
				b.WriteByte('%')
			case 'c':
				b.WriteString(app.DisplayName)
			case 'k':
				b.WriteString(app.Path)
			}
		}
		if b.Len() > 0 {
			out = append(out, b.String())
		}
	}
	return out
}

// expandHome expands a leading ~/ to the home directory
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
