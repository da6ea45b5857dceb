package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Player plays clip files with an external command
type Player struct {
	command  []string // fixed command; nil picks one per clip
	lookPath func(string) (string, error)
	goos     string
}

// NewPlayer creates a player. An empty command selects a platform player.
func NewPlayer(command string) *Player {
	return &Player{
		command:  strings.Fields(command),
		lookPath: exec.LookPath,
		goos:     runtime.GOOS,
	}
}

// IsAvailable checks that some player can be found
func (p *Player) IsAvailable() error {
	_, err := p.Command("clip.mp3")
	return err
}

// Command returns the argv used to play file
func (p *Player) Command(file string) ([]string, error) {
	if len(p.command) > 0 {
		if _, err := p.lookPath(p.command[0]); err != nil {
			return nil, fmt.Errorf("audio player %s not found: %w", p.command[0], err)
		}
		return append(append([]string{}, p.command...), file), nil
	}

	switch p.goos {
	case "darwin": // macOS
		return []string{"afplay", file}, nil
	case "linux", "freebsd", "openbsd":
		// mpg123 handles MP3 files best but cannot play WAV
		candidates := [][]string{
			{"mpg123", "-q"},
			{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
			{"play", "-q"}, // SoX
			{"paplay"},
			{"aplay", "-q"},
		}
		wav := strings.HasSuffix(strings.ToLower(file), ".wav")
		for _, c := range candidates {
			if wav && c[0] == "mpg123" {
				continue
			}
			if !wav && (c[0] == "paplay" || c[0] == "aplay") {
				continue
			}
			if _, err := p.lookPath(c[0]); err == nil {
				return append(append([]string{}, c...), file), nil
			}
		}
		return nil, fmt.Errorf("no audio player found. Install mpg123, ffplay, sox, paplay, or aplay")
	case "windows":
		return []string{"powershell", "-NoProfile", "-Command",
			fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", file)}, nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", p.goos)
	}
}

// Play plays data and blocks until playback ends. Cancelling ctx kills the
// player process.
func (p *Player) Play(ctx context.Context, data []byte) error {
	f, err := os.CreateTemp("", "speakabc-*."+DetectFormat(data))
	if err != nil {
		return fmt.Errorf("failed to create clip file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write clip file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write clip file: %w", err)
	}

	return p.PlayFile(ctx, f.Name())
}

// PlayFile plays an audio file and blocks until playback ends
func (p *Player) PlayFile(ctx context.Context, file string) error {
	argv, err := p.Command(file)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s failed: %w", argv[0], err)
	}
	return nil
}
