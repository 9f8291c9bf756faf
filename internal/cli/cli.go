package cli

import (
	"errors"
	"fmt"
	"strings"
)

type Command string

const (
	CommandTranscribe Command = "transcribe"
	CommandPhonemes   Command = "phonemes"
	CommandStressed   Command = "stressed"
	CommandServe      Command = "serve"
	CommandDoctor     Command = "doctor"
	CommandVersion    Command = "version"
	CommandHelp       Command = "help"
)

var validCommands = map[Command]struct{}{
	CommandTranscribe: {},
	CommandPhonemes:   {},
	CommandStressed:   {},
	CommandServe:      {},
	CommandDoctor:     {},
	CommandVersion:    {},
	CommandHelp:       {},
}

// Commands that read text from arguments or stdin.
var textCommands = map[Command]struct{}{
	CommandTranscribe: {},
	CommandPhonemes:   {},
	CommandStressed:   {},
}

// Parsed holds one command invocation. Empty string flags and false bools
// leave the config value in place.
type Parsed struct {
	Command    Command
	ConfigPath string
	ShowHelp   bool

	Text         []string
	Stressed     string
	StressPlace  string
	StressSymbol string
	Format       string
	SaveStresses bool
	SaveSpaces   bool
	SavePauses   bool
	Remote       string
}

// TakesText reports whether the command transcribes input text.
func (p Parsed) TakesText() bool {
	_, ok := textCommands[p.Command]
	return ok
}

func Parse(args []string) (Parsed, error) {
	parsed := Parsed{Command: CommandHelp, ShowHelp: true}
	if len(args) == 0 {
		return parsed, nil
	}
	parsed.ShowHelp = false
	parsed.Command = ""

	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, inline, hasInline := strings.Cut(arg, "=")
		if !strings.HasPrefix(arg, "--") {
			name, inline, hasInline = arg, "", false
		}

		value := func() (string, error) {
			if hasInline {
				return inline, nil
			}
			i++
			if i >= len(args) {
				return "", fmt.Errorf("%s requires a value", name)
			}
			return args[i], nil
		}

		var err error
		switch name {
		case "-h", "--help":
			parsed.ShowHelp = true
			parsed.Command = CommandHelp
		case "--version":
			parsed.Command = CommandVersion
		case "--config":
			if parsed.ConfigPath, err = value(); err != nil {
				return Parsed{}, errors.New("--config requires a path")
			}
		case "--stressed":
			parsed.Stressed, err = value()
		case "--stress-place":
			parsed.StressPlace, err = value()
		case "--stress-symbol":
			parsed.StressSymbol, err = value()
		case "--format":
			parsed.Format, err = value()
		case "--remote":
			parsed.Remote, err = value()
		case "--save-stresses":
			parsed.SaveStresses = true
		case "--save-spaces":
			parsed.SaveSpaces = true
		case "--save-pauses":
			parsed.SavePauses = true
		case "--":
			parsed.Text = append(parsed.Text, args[i+1:]...)
			i = len(args)
		default:
			if strings.HasPrefix(arg, "-") {
				return Parsed{}, fmt.Errorf("unknown flag: %s", arg)
			}
			cmd := Command(arg)
			if _, ok := validCommands[cmd]; ok && parsed.Command == "" && len(parsed.Text) == 0 {
				parsed.Command = cmd
				parsed.ShowHelp = cmd == CommandHelp
				continue
			}
			parsed.Text = append(parsed.Text, arg)
		}
		if err != nil {
			return Parsed{}, err
		}
	}

	if parsed.Command == "" {
		parsed.Command = CommandTranscribe
	}
	if len(parsed.Text) > 0 && !parsed.TakesText() {
		return Parsed{}, fmt.Errorf("unexpected arguments after command %q", parsed.Command)
	}
	return parsed, nil
}

func HelpText(binaryName string) string {
	return fmt.Sprintf(`Usage:
  %[1]s [--config PATH] [command] [flags] [TEXT...]

Commands:
  transcribe  Print the allophone transcription of TEXT (default)
  phonemes    Print the phoneme transcription of TEXT
  stressed    Print TEXT with its resolved stress marks
  serve       Serve transcription over gRPC and the IPC socket
  doctor      Run configuration and environment checks
  version     Print version information
  help        Show this help

TEXT is read from stdin when no arguments are given.

Flags:
  --config PATH          Config file path (default: $XDG_CONFIG_HOME/rutranscript/config.jsonc)
  --stressed TEXT        Stressed version of TEXT
  --stress-place PLACE   Stress mark position: after or before
  --stress-symbol SYM    Stress symbol used in output
  --format FORMAT        Output format: text, json or yaml
  --save-stresses        Keep stress marks in output
  --save-spaces          Keep word boundaries inside merged clitic groups
  --save-pauses          Insert | and || pause marks
  --remote ADDR          Transcribe through a running gRPC server
  -h, --help             Show help
  --version              Show version
`, binaryName)
}
