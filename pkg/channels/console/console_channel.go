package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"deskpilot/pkg/channels"
	"deskpilot/pkg/config"
	"deskpilot/pkg/gateway"

	jsoniter "github.com/json-iterator/go"
)

// ConsoleConfig holds the interactive terminal settings.
type ConsoleConfig struct {
	Prompt string `json:"prompt"` // Default: "> "
}

// stdinScanner is shared by every console channel instance. A config
// reload replaces the channel but stdin cannot be reopened, so the
// replacement loop must continue from the same reader state instead of
// racing the old one for lines.
var stdinScanner = bufio.NewScanner(os.Stdin)

// ConsoleChannel is the interactive stdin/stdout front end: one instruction
// per line, the result printed before the next prompt. "exit" and "quit"
// request a graceful shutdown of the whole process.
type ConsoleChannel struct {
	config  ConsoleConfig
	scanner *bufio.Scanner
	out     io.Writer
	replied chan string
	done    chan struct{}
}

// NewConsoleChannel creates a console channel over stdin/stdout.
func NewConsoleChannel(cfg ConsoleConfig) *ConsoleChannel {
	if cfg.Prompt == "" {
		cfg.Prompt = "> "
	}
	return &ConsoleChannel{
		config:  cfg,
		scanner: stdinScanner,
		out:     os.Stdout,
		replied: make(chan string, 1),
		done:    make(chan struct{}),
	}
}

func (c *ConsoleChannel) ID() string {
	return "console"
}

// Start launches the read loop. The loop blocks between instructions until
// the reply for the previous one has been delivered, keeping the terminal
// conversation strictly alternating.
func (c *ConsoleChannel) Start(ctx gateway.ChannelContext) error {
	go c.readLoop(ctx)
	return nil
}

func (c *ConsoleChannel) readLoop(ctx gateway.ChannelContext) {
	session := gateway.SessionContext{
		ChannelID: "console",
		UserID:    "local",
		ChatID:    "local",
		Username:  "local",
	}

	fmt.Fprintln(c.out, "Tell me what you want to do in plain English. Type 'exit' to quit.")

	for {
		fmt.Fprint(c.out, c.config.Prompt)
		if !c.scanner.Scan() {
			return
		}

		// Scan can only be interrupted by input arriving, so a channel
		// stopped mid-read learns about it here and stops dispatching.
		select {
		case <-c.done:
			return
		default:
		}

		text := strings.TrimSpace(c.scanner.Text())
		if text == "" {
			continue
		}

		if text == "exit" || text == "quit" {
			fmt.Fprintln(c.out, "Bye!")
			// Route through the normal shutdown path so channels stop cleanly.
			if p, err := os.FindProcess(os.Getpid()); err == nil {
				p.Signal(os.Interrupt)
			}
			return
		}

		ctx.OnInstruction("console", &gateway.Instruction{
			Session: session,
			Text:    text,
		})

		select {
		case reply := <-c.replied:
			fmt.Fprintf(c.out, "%s\n", reply)
		case <-c.done:
			return
		}
	}
}

func (c *ConsoleChannel) Stop() error {
	close(c.done)
	return nil
}

// Send implements gateway.Channel by handing the reply to the waiting
// read loop. The success flag is already visible in the reply text.
func (c *ConsoleChannel) Send(session gateway.SessionContext, message string, _ bool) error {
	select {
	case c.replied <- message:
	default:
	}
	return nil
}

// factory

type consoleFactory struct{}

func (f *consoleFactory) Create(rawConfig jsoniter.RawMessage, system *config.SystemConfig) (gateway.Channel, error) {
	var cfg ConsoleConfig
	if len(rawConfig) > 0 {
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(rawConfig, &cfg); err != nil {
			return nil, err
		}
	}
	return NewConsoleChannel(cfg), nil
}

func init() {
	channels.RegisterChannel("console", &consoleFactory{})
}
