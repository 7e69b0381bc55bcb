package tetris

import (
	"errors"
	"fmt"
	"strings"
)

// Command is an external instruction to the engine.
type Command string

const (
	CmdStart     Command = "start"
	CmdMoveLeft  Command = "moveLeft"
	CmdMoveRight Command = "moveRight"
	CmdMoveDown  Command = "moveDown"
	CmdRotate    Command = "rotate"
	// CmdTick is the timer-driven gravity step.
	CmdTick Command = "tick"
)

// ErrUnknownCommand is returned by ParseCommand for unrecognised input.
var ErrUnknownCommand = errors.New("tetris: unknown command")

var commandAliases = map[string]Command{
	"start":     CmdStart,
	"moveleft":  CmdMoveLeft,
	"left":      CmdMoveLeft,
	"moveright": CmdMoveRight,
	"right":     CmdMoveRight,
	"movedown":  CmdMoveDown,
	"down":      CmdMoveDown,
	"rotate":    CmdRotate,
	"up":        CmdRotate,
	"tick":      CmdTick,
}

// ParseCommand maps text to a Command, ignoring case and surrounding space.
func ParseCommand(text string) (Command, error) {
	key := strings.ToLower(strings.TrimSpace(text))
	if cmd, ok := commandAliases[key]; ok {
		return cmd, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCommand, text)
}

// Apply runs the transition for cmd. Unknown commands leave s unchanged.
func (e *Engine) Apply(s State, cmd Command) State {
	switch cmd {
	case CmdStart:
		return e.Start(s)
	case CmdMoveLeft:
		return e.MoveLeft(s)
	case CmdMoveRight:
		return e.MoveRight(s)
	case CmdMoveDown:
		return e.MoveDown(s)
	case CmdRotate:
		return e.Rotate(s)
	case CmdTick:
		return e.Tick(s)
	}
	return s
}
