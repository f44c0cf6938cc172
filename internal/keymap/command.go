package keymap

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/llehouerou/glimpse/internal/bridge"
	"github.com/llehouerou/glimpse/internal/viewer"
)

var (
	ErrEmptyCommand   = errors.New("empty command")
	ErrUnknownCommand = errors.New("unknown command")
	errUnterminated   = errors.New("unterminated quote")
)

// Parse splits a command line into commands. Commands are separated by
// ';', arguments by whitespace; single or double quotes group words.
func Parse(line string) ([]bridge.Command, error) {
	groups, err := split(line)
	if err != nil {
		return nil, err
	}

	var cmds []bridge.Command
	for _, words := range groups {
		if len(words) == 0 {
			continue
		}
		if !slices.Contains(viewer.Actions, words[0]) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, words[0])
		}
		cmds = append(cmds, bridge.Command{Action: words[0], Args: words[1:]})
	}
	if len(cmds) == 0 {
		return nil, ErrEmptyCommand
	}
	return cmds, nil
}

func split(line string) ([][]string, error) {
	var (
		groups [][]string
		words  []string
		word   strings.Builder
		inWord bool
		quote  rune
	)
	flush := func() {
		if inWord {
			words = append(words, word.String())
			word.Reset()
			inWord = false
		}
	}

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				word.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ';':
			flush()
			groups = append(groups, words)
			words = nil
		case r == ' ' || r == '\t':
			flush()
		default:
			word.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 {
		return nil, errUnterminated
	}
	flush()
	return append(groups, words), nil
}
