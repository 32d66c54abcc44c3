package console

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

func (p *Parser) handleHelp(ctx context.Context, params []string) (*CommandResponse, error) {
	commands := p.registry.Commands()

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, name := range names {
		cmd := commands[name]
		label := cmd.Usage
		if label == "" {
			label = name
		}
		fmt.Fprintf(&b, "  %-48s %s", label, cmd.Description)
		if aliases := aliasList(cmd); aliases != "" {
			fmt.Fprintf(&b, " (also: %s)", aliases)
		}
		b.WriteString("\n")
	}
	b.WriteString("Order workflow: table <n>, add <pos>, done, submit. Use: addto <table> to extend an open order.")
	return ok(b.String(), "Help"), nil
}

func aliasList(cmd *CommandDefinition) string {
	all := append(append([]string(nil), cmd.ShortForms...), cmd.Variations...)
	return strings.Join(all, ", ")
}
