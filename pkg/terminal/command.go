package terminal

import (
	"errors"
	"fmt"
	"memscan/service"
	"memscan/utils"
	"strings"
	"text/tabwriter"
)

type cmdFn func(term *Term, args string) error

type command struct {
	aliases []string
	fn      cmdFn
	help    string
}

// summary is the first line of the help text.
func (c command) summary() string {
	line, _, _ := strings.Cut(c.help, "\n")
	return line
}

type Commands struct {
	cmds   []command
	client service.Client
}

func NewCommands(client service.Client) *Commands {
	c := &Commands{
		client: client,
	}

	c.cmds = []command{
		{
			aliases: []string{"help", "h"},
			fn:      c.help,
			help: `Prints the help message.

	help [command]

Type "help" followed by the name of a command for more information about it.`},
		{
			aliases: []string{"memscan", "ms"},
			fn:      remote(service.Memscan),
			help: `Scan memory for a value and save the hits to a slot, or narrow the hits already saved in a slot.

	memscan <slot> <size> <value> [<start> <end> | <region>]

size is 1, 2 or 4 bytes. A slot without hits scans the given range, the region
(see "regions") or the session default range. A slot with hits re-reads each
of them and keeps the ones now holding value. Clear the slot to change size.
Hits stop being recorded once the slot is full.`},
		{
			aliases: []string{"slotclear", "sc"},
			fn:      remote(service.SlotClear),
			help: `Clear a memory scan slot.

	slotclear <slot>`},
		{
			aliases: []string{"slotinfo", "si"},
			fn:      remote(service.SlotInfo),
			help: `Dump the hits of a memory scan slot with their current values.

	slotinfo <slot>`},
		{
			aliases: []string{"slotls", "sl"},
			fn:      remote(service.SlotList),
			help:    "List summary info about all memory scan slots.",
		},
		{
			aliases: []string{"regions", "r"},
			fn:      remote(service.Regions),
			help:    "List the memory regions of the target.",
		},
		{
			aliases: []string{"read", "rd"},
			fn:      remote(service.Read),
			help: `Read a value from the target.

	read <addr> [size]`},
		{
			aliases: []string{"transcript"},
			fn:      transcript,
			help: `Appends command output to a file.

	transcript <path>
	transcript -off`},
		{
			aliases: []string{"exit", "quit", "q"},
			fn:      exit,
			help:    "exit memscan",
		},
	}
	return c
}

// lookup returns the command registered under name, by name or alias.
func (c *Commands) lookup(name string) (command, bool) {
	for _, cmd := range c.cmds {
		for _, alias := range cmd.aliases {
			if alias == name {
				return cmd, true
			}
		}
	}
	return command{}, false
}

func (c *Commands) Call(line string, t *Term) error {
	name, args, _ := strings.Cut(strings.TrimSpace(line), " ")
	if name == "" {
		return nil
	}

	cmd, ok := c.lookup(name)
	if !ok {
		return errNoCmd
	}
	return cmd.fn(t, strings.TrimSpace(args))
}

func (c *Commands) help(t *Term, args string) error {
	if args != "" {
		cmd, ok := c.lookup(args)
		if !ok {
			return errNoCmd
		}
		fmt.Fprintln(t.stdout, cmd.help)
		return nil
	}

	fmt.Fprintln(t.stdout, "Commands:")
	tw := tabwriter.NewWriter(t.stdout, 0, 8, 2, ' ', 0)
	for _, cmd := range c.cmds {
		names := cmd.aliases[0]
		if len(cmd.aliases) > 1 {
			names += " (" + strings.Join(cmd.aliases[1:], ", ") + ")"
		}
		fmt.Fprintf(tw, "  %s\t%s\n", names, cmd.summary())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(t.stdout, "\nType help followed by a command for full documentation.")
	return nil
}

// remote forwards a command to the session behind the client.
func remote(cmdType service.CmdType) cmdFn {
	return func(t *Term, args string) error {
		out, err := t.client.SendExpr(cmdType, args)
		if err != nil {
			return err
		}

		if strings.HasPrefix(out, "Warning:") {
			line, rest, _ := strings.Cut(out, "\n")
			t.stdout.Highlight(colorYellow, line+"\n")
			out = rest
		}
		utils.PrintBlock(t.stdout, out)
		return nil
	}
}

func transcript(t *Term, args string) error {
	switch args {
	case "":
		return errors.New("transcript requires a path or -off")
	case "-off":
		return t.stdout.CloseTranscript()
	}
	return t.stdout.OpenTranscript(args)
}

// ExitRequestError ends the prompt loop.
type ExitRequestError struct{}

func (ExitRequestError) Error() string { return "exit requested" }

func exit(*Term, string) error {
	return ExitRequestError{}
}

var errNoCmd = errors.New("command not available")
