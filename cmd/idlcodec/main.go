// idlcodec encodes and decodes program account, instruction and event data
// described by an IDL, or by one of the built-in native program formats.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/wippyai/idl-codec/borsh"
	"github.com/wippyai/idl-codec/coder"
)

type config struct {
	idlPath string
	program string
	kind    string
	output  string
	verbose bool
}

type command struct {
	run     func(s *session, cfg config, args []string, stdin io.Reader, stdout io.Writer) error
	name    string
	usage   string
	summary string
}

var commands = []command{
	{name: "list", run: runList, summary: "list instructions, accounts, types and events"},
	{name: "encode", run: runEncode, usage: "NAME VALUE", summary: "encode a JSON value to hex"},
	{name: "decode", run: runDecode, usage: "[NAME] HEX", summary: "decode hex data"},
	{name: "discriminator", run: runDiscriminator, usage: "NAME", summary: "print the identifying prefix of a record"},
	{name: "size", run: runSize, usage: "NAME", summary: "print declared and exact sizes"},
	{name: "memcmp", run: runMemcmp, usage: "NAME [EXTRA_HEX]", summary: "print the lookup filter of an account"},
	{name: "inspect", run: runInspect, summary: "browse the program interactively"},
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var cfg config
	fs := pflag.NewFlagSet("idlcodec", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.idlPath, "idl", "", "path to an IDL JSON file")
	fs.StringVar(&cfg.program, "program", "", "program ID, or system / spl-token")
	fs.StringVarP(&cfg.kind, "kind", "k", kindAccount, "record kind: account, instruction, type, state or event")
	fs.StringVarP(&cfg.output, "output", "o", "json", "output format: json or yaml")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "log codec construction to stderr")
	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		printUsage(stderr, fs)
		return fmt.Errorf("missing command")
	}

	var cmd *command
	for i := range commands {
		if commands[i].name == rest[0] {
			cmd = &commands[i]
		}
	}
	if cmd == nil {
		return fmt.Errorf("unknown command %q", rest[0])
	}

	if cfg.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
		borsh.SetLogger(logger)
		coder.SetLogger(logger)
	}

	s, err := open(cfg)
	if err != nil {
		return err
	}
	return cmd.run(s, cfg, rest[1:], stdin, stdout)
}

func printUsage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage: idlcodec [flags] COMMAND [ARGS]\n\nCommands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-14s %-18s %s\n", c.name, c.usage, c.summary)
	}
	fmt.Fprintf(w, "\nState and instruction decoding take no NAME. VALUE or HEX may be - to read stdin.\n\nFlags:\n")
	fs.PrintDefaults()
}

func runList(s *session, cfg config, _ []string, _ io.Reader, stdout io.Writer) error {
	return render(stdout, cfg.output, s.list())
}

// nameArgs splits positional arguments into the record name and the rest.
// State records have a single name, taken from the IDL.
func nameArgs(cfg config, args []string, want int) (string, []string, error) {
	if cfg.kind == kindState {
		if len(args) < want {
			return "", nil, fmt.Errorf("expected %d argument(s), got %d", want, len(args))
		}
		return "", args, nil
	}
	if len(args) < want+1 {
		return "", nil, fmt.Errorf("expected NAME and %d more argument(s), got %d", want, len(args))
	}
	return args[0], args[1:], nil
}

func runEncode(s *session, cfg config, args []string, stdin io.Reader, stdout io.Writer) error {
	want := 1
	if cfg.kind == kindInstruction {
		want = 0
	}
	name, rest, err := nameArgs(cfg, args, want)
	if err != nil {
		return err
	}

	var value any
	if len(rest) > 0 {
		text, err := readArg(rest[0], stdin)
		if err != nil {
			return err
		}
		if value, err = parseValue(text); err != nil {
			return err
		}
	}

	data, err := s.encode(cfg.kind, name, value)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%x\n", data)
	return err
}

func runDecode(s *session, cfg config, args []string, stdin io.Reader, stdout io.Writer) error {
	var name, arg string
	switch cfg.kind {
	case kindInstruction, kindState, kindEvent:
		if len(args) != 1 {
			return fmt.Errorf("expected HEX, got %d argument(s)", len(args))
		}
		arg = args[0]
	default:
		if len(args) != 2 {
			return fmt.Errorf("expected NAME and HEX, got %d argument(s)", len(args))
		}
		name, arg = args[0], args[1]
	}

	text, err := readArg(arg, stdin)
	if err != nil {
		return err
	}
	data, err := parseHex(text)
	if err != nil {
		return err
	}

	v, err := s.decode(cfg.kind, name, data)
	if err != nil {
		return err
	}
	return render(stdout, cfg.output, v)
}

func runDiscriminator(s *session, cfg config, args []string, _ io.Reader, stdout io.Writer) error {
	name, _, err := nameArgs(cfg, args, 0)
	if err != nil {
		return err
	}
	disc, err := s.discriminator(cfg.kind, name)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, disc)
	return err
}

func runSize(s *session, cfg config, args []string, _ io.Reader, stdout io.Writer) error {
	name, _, err := nameArgs(cfg, args, 0)
	if err != nil {
		return err
	}
	info, err := s.size(cfg.kind, name)
	if err != nil {
		return err
	}
	return render(stdout, cfg.output, info)
}

func runMemcmp(s *session, cfg config, args []string, _ io.Reader, stdout io.Writer) error {
	name, rest, err := nameArgs(cfg, args, 0)
	if err != nil {
		return err
	}
	var extra []byte
	if len(rest) > 0 {
		if extra, err = parseHex(rest[0]); err != nil {
			return err
		}
	}
	f, err := s.memcmp(cfg.kind, name, extra)
	if err != nil {
		return err
	}
	return render(stdout, cfg.output, f)
}

func runInspect(s *session, cfg config, _ []string, _ io.Reader, stdout io.Writer) error {
	if !isTerminal(stdout) {
		return render(stdout, cfg.output, s.list())
	}
	return runInteractive(s)
}
