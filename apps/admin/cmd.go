package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/doonites/schoolhub/core"
	"github.com/doonites/schoolhub/core/school"
	"github.com/doonites/schoolhub/core/seed"
	"github.com/doonites/schoolhub/services/export"
)

var (
	isTerminalFunc = term.IsTerminal // mockable
	createFileFunc = func(name string) (io.WriteCloser, error) { return os.Create(name) } // mockable

	errHelp    = errors.New("help provided")
	errAborted = errors.New("aborted")
)

type commandLine struct {
	store  core.Store
	seeder *seed.Seeder
	in     io.Reader
	out    io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  seed [-force]         - seed the demo dataset (only when no users exist, unless -force)")
	fmt.Fprintln(cli.out, "  verify                - check the stored dataset")
	fmt.Fprintln(cli.out, "  dump -ns NAMESPACE    - print a namespace (eg. students:doonites)")
	fmt.Fprintln(cli.out, "  reset [-yes]          - remove every namespace")
	fmt.Fprintln(cli.out, "  export -out FILE      - write the students roster to an XLSX file")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	seedCmd := flag.NewFlagSet("seed", flag.ContinueOnError)
	seedForce := seedCmd.Bool("force", false, "Overwrite the existing dataset.")

	dumpCmd := flag.NewFlagSet("dump", flag.ContinueOnError)
	dumpNS := dumpCmd.String("ns", "", "The namespace to print.")

	resetCmd := flag.NewFlagSet("reset", flag.ContinueOnError)
	resetYes := resetCmd.Bool("yes", false, "Do not ask for confirmation.")

	exportCmd := flag.NewFlagSet("export", flag.ContinueOnError)
	exportOut := exportCmd.String("out", "", "The XLSX file to write.")

	for _, fs := range []*flag.FlagSet{seedCmd, dumpCmd, resetCmd, exportCmd} {
		fs.SetOutput(cli.out)
	}

	ctx := context.Background()
	switch args[1] {
	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.seed(ctx, *seedForce)
	case "verify":
		return cli.verify(ctx)
	case "dump":
		if err := dumpCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *dumpNS == "" {
			dumpCmd.Usage()
			return errHelp
		}
		return cli.dump(ctx, *dumpNS)
	case "reset":
		if err := resetCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.reset(ctx, *resetYes)
	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *exportOut == "" {
			exportCmd.Usage()
			return errHelp
		}
		return cli.export(ctx, *exportOut)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) seed(ctx context.Context, force bool) error {
	if force {
		if err := cli.seeder.SeedAll(ctx); err != nil {
			return err
		}
		if _, err := cli.seeder.SeedNotifications(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "dataset seeded")
		return nil
	}
	seeded, err := cli.seeder.SeedIfEmpty(ctx)
	if err != nil {
		return err
	}
	if seeded {
		fmt.Fprintln(cli.out, "dataset seeded")
	} else {
		fmt.Fprintln(cli.out, "users already exist, nothing to do (use -force to overwrite)")
	}
	return nil
}

func (cli *commandLine) verify(ctx context.Context) error {
	if err := seed.Verify(ctx, cli.store); err != nil {
		var vErr *core.ValidationError
		if errors.As(err, &vErr) {
			for _, f := range vErr.Fields {
				fmt.Fprintf(cli.out, "  %s: %s\n", f.Field, f.Error)
			}
		}
		return err
	}
	fmt.Fprintln(cli.out, "dataset OK")
	return nil
}

func (cli *commandLine) dump(ctx context.Context, ns string) error {
	if !strings.Contains(ns, ":") {
		ns += ":doonites"
	}
	val, err := cli.store.Get(ctx, ns)
	if err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return fmt.Errorf("%s: no such namespace", ns)
		}
		return err
	}
	if isTerminalFunc(int(os.Stdout.Fd())) {
		var buf bytes.Buffer
		if err := json.Indent(&buf, val, "", "  "); err == nil {
			val = buf.Bytes()
		}
	}
	_, err = fmt.Fprintln(cli.out, string(val))
	return err
}

func (cli *commandLine) reset(ctx context.Context, yes bool) error {
	if !yes {
		if !isTerminalFunc(int(os.Stdin.Fd())) {
			return errors.New("refusing to reset without a terminal, use -yes")
		}
		fmt.Fprint(cli.out, "Remove every namespace? [y/N] ")
		answer, _ := bufio.NewReader(cli.in).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			return errAborted
		}
	}
	if err := school.NewDirectory(cli.store).Reset(ctx); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "dataset removed")
	return nil
}

func (cli *commandLine) export(ctx context.Context, name string) error {
	f, err := createFileFunc(name)
	if err != nil {
		return err
	}
	if err := exportsvc.WriteRoster(ctx, cli.store, f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "roster written to %s\n", name)
	return nil
}
