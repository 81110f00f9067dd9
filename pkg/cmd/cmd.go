// Package cmd bridges plain option-struct functions into the cli
// command interface.
//
// A command is written as
//
//	func(ctx context.Context, opts struct{ ... }) error
//
// with go-flags tags on the struct. The wrapper owns flag parsing,
// signal cancellation, and progress display attachment, so command
// bodies only see a live context and their parsed options.
package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"reflect"

	"github.com/jessevdk/go-flags"
	"golang.org/x/sys/unix"

	"ridgeline.dev/cairn/pkg/progress"
)

type Command struct {
	name     string
	synopsis string

	fn   reflect.Value
	opts reflect.Value

	parser *flags.Parser
}

func New(name, synopsis string, fn interface{}) *Command {
	fv := reflect.ValueOf(fn)

	if fv.Kind() != reflect.Func {
		panic("must pass a function")
	}

	ft := fv.Type()

	if ft.NumIn() != 2 {
		panic("must provide two arguments only")
	}

	if ft.NumOut() != 1 {
		panic("must return one argument only")
	}

	in := ft.In(1)

	if in.Kind() != reflect.Struct {
		panic("argument must be a struct")
	}

	ov := reflect.New(in)

	parser := flags.NewNamedParser(name, flags.Default)
	parser.ShortDescription = synopsis
	parser.LongDescription = synopsis

	_, err := parser.AddGroup("Application Options", "", ov.Interface())
	if err != nil {
		panic(err)
	}

	return &Command{
		name:     name,
		synopsis: synopsis,
		fn:       fv,
		opts:     ov,
		parser:   parser,
	}
}

func (c *Command) Help() string {
	var buf bytes.Buffer
	c.parser.WriteHelp(&buf)
	return buf.String()
}

func (c *Command) Synopsis() string {
	return c.synopsis
}

func (c *Command) Run(args []string) int {
	_, err := c.parser.ParseArgs(args)
	if err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			return 0
		}

		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cancelOnSignal(cancel, os.Interrupt, unix.SIGQUIT, unix.SIGTERM)

	ctx = progress.Open(ctx, os.Stderr)

	rets := c.fn.Call([]reflect.Value{reflect.ValueOf(ctx), c.opts.Elem()})

	if err, ok := rets[0].Interface().(error); ok {
		if err != nil {
			fmt.Printf("! Error: %+v\n", err)
			return 1
		}
	}

	return 0
}

func cancelOnSignal(cancel func(), signals ...os.Signal) {
	c := make(chan os.Signal, 2)
	signal.Notify(c, signals...)

	go func() {
		for range c {
			cancel()
		}
	}()
}
