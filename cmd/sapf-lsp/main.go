// Command sapf-lsp is a Language Server Protocol server for the sapf audio
// language.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	sapf "github.com/vasilymilovidov/sapf-lsp"
	"github.com/vasilymilovidov/sapf-lsp/lsp"
)

var version = "dev"

func main() {
	app := &cli.Command{
		Name:    "sapf-lsp",
		Version: version,
		Usage:   "Language server for the sapf audio language",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dict",
				Usage: "load the word dictionary from a YAML `FILE` instead of the embedded payload",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Action: serve,
	}

	err := app.Run(context.Background(), os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	logger, err := newLogger(cmd.Bool("verbose"))
	if err != nil {
		return err
	}

	defer func() {
		_ = logger.Sync()
	}()

	dict, err := loadDictionary(cmd.String("dict"))
	if err != nil {
		return err
	}

	logger.Info("Starting sapf-lsp server",
		zap.String("version", version),
		zap.Int("categories", dict.Len()))

	return run(ctx, logger, dict, os.Stdin, os.Stdout)
}

// newLogger builds a logger writing to stderr: stdout carries the LSP
// stream. An interactive stderr gets the console encoder, anything else
// (editors capture server logs to files) gets production JSON.
func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if isatty.IsTerminal(os.Stderr.Fd()) {
		config = zap.NewDevelopmentConfig()
	}

	config.OutputPaths = []string{"stderr"}

	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return config.Build()
}

// loadDictionary returns the embedded dictionary, or one parsed from the
// given path. A malformed payload is fatal: the server must not start
// answering from a partial knowledge base.
func loadDictionary(path string) (*sapf.Dictionary, error) {
	if path == "" {
		return sapf.Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	dict, err := sapf.Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading dictionary %s: %w", path, err)
	}

	return dict, nil
}

func run(ctx context.Context, logger *zap.Logger, dict *sapf.Dictionary, in io.Reader, out io.Writer) error {
	// Create a JSON-RPC stream connection over stdio
	stream := jsonrpc2.NewStream(&readWriteCloser{in, out})
	conn := jsonrpc2.NewConn(stream)

	// Create a client to send notifications to the editor
	client := protocol.ClientDispatcher(conn, logger)

	// Create our LSP server
	server := lsp.NewServer(client, logger, dict)

	// Register the server handler with the connection
	conn.Go(ctx, protocol.ServerHandler(server, nil))

	// Wait for the connection to close
	<-conn.Done()

	return conn.Err()
}

// readWriteCloser wraps separate reader/writer into io.ReadWriteCloser.
type readWriteCloser struct {
	io.Reader
	io.Writer
}

func (rwc *readWriteCloser) Close() error {
	// Close writer if it's closeable
	if c, ok := rwc.Writer.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
