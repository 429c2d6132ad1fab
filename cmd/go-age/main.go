package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"github.com/tartampluch/go-age/internal/server"
	"github.com/tartampluch/go-age/internal/ui"
)

// options holds the parsed command line.
type options struct {
	version bool
	debug   bool
	serve   bool
	port    string
	vcard   string
}

// main delegates to runMain so deferred calls run before os.Exit.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
func runMain() int {
	opts := parseFlags(flag.CommandLine, os.Args[1:])

	if opts.version {
		printVersion(os.Stdout)
		return config.ExitCodeSuccess
	}

	logCloser := setupLogging(opts.debug)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close()
		}()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	if err := run(ctx, opts); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// parseFlags reads the command line. The flag set exits the process on bad input.
func parseFlags(fs *flag.FlagSet, args []string) options {
	var opts options
	fs.BoolVar(&opts.version, config.FlagVersion, false, config.FlagDescVersion)
	fs.BoolVar(&opts.debug, config.FlagDebug, false, config.FlagDescDebug)
	fs.BoolVar(&opts.serve, config.FlagServe, false, config.FlagDescServe)
	fs.StringVar(&opts.port, config.FlagPort, config.DefaultPort, config.FlagDescPort)
	fs.StringVar(&opts.vcard, config.FlagVCard, "", config.FlagDescVCard)
	_ = fs.Parse(args)
	return opts
}

// validate rejects flag combinations run cannot honor.
func (o options) validate() error {
	if o.serve && o.vcard != "" {
		return errors.New(config.ErrVCardServe)
	}
	return nil
}

// run starts either the browser server or the desktop window.
func run(ctx context.Context, opts options) error {
	if err := opts.validate(); err != nil {
		return err
	}

	if opts.serve {
		key, err := server.LoadCSRFKey(os.Getenv(config.EnvCSRFKey))
		if err != nil {
			return err
		}
		srv, err := server.New(opts.port, engine.RealClock{}, key)
		if err != nil {
			return err
		}
		return srv.Start(ctx)
	}

	ctrl := engine.NewController(engine.RealClock{})
	if opts.vcard != "" {
		if err := importVCard(ctrl, opts.vcard); err != nil {
			return err
		}
	}

	gui := ui.NewAgeApp(app.NewWithID(config.AppID), ctx, ctrl)
	gui.Run()
	return nil
}

// importVCard prefills ctrl from a contact card on disk.
func importVCard(ctrl *engine.Controller, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrVCardOpen, err)
	}
	defer func() { _ = f.Close() }()

	return ctrl.ImportVCard(f)
}

// printVersion outputs the build information.
func printVersion(w io.Writer) {
	_, _ = fmt.Fprintf(w, config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging installs a JSON slog logger writing to stdout and, when possible,
// to a log file in the user cache directory.
func setupLogging(debugMode bool) io.Closer {
	writers := []io.Writer{os.Stdout}
	var logFile *os.File

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath returns the log location, creating its directory (0700) if needed.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
