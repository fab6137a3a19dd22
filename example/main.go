package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"testing/fstest"

	"github.com/vovanec/cascade"
	"github.com/vovanec/cascade/loghelper"
)

// ConfigError is returned by the config loader.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("read config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// StartupError is what the application reports when it cannot start.
type StartupError struct {
	Service string
	Cause   error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("start %s: %v", e.Service, e.Cause)
}

func (e *StartupError) Unwrap() error {
	return e.Cause
}

func (e *StartupError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Group("service",
			slog.String("name", e.Service),
		),
	)
}

func readConfig(fsys fs.FS, path string) ([]byte, *cascade.Error[*ConfigError]) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		// The trace starts here.
		return nil, cascade.New(&ConfigError{Path: path, Err: err})
	}
	return data, nil
}

func loadConfig(fsys fs.FS) ([]byte, *cascade.Error[*ConfigError]) {
	data, err := readConfig(fsys, "app.yaml")
	if err != nil {
		return nil, cascade.Relay(err)
	}
	return data, nil
}

func start(ctx context.Context, fsys fs.FS) *cascade.Error[*StartupError] {
	slog.Info("starting service", loghelper.Attr(ctx))

	if _, err := loadConfig(fsys); err != nil {
		return cascade.Translate(err, func(e *ConfigError) *StartupError {
			return &StartupError{Service: "api", Cause: e}
		})
	}
	return nil
}

func main() {

	loghelper.InitLogging(
		loghelper.WithLevel(slog.LevelInfo),
		loghelper.WithOutput(os.Stderr),
	)

	ctx := loghelper.Context(context.Background(),
		slog.Group("request",
			slog.String("id", "b4133182-89a6-11ee-b9d1-0242ac120002"),
		),
	)

	fsys := fstest.MapFS{}

	err := start(ctx, fsys)
	if err == nil {
		return
	}

	/* This will dump the JSON log similar to below object:
	{
	  "time": "2026-10-19T10:12:01.203458Z",
	  "level": "ERROR",
	  "msg": "service failed to start",
	  "request": {
	    "id": "b4133182-89a6-11ee-b9d1-0242ac120002"
	  },
	  "service": {
	    "name": "api"
	  },
	  "error": {
	    "msg": "start api: read config app.yaml: open app.yaml: file does not exist",
	    "origin": "/src/cascade/example/main.go:56",
	    "trace": [
	      "/src/cascade/example/main.go:56",
	      "/src/cascade/example/main.go:64",
	      "/src/cascade/example/main.go:73"
	    ]
	  }
	}
	*/
	slog.Error("service failed to start",
		loghelper.Attr(ctx, err),
	)

	// The trace is still there for %+v.
	fmt.Printf("%+v\n", err)

	// Handlers that only care about the error value drop the trace.
	startupErr := err.IntoInner()
	fmt.Println(startupErr, errors.Is(startupErr, fs.ErrNotExist))
}
