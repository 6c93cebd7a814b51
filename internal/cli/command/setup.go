package command

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/minad/tab-bookmark/internal/cli/config"
	"github.com/minad/tab-bookmark/internal/cli/output"
	"github.com/minad/tab-bookmark/internal/cli/prompt"
	"github.com/minad/tab-bookmark/internal/core/domain"
	"github.com/minad/tab-bookmark/internal/core/service"
	"github.com/minad/tab-bookmark/internal/storage"
	"github.com/minad/tab-bookmark/internal/storage/badgerstore"
	"github.com/minad/tab-bookmark/internal/storage/filestore"
	"github.com/minad/tab-bookmark/internal/storage/memory"
	"github.com/minad/tab-bookmark/internal/telemetry/logger"
	"github.com/minad/tab-bookmark/internal/telemetry/metric"
	"github.com/minad/tab-bookmark/internal/workspace"
	"github.com/minad/tab-bookmark/internal/workspace/tmux"
)

const envKey = "env"

// Env holds the wired dependencies shared by all actions.
type Env struct {
	Config  *config.Config
	Manager *service.Manager
	History *prompt.History

	store    storage.RecordStore
	prompter *prompt.Prompter
}

// setup wires config, logger, store, workspace and manager. A pre-seeded
// Env in the app metadata wins, which is how tests inject fakes.
func setup(c *cli.Context) error {
	if _, ok := c.App.Metadata[envKey].(*Env); ok {
		return nil
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if c.Bool("verbose") {
		level = "debug"
	}
	log := logger.New(logger.Config{Level: level, Format: cfg.Log.Format})
	logger.SetDefault(log)

	store, err := openStore(cfg, log)
	if err != nil {
		return err
	}

	ws := tmux.New()

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(metric.NewCollector(prometheus.NewRegistry())),
	}
	if cfg.Workspace.Hidden {
		opts = append(opts, service.WithFilter(func(b workspace.Buffer) bool {
			return b.Title != ""
		}))
	}

	c.App.Metadata[envKey] = &Env{
		Config:  cfg,
		Manager: service.NewManager(store, ws, opts...),
		History: prompt.NewHistory(),
		store:   store,
	}
	return nil
}

func openStore(cfg *config.Config, log logger.Logger) (storage.RecordStore, error) {
	switch cfg.Store.Backend {
	case config.BackendBadger:
		dir := cfg.Store.Path
		if dir == "" {
			dir = badgerstore.DefaultDir()
		}
		return badgerstore.New(badgerstore.Config{
			Dir:        dir,
			Passphrase: cfg.Store.Passphrase,
			Algorithm:  cfg.Store.Algorithm,
		}, badgerstore.WithLogger(log)), nil
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendFile:
		path := cfg.Store.Path
		if path == "" {
			path = filestore.DefaultPath()
		}
		return filestore.New(path,
			filestore.WithLogger(log),
			filestore.WithWatch(cfg.Store.Watch),
		), nil
	default:
		return nil, domain.ErrInvalidArgument.WithDetails("unknown store backend: " + cfg.Store.Backend)
	}
}

// teardown closes the store and flushes prompt history.
func teardown(c *cli.Context) error {
	env, ok := c.App.Metadata[envKey].(*Env)
	if !ok {
		return nil
	}
	if env.History != nil {
		if err := env.History.Save(); err != nil {
			logger.Default().Warn("save prompt history", "error", err)
		}
	}
	if env.store != nil {
		return env.store.Close()
	}
	return nil
}

// getEnv retrieves the wired environment from app metadata.
func getEnv(c *cli.Context) *Env {
	env, _ := c.App.Metadata[envKey].(*Env)
	return env
}

// prompterFor returns the invocation's prompter, created on first use.
// Actions that prompt more than once must share one prompter: each one
// owns a buffered reader, and a second reader on the same input would
// miss lines the first already consumed.
func prompterFor(c *cli.Context, env *Env) (*prompt.Prompter, error) {
	if env.prompter != nil {
		return env.prompter, nil
	}

	var opts []prompt.Option
	if env.History != nil {
		if err := env.History.Load(); err != nil {
			return nil, err
		}
		opts = append(opts, prompt.WithHistory(env.History))
	}

	in, _, errOut := ioStreams(c)
	env.prompter = prompt.New(in, errOut, opts...)
	return env.prompter, nil
}

// formatterFor resolves the output format, flag over config file.
func formatterFor(c *cli.Context, env *Env) output.Formatter {
	format := c.String("output")
	if format == "" && env.Config != nil {
		format = env.Config.Output
	}
	if f := output.Format(format); f == output.FormatJSON || f == output.FormatYAML {
		return output.NewFormatter(f)
	}
	return &output.TableFormatter{NoHeaders: c.Bool("no-headers")}
}

// ioStreams returns the app's reader and writers, defaulting to the
// process streams. Tests substitute buffers via cli.App fields.
func ioStreams(c *cli.Context) (in io.Reader, out, errOut io.Writer) {
	return c.App.Reader, c.App.Writer, c.App.ErrWriter
}
