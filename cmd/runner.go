package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/Riddhi-crypto/Rooha/internal/api"
	"github.com/Riddhi-crypto/Rooha/internal/audio"
	"github.com/Riddhi-crypto/Rooha/internal/capture"
	"github.com/Riddhi-crypto/Rooha/internal/detect"
	"github.com/Riddhi-crypto/Rooha/internal/repositories"
	"github.com/Riddhi-crypto/Rooha/internal/shared"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	configPath  string
	api         *api.Client
	pipeline    *detect.Pipeline
	coordinator *capture.Coordinator
	player      *audio.Player
	httpClient  *http.Client
	logger      *log.Logger
	output      io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config      *shared.Config
	ConfigPath  string
	API         *api.Client
	Coordinator *capture.Coordinator
	Player      *audio.Player
	HTTPClient  *http.Client
	Logger      *log.Logger
	Output      io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		jar, _ := cookiejar.New(nil)
		opts.HTTPClient = &http.Client{Jar: jar, Timeout: opts.Config.Server.Timeout()}
	}
	if opts.API == nil {
		opts.API = api.NewClient(opts.Config.Server.BaseURL, opts.HTTPClient, opts.Logger)
	}
	if opts.Coordinator == nil {
		camera := &capture.ExecCamera{
			Command: opts.Config.Camera.Command,
			Args:    opts.Config.Camera.Args,
		}
		constraints := capture.DefaultConstraints()
		if opts.Config.Camera.Width > 0 {
			constraints.Width = opts.Config.Camera.Width
		}
		if opts.Config.Camera.Height > 0 {
			constraints.Height = opts.Config.Camera.Height
		}
		opts.Coordinator = capture.NewCoordinator(camera, constraints, opts.Logger)
	}
	if opts.Player == nil {
		var sink audio.Sink = audio.NopSink{}
		if opts.Config.Audio.Enabled {
			sink = &audio.ExecSink{Command: opts.Config.Audio.Command, Args: opts.Config.Audio.Args}
		}
		opts.Player = audio.NewPlayer(sink, opts.HTTPClient, opts.Logger)
	}

	pipeline := detect.NewPipeline(opts.API, opts.Config.UI.TextDwell(), opts.Config.UI.ImageDwell(), opts.Logger)

	return &Runner{
		config:      opts.Config,
		configPath:  opts.ConfigPath,
		api:         opts.API,
		pipeline:    pipeline,
		coordinator: opts.Coordinator,
		player:      opts.Player,
		httpClient:  opts.HTTPClient,
		logger:      opts.Logger,
		output:      opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		tuiCommand, analyzeCommand, historyCommand, statsCommand, feedbackCommand, authCommand, sessionsCommand, configCommand, serveCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// openRepository opens the local analysis log, running migrations on first
// use. A blank database path disables the log.
func (r *Runner) openRepository() (*repositories.AnalysisRepository, func(), error) {
	if r.config.Database.Path == "" {
		return nil, func() {}, nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open analysis log: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate analysis log: %w", err)
	}

	return repositories.NewAnalysisRepository(db), func() { db.Close() }, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
