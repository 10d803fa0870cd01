package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"go.uber.org/zap"

	"github.com/jacoelho/lsx/internal/config"
	"github.com/jacoelho/lsx/internal/diaglog"
	"github.com/jacoelho/lsx/internal/render"
)

type MainConfig struct {
	ConfigPath string `cli:"name=config desc='HCL configuration file'"`
	Verbose    bool   `cli:"name=v aliases=verbose desc='log dropped and unresolved attributes'"`
	Gops       bool   `cli:"name=gops desc='start a gops diagnostics agent'"`
	Color      bool   `cli:"name=color desc='color text output'"`
	Lenient    bool   `cli:"name=lenient desc='tolerate malformed XML'"`

	Main *cli.Command

	settings *config.Config
	log      *zap.Logger
}

// load reads the configuration file and builds the logger.
func (cfg *MainConfig) load() error {
	cfg.settings = config.Default()
	if cfg.ConfigPath != "" {
		settings, err := config.Load(cfg.ConfigPath)
		if err != nil {
			return err
		}
		cfg.settings = settings
	}
	if cfg.Lenient {
		cfg.settings.Strict = false
	}
	log, err := diaglog.NewLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	cfg.log = log
	return nil
}

func (cfg *MainConfig) settingsOrDefault() *config.Config {
	if cfg.settings == nil {
		return config.Default()
	}
	return cfg.settings
}

// colors decides text coloring: the -color flag wins, then the config file, then
// whether w is a terminal.
func (cfg *MainConfig) colors(w io.Writer) *render.Colors {
	if cfg.Color {
		return render.NewColors()
	}
	colorSet := false
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name != "color" {
				continue
			}
			colorSet = opt.Value != nil
			break
		}
	}
	if colorSet {
		return nil
	}
	if c := cfg.settingsOrDefault().Color; c != nil {
		if *c {
			return render.NewColors()
		}
		return nil
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return render.NewColors()
	}
	return nil
}

// session assembles the per-run collaborators from the loaded configuration.
func (cfg *MainConfig) session(w io.Writer) (*session, error) {
	log := cfg.log
	if log == nil {
		log = zap.NewNop()
	}
	return newSession(cfg.settingsOrDefault(), log, cfg.colors(w))
}

type DecodeConfig struct {
	*MainConfig
	Format  string `cli:"name=format aliases=f desc='output format: text, yaml, json'"`
	Section string `cli:"name=section aliases=s desc='only decode the named region'"`

	Decode *cli.Command
}

type FindConfig struct {
	*MainConfig
	Format  string `cli:"name=format aliases=f desc='output format: text, yaml, json'"`
	Section string `cli:"name=section aliases=s desc='region to search'"`
	Key     string `cli:"name=key aliases=k desc='key attribute name'"`
	Profile string `cli:"name=profile aliases=p desc='configured section and key pair'"`

	Find *cli.Command
}

type QueryConfig struct {
	*MainConfig
	Format  string `cli:"name=format aliases=f desc='output format: text, yaml, json'"`
	Section string `cli:"name=section aliases=s desc='region to search'"`
	Where   string `cli:"name=where aliases=w desc='expr predicate over name, attr, kind, types, depth, descendants, children'"`

	Query *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Section string `cli:"name=section aliases=s desc='region to search'"`
	Key     string `cli:"name=key aliases=k desc='key attribute name'"`
	Profile string `cli:"name=profile aliases=p desc='configured section and key pair'"`

	Diff *cli.Command
}

type TypesConfig struct {
	*MainConfig

	Types *cli.Command
}

// lookup resolves section and key from flags, falling back to a named profile.
func lookup(settings *config.Config, profile, section, key string) (string, string, error) {
	if profile != "" {
		p, ok := settings.Profile(profile)
		if !ok {
			return "", "", fmt.Errorf("%w: unknown profile %q", cli.ErrUsage, profile)
		}
		if section == "" {
			section = p.Section
		}
		if key == "" {
			key = p.Key
		}
	}
	if section == "" || key == "" {
		return "", "", fmt.Errorf("%w: -section and -key (or -profile) are required", cli.ErrUsage)
	}
	return section, key, nil
}
