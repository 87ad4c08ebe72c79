package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/mpyw/purefunc/internal/config"
	"github.com/mpyw/purefunc/internal/discover"
	"github.com/mpyw/purefunc/internal/expand"
	"github.com/mpyw/purefunc/internal/rewrite"
	"github.com/mpyw/purefunc/internal/watch"
)

func expandCommand(c *cli.Context) error {
	name := c.Args().First()

	var (
		item []byte
		err  error
	)
	if name == "" || name == "-" {
		name = "<stdin>"
		item, err = io.ReadAll(c.App.Reader)
	} else {
		item, err = os.ReadFile(name)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}

	res := expand.Expand(c.String("args"), item)

	if !res.OK() {
		fmt.Fprintf(c.App.ErrWriter, "%s: %s\n", name, res.Diagnostic.Message)
	}

	if _, err := c.App.Writer.Write(res.Output); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if !res.OK() {
		return errIssues
	}

	return nil
}

func checkCommand(c *cli.Context) error {
	p, err := newProject(c)
	if err != nil {
		return err
	}

	files, err := discover.Files(p.root, p.opts)
	if err != nil {
		return err
	}

	sum, err := p.process(c.Context, files, false)
	if err != nil {
		return err
	}

	p.reportFailures(sum)

	changed := sum.Changed()
	for _, r := range changed {
		fmt.Fprintf(p.stdout, "%s: not encapsulated: %s\n", p.rel(r.Path), strings.Join(r.Expanded, ", "))
	}

	if len(sum.Failures()) > 0 || len(changed) > 0 {
		return errIssues
	}

	return nil
}

func rewriteCommand(c *cli.Context) error {
	p, err := newProject(c)
	if err != nil {
		return err
	}

	write := c.Bool("write")

	files, err := discover.Files(p.root, p.opts)
	if err != nil {
		return err
	}

	err = p.rewrite(c.Context, files, write)
	if !c.Bool("watch") {
		return err
	}
	if err != nil && !errors.Is(err, errIssues) {
		return err
	}

	return p.watch(c.Context, write)
}

// project is the state shared by check and rewrite.
type project struct {
	root   string
	cfg    *config.Config
	opts   discover.Options
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

func newProject(c *cli.Context) (*project, error) {
	dir := c.Args().First()
	if dir == "" {
		dir = "."
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}

	configPath := c.String("config")
	if configPath == "" {
		configPath = filepath.Join(root, config.DefaultFile)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	// Flags override the file
	if include := c.StringSlice("include"); len(include) > 0 {
		cfg.Include = include
	}
	if exclude := c.StringSlice("exclude"); len(exclude) > 0 {
		cfg.Exclude = append(cfg.Exclude, exclude...)
	}
	if c.IsSet("jobs") {
		cfg.Jobs = c.Int("jobs")
	}
	if c.Bool("no-gitignore") {
		cfg.RespectGitignore = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &project{
		root: root,
		cfg:  cfg,
		opts: discover.Options{
			Include:          cfg.Include,
			Exclude:          cfg.Exclude,
			RespectGitignore: cfg.RespectGitignore,
		},
		logger: newLogger(c.App.ErrWriter, c.Bool("verbose")),
		stdout: c.App.Writer,
		stderr: c.App.ErrWriter,
	}, nil
}

func (p *project) process(ctx context.Context, files []string, write bool) (*rewrite.Summary, error) {
	p.logger.Debug("processing files", "root", p.root, "files", len(files), "jobs", p.cfg.Workers())

	return rewrite.Run(ctx, files, rewrite.Options{
		Root:   p.root,
		Jobs:   p.cfg.Workers(),
		Write:  write,
		Logger: p.logger,
	})
}

// rewrite processes files once and prints the outcome. Without write it
// prints a diff per changed file.
func (p *project) rewrite(ctx context.Context, files []string, write bool) error {
	sum, err := p.process(ctx, files, write)
	if err != nil {
		return err
	}

	p.reportFailures(sum)

	for _, r := range sum.Changed() {
		if write {
			fmt.Fprintf(p.stdout, "rewrote %s: %s\n", p.rel(r.Path), strings.Join(r.Expanded, ", "))
			continue
		}

		diff, err := r.Diff()
		if err != nil {
			return fmt.Errorf("diffing %s: %w", r.Path, err)
		}
		fmt.Fprint(p.stdout, diff)
	}

	if len(sum.Failures()) > 0 {
		return errIssues
	}

	return nil
}

func (p *project) watch(ctx context.Context, write bool) error {
	dirs, err := discover.Dirs(p.root, p.opts)
	if err != nil {
		return err
	}

	w, err := watch.New(dirs, watch.Options{
		Debounce: p.cfg.Debounce(),
		Filter: func(path string) bool {
			rel, err := filepath.Rel(p.root, path)
			return err == nil && discover.Match(rel, p.opts)
		},
		Logger: p.logger,
	})
	if err != nil {
		return err
	}

	p.logger.Info("watching", "root", p.root, "dirs", len(dirs))

	return w.Run(ctx, func(ctx context.Context, paths []string) {
		err := p.rewrite(ctx, paths, write)
		if err != nil && !errors.Is(err, errIssues) {
			p.logger.Error("rewrite failed", "error", err)
		}
	})
}

func (p *project) reportFailures(sum *rewrite.Summary) {
	for _, f := range sum.Failures() {
		f.Position.Filename = p.rel(f.Position.Filename)
		fmt.Fprintln(p.stderr, f.String())
	}
}

func (p *project) rel(path string) string {
	rel, err := filepath.Rel(p.root, path)
	if err != nil {
		return path
	}

	return rel
}
