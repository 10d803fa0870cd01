package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
	"go.uber.org/zap"

	"github.com/jacoelho/lsx"
	"github.com/jacoelho/lsx/internal/config"
	"github.com/jacoelho/lsx/internal/diaglog"
	"github.com/jacoelho/lsx/internal/query"
	"github.com/jacoelho/lsx/internal/render"
	"github.com/jacoelho/lsx/internal/textdiff"
	"github.com/jacoelho/lsx/pkg/lsxstream"
	"github.com/jacoelho/lsx/pkg/lsxtype"
)

// session holds what one command invocation needs to read and print documents.
type session struct {
	settings *config.Config
	log      *zap.Logger
	colors   *render.Colors
	counter  *lsx.DiagnosticCounter
	resolver *lsxtype.Resolver
	locator  lsx.Locator
}

func newSession(settings *config.Config, log *zap.Logger, colors *render.Colors) (*session, error) {
	resolver, err := settings.Resolver()
	if err != nil {
		return nil, err
	}
	counter := &lsx.DiagnosticCounter{}
	s := &session{
		settings: settings,
		log:      log,
		colors:   colors,
		counter:  counter,
		resolver: resolver,
	}
	s.locator.Builder = lsx.Builder{
		Resolver:    resolver,
		Diagnostics: lsx.MultiDiagnostics{diaglog.New(log), counter},
	}
	return s, nil
}

func (s *session) streamOpts() []lsxstream.Option {
	return []lsxstream.Option{lsxstream.WithStrict(s.settings.Strict)}
}

func (s *session) format(flag string) (render.Format, error) {
	if flag == "" {
		flag = s.settings.Format
	}
	return render.ParseFormat(flag)
}

// withStream opens path ("-" for in) and runs fn over its element stream.
func (s *session) withStream(path string, in io.Reader, fn func(lsx.ElementStream) error) error {
	var r io.Reader = in
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	stream, err := lsxstream.NewReader(r, s.streamOpts()...)
	if err != nil {
		return err
	}
	if err := fn(stream); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func (s *session) summary(path string) {
	s.log.Debug("Decode summary",
		zap.String("file", path),
		zap.Int64("dropped", s.counter.DroppedCount()),
		zap.Int64("unresolved", s.counter.UnresolvedCount()),
	)
}

func (s *session) decode(ctx context.Context, w io.Writer, in io.Reader, path, section, format string) error {
	outFormat, err := s.format(format)
	if err != nil {
		return err
	}
	var nodes []*lsx.Node
	err = s.withStream(path, in, func(stream lsx.ElementStream) error {
		regions, err := s.locator.Builder.Decode(ctx, stream)
		if err != nil {
			return err
		}
		for _, region := range regions {
			if section == "" || region.ID == section {
				nodes = append(nodes, region.Nodes...)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.summary(path)
	return render.Write(w, nodes, render.Options{Format: outFormat, Colors: s.colors})
}

func (s *session) find(ctx context.Context, in io.Reader, path, section, key, value string) (*lsx.Node, error) {
	var found *lsx.Node
	err := s.withStream(path, in, func(stream lsx.ElementStream) error {
		n, err := s.locator.Find(ctx, stream, section, key, value)
		found = n
		return err
	})
	s.summary(path)
	return found, err
}

func (s *session) query(ctx context.Context, w io.Writer, in io.Reader, path, section, where, format string) (int, error) {
	outFormat, err := s.format(format)
	if err != nil {
		return 0, err
	}
	predicate, err := query.Compile(where)
	if err != nil {
		return 0, err
	}
	var matched []*lsx.Node
	err = s.withStream(path, in, func(stream lsx.ElementStream) error {
		nodes, err := s.locator.Select(ctx, stream, section, nil)
		if err != nil {
			return err
		}
		matched, err = predicate.Filter(nodes)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.summary(path)
	return len(matched), render.Write(w, matched, render.Options{Format: outFormat, Colors: s.colors})
}

// diff finds the keyed node in both files and prints a line diff of their text
// renderings. It reports whether they differ. At most one side may be "-" (in).
func (s *session) diff(ctx context.Context, w io.Writer, in io.Reader, section, key, value, fromPath, toPath string) (bool, error) {
	if fromPath == "-" && toPath == "-" {
		return false, fmt.Errorf("%w: diff can read only one side from stdin", cli.ErrUsage)
	}
	from, err := s.find(ctx, in, fromPath, section, key, value)
	if err != nil {
		return false, err
	}
	to, err := s.find(ctx, in, toPath, section, key, value)
	if err != nil {
		return false, err
	}
	lines := textdiff.Lines(textOf(from), textOf(to))
	var colorize func(textdiff.Op, string) string
	if s.colors != nil {
		colorize = func(op textdiff.Op, line string) string {
			if op == textdiff.Insert {
				return s.colors.Color(render.InsertRole, line)
			}
			return s.colors.Color(render.DeleteRole, line)
		}
	}
	if _, err := io.WriteString(w, textdiff.Format(lines, colorize)); err != nil {
		return false, err
	}
	return textdiff.Changed(lines), nil
}

func writeNodes(w io.Writer, s *session, format render.Format, nodes ...*lsx.Node) error {
	return render.Write(w, nodes, render.Options{Format: format, Colors: s.colors})
}

func textOf(n *lsx.Node) string {
	if n == nil {
		return ""
	}
	return render.Text(n, nil)
}

func (s *session) types(w io.Writer) error {
	for _, o := range s.resolver.Ordinals() {
		if _, err := fmt.Fprintf(w, "%3d  %s\n", o.Index, o.Name); err != nil {
			return err
		}
	}
	return nil
}
