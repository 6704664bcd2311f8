// Package content loads the interactive event and lesson bundles.
//
// Both bundles are JSON files. The defaults are embedded in the binary; a
// directory on disk can replace them. Content is validated once at load time
// and treated as well formed afterwards.
package content

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"goodcents/internal/core"
)

const (
	EventsFile  = "interactive-events.json"
	LessonsFile = "education.json"
)

//go:embed data/*.json
var defaultFS embed.FS

// Provider hands parsed content to the engine.
type Provider interface {
	EventGroups() []core.EventGroup
	LessonSections() []core.LessonSection
}

// Bundle is an immutable, validated set of events and lessons.
type Bundle struct {
	events  []core.EventGroup
	lessons []core.LessonSection
}

var _ Provider = (*Bundle)(nil)

// NewBundle validates already-parsed content.
func NewBundle(events []core.EventGroup, lessons []core.LessonSection) (*Bundle, error) {
	b := &Bundle{events: events, lessons: lessons}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bundle) EventGroups() []core.EventGroup { return b.events }
func (b *Bundle) LessonSections() []core.LessonSection { return b.lessons }

// Lessons flattens the sections in display order.
func Lessons(p Provider) []core.Lesson {
	var out []core.Lesson
	for _, s := range p.LessonSections() {
		out = append(out, s.Lessons...)
	}
	return out
}

// FindLesson looks a lesson up by id.
func FindLesson(p Provider, id int) (core.Lesson, bool) {
	for _, l := range Lessons(p) {
		if l.ID == id {
			return l, true
		}
	}
	return core.Lesson{}, false
}

// FindEvent looks an interactive event up by id across all groups.
func FindEvent(p Provider, id int) (core.InteractiveEvent, bool) {
	for _, g := range p.EventGroups() {
		for _, e := range g.Events {
			if e.ID == id {
				return e, true
			}
		}
	}
	return core.InteractiveEvent{}, false
}

func (b *Bundle) Validate() error {
	if len(b.events) == 0 {
		return fmt.Errorf("%w: no interactive events", core.ErrInvalidContent)
	}
	for _, g := range b.events {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("%w: %v", core.ErrInvalidContent, err)
		}
	}
	seen := map[int]bool{}
	for _, l := range Lessons(b) {
		if seen[l.ID] {
			return fmt.Errorf("%w: duplicate lesson id %d", core.ErrInvalidContent, l.ID)
		}
		seen[l.ID] = true
		if err := l.Validate(); err != nil {
			return fmt.Errorf("%w: %v", core.ErrInvalidContent, err)
		}
	}
	return nil
}

// LoadDefault loads the embedded bundle.
func LoadDefault(ctx context.Context) (*Bundle, error) {
	sub, err := fs.Sub(defaultFS, "data")
	if err != nil {
		return nil, fmt.Errorf("open embedded content: %w", err)
	}
	return Load(ctx, sub)
}

// LoadDir loads both files from dir, or the embedded defaults when dir is
// empty.
func LoadDir(ctx context.Context, dir string) (*Bundle, error) {
	if dir == "" {
		return LoadDefault(ctx)
	}
	return Load(ctx, os.DirFS(dir))
}

// Load reads and parses both files concurrently.
func Load(ctx context.Context, fsys fs.FS) (*Bundle, error) {
	var (
		events  []core.EventGroup
		lessons []core.LessonSection
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return decodeFile(gctx, fsys, EventsFile, &events) })
	g.Go(func() error { return decodeFile(gctx, fsys, LessonsFile, &lessons) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b, err := NewBundle(events, lessons)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Content loaded",
		"event_groups", len(events),
		"lesson_sections", len(lessons),
		"lessons", len(Lessons(b)))
	return b, nil
}

func decodeFile(ctx context.Context, fsys fs.FS, name string, dst any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", core.ErrInvalidContent, name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: parse %s: %v", core.ErrInvalidContent, name, err)
	}
	return nil
}
