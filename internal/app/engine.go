package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Breureka/exifrenamer/internal/config"
	"github.com/Breureka/exifrenamer/internal/domain"
	appErrors "github.com/Breureka/exifrenamer/internal/errors"
	"github.com/Breureka/exifrenamer/internal/logging"
	"github.com/Breureka/exifrenamer/internal/timestamp"
)

type Stage int

const (
	StageInspect Stage = iota
	StagePlace
)

// ProgressFunc is called after each file of a stage has been handled.
type ProgressFunc func(stage Stage, current, total int, path string)

// Engine walks the source tree and places every JPEG under a name derived
// from its capture time.
type Engine struct {
	FS         FileSystem
	Exif       ExifReader
	Sniffer    Sniffer
	Reporter   Reporter
	Logger     logging.Logger
	OnProgress ProgressFunc
}

// Run processes cfg.SourceDir. Per-file problems are reported and counted;
// the returned error is non-nil only when the run had to stop, e.g. because
// a destination directory could not be created.
func (e *Engine) Run(ctx context.Context, cfg config.Config) (domain.Summary, error) {
	if e.FS == nil || e.Exif == nil || e.Sniffer == nil {
		return domain.Summary{}, errors.New("engine requires FS, Exif and Sniffer")
	}
	if e.Reporter == nil {
		e.Reporter = nopReporter{}
	}

	stop := e.Logger.Measure("Organizing photos")
	defer stop()

	var summary domain.Summary
	paths, err := e.walk(cfg.SourceDir, &summary)
	if err != nil {
		return summary, appErrors.Wrap(appErrors.IOFailure, "walk", cfg.SourceDir, err)
	}
	e.Logger.Verbosef("Found %d files in %s, %d with a JPEG extension", summary.Seen, cfg.SourceDir, len(paths))

	inspections, err := e.inspect(ctx, paths, cfg.Workers)
	if err != nil {
		return summary, err
	}

	p := placer{
		engine:     e,
		cfg:        cfg,
		collisions: NewCollisionResolver(e.FS),
		dirs:       make(map[string]bool),
		summary:    &summary,
	}
	total := len(inspections)
	for i, ins := range inspections {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if err := p.place(ins); err != nil {
			return summary, err
		}
		e.progress(StagePlace, i+1, total, ins.meta.SourcePath)
	}

	e.Logger.Verbosef("Copied %d files, %d failed, %d skipped", summary.Copied, summary.Failed(), summary.NotJPEG)
	return summary, nil
}

// walk lists regular files with a JPEG extension in enumeration order.
// Unreadable subdirectories are reported and skipped.
func (e *Engine) walk(root string, summary *domain.Summary) ([]string, error) {
	stop := e.Logger.Measure("Scanning source directory")
	defer stop()

	var paths []string
	err := e.FS.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			summary.ReadFailures++
			e.Reporter.Report(domain.Event{Kind: domain.EventReadFailed, Path: path, Err: walkErr})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if t := d.Type(); !t.IsRegular() && t&fs.ModeSymlink == 0 {
			return nil
		}
		summary.Seen++
		if !domain.IsJpegExtension(filepath.Ext(d.Name())) {
			summary.NotJPEG++
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	return paths, err
}

func (e *Engine) progress(stage Stage, current, total int, path string) {
	if e.OnProgress != nil {
		e.OnProgress(stage, current, total, path)
	}
}

// placer carries the per-run placement state: claimed names and the
// directories known to exist (or planned to, in a dry run).
type placer struct {
	engine     *Engine
	cfg        config.Config
	collisions *CollisionResolver
	dirs       map[string]bool
	summary    *domain.Summary
}

func (p *placer) report(ev domain.Event) {
	p.engine.Reporter.Report(ev)
}

func (p *placer) place(ins inspection) error {
	src := ins.meta.SourcePath
	p.report(domain.Event{Kind: domain.EventProcess, Path: src})

	if ins.err != nil {
		p.summary.ReadFailures++
		p.report(domain.Event{Kind: domain.EventReadFailed, Path: src, Err: ins.err})
		return nil
	}
	if ins.corrupt {
		p.summary.Corrupt++
		p.report(domain.Event{Kind: domain.EventCorrupt, Path: src})
		return nil
	}

	res := ins.result
	if res.Raw != "" {
		p.report(domain.Event{Kind: domain.EventTimestamp, Path: src, Raw: res.Raw})
	}
	if !res.OK() {
		switch res.Kind {
		case timestamp.Missing:
			p.summary.MissingTimestamp++
		case timestamp.Invalid:
			p.summary.InvalidTimestamp++
		default:
			p.summary.MalformedTimestamp++
		}
		p.report(domain.Event{Kind: domain.EventTimestampFailed, Path: src, Raw: res.Raw, Reason: res.Reason()})
		return nil
	}

	relDir, base := p.cfg.Template.Format(res.Time)
	targetDir := filepath.Join(p.cfg.TargetDir, relDir)
	if err := p.ensureDir(targetDir); err != nil {
		return err
	}

	if p.cfg.InPlace && alreadyPlaced(src, targetDir, base) {
		p.collisions.Claim(src)
		p.summary.InPlace++
		p.report(domain.Event{Kind: domain.EventInPlace, Path: src, Target: src})
		return nil
	}

	item, err := p.copy(ins.meta, targetDir, base)
	if err != nil {
		p.summary.CopyFailures++
		p.report(domain.Event{Kind: domain.EventCopyFailed, Path: src, Target: item.TargetPath(), Err: err})
		return nil
	}

	p.summary.Copied++
	p.report(domain.Event{Kind: domain.EventCopied, Path: src, Target: item.TargetPath(), Simulated: p.cfg.DryRun})
	return nil
}

// ensureDir creates dir and its parents. A failure is fatal for the run.
func (p *placer) ensureDir(dir string) error {
	if p.dirs[dir] {
		return nil
	}
	exists, err := p.engine.FS.Exists(dir)
	if err != nil {
		return appErrors.Wrap(appErrors.IOFailure, "mkdir", dir, err)
	}
	if !exists {
		if !p.cfg.DryRun {
			if err := p.engine.FS.MkdirAll(dir, 0o755); err != nil {
				return appErrors.Wrap(appErrors.IOFailure, "mkdir", dir, err)
			}
		}
		p.summary.DirsCreated++
		p.report(domain.Event{Kind: domain.EventMkdir, Path: dir, Simulated: p.cfg.DryRun})
	}
	p.dirs[dir] = true
	return nil
}

// copy resolves a free name and copies meta there. A name that appears on
// disk between resolution and the exclusive create is skipped and the next
// suffix tried.
func (p *placer) copy(meta domain.FileMeta, dir, base string) (domain.CopyItem, error) {
	item := domain.CopyItem{FileMeta: meta, TargetDir: dir, BaseName: base}
	for {
		name, err := p.collisions.Resolve(dir, base)
		if err != nil {
			return item, err
		}
		item.BaseName = name
		if p.cfg.DryRun {
			return item, nil
		}

		err = p.engine.FS.CopyFile(meta.SourcePath, item.TargetPath())
		if errors.Is(err, fs.ErrExist) {
			p.engine.Logger.Warnf("%s appeared while copying, trying next name", item.TargetPath())
			continue
		}
		if err != nil {
			return item, err
		}
		if p.cfg.InPlace {
			if err := p.engine.FS.Remove(meta.SourcePath); err != nil {
				return item, fmt.Errorf("remove source after copy: %w", err)
			}
		}
		return item, nil
	}
}

// alreadyPlaced reports whether src already sits in dir under base.jpg or
// base_N.jpg, as left by an earlier in-place run.
func alreadyPlaced(src, dir, base string) bool {
	if filepath.Dir(filepath.Clean(src)) != filepath.Clean(dir) {
		return false
	}
	name := filepath.Base(src)
	if filepath.Ext(name) != domain.JPEGExt {
		return false
	}
	name = strings.TrimSuffix(name, domain.JPEGExt)
	if name == base {
		return true
	}
	suffix, ok := strings.CutPrefix(name, base+"_")
	if !ok {
		return false
	}
	n, err := strconv.Atoi(suffix)
	return err == nil && n > 0 && strconv.Itoa(n) == suffix
}
