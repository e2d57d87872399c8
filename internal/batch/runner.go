// Package batch drives a full extraction: it reads every submission of a
// batch with its layout, writes one JSON document per section, and writes
// the combined list.
package batch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/garyjia/election-finance/internal/format"
	"github.com/garyjia/election-finance/internal/models"
	"github.com/garyjia/election-finance/internal/reconcile"
	"github.com/garyjia/election-finance/internal/storage"
	"github.com/garyjia/election-finance/internal/workbook"
)

// CombinedFileName is the document holding every line item of the batch
const CombinedFileName = "combined.json"

// ErrNoSubmissions is returned for a batch without input workbooks
var ErrNoSubmissions = errors.New("batch has no submissions")

// Submission is one submitted workbook. Number orders submissions within a batch.
type Submission struct {
	Number int
	Path   string
}

// Request describes one batch
type Request struct {
	Format      string
	Name        string // output folder name; derived from the submissions when empty
	Submissions []Submission
}

// Result reports what a batch produced
type Result struct {
	Name      string   // sanitized batch name, also the archive key
	Folder    string   // output folder
	Documents []string // section documents in write order
	Combined  string   // path of the combined document
	Items     []*models.LineItem
	Archived  int // rows stored for the batch, when archiving
}

// Book is an opened workbook
type Book interface {
	workbook.Source
	Close() error
}

// OpenFunc opens the workbook at path
type OpenFunc func(path string) (Book, error)

// OpenWorkbook opens an .xlsx file with excelize
func OpenWorkbook(path string) (Book, error) {
	wb, err := workbook.Open(path)
	if err != nil {
		return nil, err
	}
	return wb, nil
}

// Archiver stores the combined items of a batch
type Archiver interface {
	SaveBatch(ctx context.Context, batch string, items []*models.LineItem) error
	CountByBatch(ctx context.Context, batch string) (int, error)
}

// Runner executes batches
type Runner struct {
	folders   *storage.FolderManager
	files     storage.FileStorage
	open      OpenFunc
	archive   Archiver
	stableIDs bool
	logger    *zap.Logger
}

// Option configures a Runner
type Option func(*Runner)

// WithArchive stores every combined list in a
func WithArchive(a Archiver) Option {
	return func(r *Runner) {
		r.archive = a
	}
}

// WithStableIDs derives data_id from batch name and content instead of random UUIDs
func WithStableIDs(enabled bool) Option {
	return func(r *Runner) {
		r.stableIDs = enabled
	}
}

// WithOpener replaces the workbook loader
func WithOpener(open OpenFunc) Option {
	return func(r *Runner) {
		r.open = open
	}
}

// NewRunner creates a new Runner
func NewRunner(folders *storage.FolderManager, files storage.FileStorage, logger *zap.Logger, opts ...Option) *Runner {
	r := &Runner{
		folders: folders,
		files:   files,
		open:    OpenWorkbook,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// pass reads some sections of one submission. No names means the whole layout.
type pass struct {
	submission Submission
	names      []string
	suffixed   bool
}

// Run processes the batch. Any document error aborts the whole batch.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	layout, err := format.Lookup(req.Format)
	if err != nil {
		return nil, err
	}

	subs, err := sortSubmissions(req.Submissions)
	if err != nil {
		return nil, err
	}

	name := req.Name
	if name == "" {
		name = FolderName(layout.Name, subs)
	}
	folder, err := r.folders.CreateBatchFolder(name)
	if err != nil {
		return nil, err
	}
	result := &Result{Name: filepath.Base(folder), Folder: folder}

	r.logger.Info("Starting batch",
		zap.String("format", layout.Name),
		zap.String("batch", result.Name),
		zap.Int("submissions", len(subs)))

	var sections []*models.Section
	for _, p := range plan(layout.Batch, subs) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		read, err := r.runPass(layout, folder, p)
		if err != nil {
			r.logger.Error("Batch aborted",
				zap.String("batch", result.Name),
				zap.String("path", p.submission.Path),
				zap.Error(err))
			return nil, err
		}
		for _, s := range read {
			result.Documents = append(result.Documents, s.Path)
		}
		sections = append(sections, read...)
	}

	var newID reconcile.IDFunc
	if r.stableIDs {
		newID = reconcile.StableID(result.Name)
	}
	result.Items = reconcile.NewReconciler(newID, r.logger).Combine(sections)

	result.Combined = filepath.Join(folder, CombinedFileName)
	if err := r.files.SaveJSON(result.Combined, result.Items); err != nil {
		return nil, err
	}

	if r.archive != nil {
		if err := r.archive.SaveBatch(ctx, result.Name, result.Items); err != nil {
			return nil, fmt.Errorf("archive batch %s: %w", result.Name, err)
		}
		if result.Archived, err = r.archive.CountByBatch(ctx, result.Name); err != nil {
			return nil, fmt.Errorf("archive batch %s: %w", result.Name, err)
		}
	}

	r.logger.Info("Batch complete",
		zap.String("batch", result.Name),
		zap.String("folder", folder),
		zap.Int("documents", len(result.Documents)),
		zap.Int("items", len(result.Items)),
		zap.Int("archived", result.Archived))
	return result, nil
}

func (r *Runner) runPass(layout format.Layout, folder string, p pass) ([]*models.Section, error) {
	book, err := r.open(p.submission.Path)
	if err != nil {
		return nil, fmt.Errorf("open submission %d: %w", p.submission.Number, err)
	}
	defer book.Close()

	sections, err := format.Parse(book, layout, p.names...)
	if err != nil {
		return nil, fmt.Errorf("submission %d (%s): %w", p.submission.Number, p.submission.Path, err)
	}

	for _, s := range sections {
		if p.suffixed {
			s.Name = fmt.Sprintf("%s_%d", s.Name, p.submission.Number)
		}
		s.Path = filepath.Join(folder, s.Name+".json")
		if err := r.files.SaveJSON(s.Path, s); err != nil {
			return nil, err
		}
		r.logger.Debug("Wrote section",
			zap.String("path", s.Path),
			zap.Int("submission", p.submission.Number),
			zap.Int("items", len(s.Items())))
	}
	return sections, nil
}

// plan orders the reads of a batch: earliest-only sections from the first
// submission, per-submission sections from every submission but the last,
// then the whole layout from the last. A single submission is read once.
func plan(policy format.BatchPolicy, subs []Submission) []pass {
	last := len(subs) - 1
	var passes []pass
	for i, s := range subs[:last] {
		var names []string
		if i == 0 {
			names = append(names, policy.EarliestOnly...)
		}
		names = append(names, policy.PerSubmission...)
		if len(names) > 0 {
			passes = append(passes, pass{submission: s, names: names, suffixed: true})
		}
	}
	return append(passes, pass{submission: subs[last]})
}

func sortSubmissions(in []Submission) ([]Submission, error) {
	if len(in) == 0 {
		return nil, ErrNoSubmissions
	}
	subs := append([]Submission(nil), in...)
	sort.SliceStable(subs, func(i, j int) bool { return subs[i].Number < subs[j].Number })
	for i, s := range subs {
		if s.Path == "" {
			return nil, fmt.Errorf("submission %d has no path", s.Number)
		}
		if i > 0 && subs[i-1].Number == s.Number {
			return nil, fmt.Errorf("duplicate submission number %d", s.Number)
		}
	}
	return subs, nil
}

// FolderName identifies a batch: the workbook name for a single submission,
// otherwise the format plus a digest of the sorted input paths.
func FolderName(formatName string, subs []Submission) string {
	if len(subs) == 1 {
		return subs[0].Path
	}
	paths := make([]string, len(subs))
	for i, s := range subs {
		paths[i] = s.Path
	}
	sort.Strings(paths)
	sum := sha256.Sum256([]byte(strings.Join(paths, "\n")))
	return formatName + "_" + hex.EncodeToString(sum[:])[:12]
}
