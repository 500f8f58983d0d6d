package writer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/huahuayu/etherscan-code-exporter/entity"
	"github.com/huahuayu/etherscan-code-exporter/flags"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrUnsafePath = errors.New("source path escapes output directory")

type Writer struct {
	root         string
	baseDir      string
	modulePrefix string
	ext          string
	logger       *zap.Logger
}

// New returns a Writer rooted at cfg.OutputDir, resolved against the working directory.
func New(cfg *flags.Config, l *zap.Logger) (*Writer, error) {
	root, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	return &Writer{
		root:         root,
		baseDir:      cfg.BaseDir,
		modulePrefix: cfg.ModulePrefix,
		ext:          cfg.SourceExt,
		logger:       l,
	}, nil
}

// IsSourceFile reports whether path carries the source extension.
func (w *Writer) IsSourceFile(path string) bool {
	return strings.HasSuffix(path, w.ext)
}

// IsModule reports whether path is a downloaded dependency, e.g. "@openzeppelin/contracts/token/ERC20/ERC20.sol".
func (w *Writer) IsModule(path string) bool {
	return w.IsSourceFile(path) && strings.HasPrefix(path, w.modulePrefix)
}

// TargetPath returns the absolute location for a manifest key. Modules are
// placed under the base directory so they stay inside the compiler's include scope.
func (w *Writer) TargetPath(path string) (string, error) {
	rel := path
	if w.IsModule(path) {
		rel = filepath.Join(w.baseDir, rel)
	}

	target := filepath.Join(w.root, filepath.FromSlash(rel))
	if r, err := filepath.Rel(w.root, target); err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", errors.Wrapf(ErrUnsafePath, "%q", path)
	}
	return target, nil
}

// Write persists every source file of manifest, overwriting existing files.
// Keys without the source extension are skipped. Filesystem errors are returned as is.
func (w *Writer) Write(manifest entity.Manifest) ([]entity.WrittenFile, error) {
	written := make([]entity.WrittenFile, 0, manifest.Len())

	for pair := manifest.Oldest(); pair != nil; pair = pair.Next() {
		if !w.IsSourceFile(pair.Key) {
			w.logger.Debug("skipping non-source entry", zap.String("path", pair.Key))
			continue
		}

		target, err := w.TargetPath(pair.Key)
		if err != nil {
			return written, err
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return written, err
		}
		if err := os.WriteFile(target, []byte(pair.Value.Content), 0644); err != nil {
			return written, err
		}

		w.logger.Debug("wrote contract", zap.String("path", target), zap.Bool("module", w.IsModule(pair.Key)))
		written = append(written, entity.WrittenFile{Path: target, Content: pair.Value.Content})
	}

	return written, nil
}
