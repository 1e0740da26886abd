package invoice

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Cortexa-LLC/mcp/src/invoicegen/config"
)

// sourceExts are the spreadsheet formats the extractor reads.
var sourceExts = map[string]bool{
	".xlsx": true,
	".xlsm": true,
}

// Generator runs the extract → render pipeline for invoice spreadsheets.
// Relative paths are resolved against the configured base directory.
type Generator struct {
	cfg      *config.Config
	log      *zap.Logger
	renderer *Renderer
}

// NewGenerator creates a Generator. A nil logger discards log output.
func NewGenerator(cfg *config.Config, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		cfg: cfg,
		log: log,
		renderer: &Renderer{
			LogoPath:    cfg.Resolve(cfg.LogoPath),
			CompanyName: cfg.CompanyName,
			HeaderRow:   cfg.HeaderRow,
		},
	}
}

// CanExtract reports whether filePath has a supported spreadsheet extension.
func (g *Generator) CanExtract(filePath string) bool {
	return sourceExts[strings.ToLower(filepath.Ext(filePath))]
}

// Extract reads one invoice spreadsheet.
func (g *Generator) Extract(_ context.Context, filePath string) (*Invoice, error) {
	filePath = g.cfg.Resolve(filePath)
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", filePath, err)
	}
	if info.Size() > g.cfg.MaxFileSizeBytes {
		return nil, fmt.Errorf("file too large: %d bytes (max %d)", info.Size(), g.cfg.MaxFileSizeBytes)
	}
	if !g.CanExtract(filePath) {
		return nil, fmt.Errorf("unsupported format: %s", filePath)
	}
	return ExtractXLSX(filePath, g.cfg.Sheet)
}

// Render writes inv into the configured output directory and returns the
// document path.
func (g *Generator) Render(_ context.Context, inv *Invoice) (string, error) {
	return g.renderer.Render(inv, g.cfg.Resolve(g.cfg.OutputDir))
}

// Generate extracts and renders a single spreadsheet.
func (g *Generator) Generate(ctx context.Context, filePath string) (string, error) {
	inv, err := g.Extract(ctx, filePath)
	if err != nil {
		return "", err
	}
	g.log.Debug("extracted invoice",
		zap.String("number", inv.Number),
		zap.String("date", inv.Date),
		zap.Int("items", len(inv.Items)),
		zap.String("total_due", inv.TotalDue.StringFixed(2)),
	)
	return g.Render(ctx, inv)
}

// Inspect reads back a rendered invoice. Relative paths resolve against
// the base directory.
func (g *Generator) Inspect(_ context.Context, pdfPath string) (*Summary, error) {
	return Inspect(g.cfg.Resolve(pdfPath))
}

// Discover lists the spreadsheets matched by the configured input glob.
func (g *Generator) Discover() ([]string, error) {
	return Discover(g.cfg.BaseDir, g.cfg.InputGlob)
}

// Discover returns the absolute paths of the files matching pattern under
// baseDir, sorted.
func Discover(baseDir, pattern string) ([]string, error) {
	if !filepath.IsAbs(pattern) {
		pattern = filepath.Join(baseDir, pattern)
	}
	pattern, err := filepath.Abs(pattern)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", pattern, err)
	}
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// GetGeneratorInfo returns a Markdown summary of supported formats and config.
func (g *Generator) GetGeneratorInfo(_ context.Context) string {
	exts := make([]string, 0, len(sourceExts))
	for ext := range sourceExts {
		exts = append(exts, strings.TrimPrefix(ext, "."))
	}
	sort.Strings(exts)

	return fmt.Sprintf(`# Invoice Generator Info

## Supported Input Formats
%s

## Configuration
- Base directory: %s
- Input glob: %s
- Output directory: %s
- Logo: %s
- Header row: %t
- Workers: %d
- Max file size: %d MB`,
		"- "+strings.Join(exts, "\n- "),
		g.cfg.BaseDir,
		g.cfg.InputGlob,
		g.cfg.OutputDir,
		g.cfg.LogoPath,
		g.cfg.HeaderRow,
		g.cfg.Workers,
		g.cfg.MaxFileSizeMB(),
	)
}
