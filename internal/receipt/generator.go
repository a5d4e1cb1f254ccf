package receipt

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/gofpdi"
)

// ptPerMM converts MediaBox points to the document's millimeter unit.
const ptPerMM = 72.0 / 25.4

// refDate pins document metadata so identical input produces identical
// output bytes.
var refDate = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Generator composes receipts by overlaying formatted fields onto the
// first page of a template PDF. A Generator is cheap to construct and
// holds no open resources; concurrent Generate calls on one instance
// need external serialization.
type Generator struct {
	templatePath string
	font         Font
	layout       Layout
	logger       *slog.Logger
}

// NewGenerator resolves the font and layout once. Font problems
// degrade rendering (see ResolveFont) rather than failing
// construction; a broken layout override falls back to the built-in
// table with a warning.
func NewGenerator(cfg Config, logger *slog.Logger) *Generator {
	layout := DefaultLayout()
	if cfg.LayoutPath != "" {
		loaded, err := LoadLayout(cfg.LayoutPath)
		if err != nil {
			logger.Warn("layout override unusable, using default", "path", cfg.LayoutPath, "error", err)
		} else {
			layout = loaded
		}
	}
	return &Generator{
		templatePath: cfg.TemplatePath,
		font:         ResolveFont(cfg, logger),
		layout:       layout,
		logger:       logger,
	}
}

// DegradedFont reports whether rendering falls back to the core font.
func (g *Generator) DegradedFont() bool {
	return g.font.Degraded
}

// Generate writes one merged single-page receipt to outputPath,
// overwriting any existing file. The template must exist before any
// work starts; no partial output is ever written.
func (g *Generator) Generate(outputPath string, data Data) error {
	if _, err := os.Stat(g.templatePath); err != nil {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, g.templatePath)
	}

	out, err := g.Render(data)
	if err != nil {
		g.logger.Error("receipt render failed", "template", g.templatePath, "error", err)
		return err
	}

	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		g.logger.Error("receipt save failed", "path", outputPath, "error", err)
		return fmt.Errorf("save receipt: %w", err)
	}
	return nil
}

// Render composes the merged document in memory: template page 1 at
// full size, then every formatted field drawn once per layout section
// at its anchor. The output always has exactly one page.
func (g *Generator) Render(data Data) (out []byte, err error) {
	// The import stack panics on malformed templates; surface that as
	// an ordinary error, keeping the chain when the panic value is one.
	defer func() {
		if r := recover(); r != nil {
			if perr, ok := r.(error); ok {
				err = fmt.Errorf("compose receipt: %w", perr)
			} else {
				err = fmt.Errorf("compose receipt: %v", r)
			}
		}
	}()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(refDate)
	pdf.SetModificationDate(refDate)
	family, tr := g.font.register(pdf)

	imp := gofpdi.NewImporter()
	tpl := imp.ImportPage(pdf, g.templatePath, 1, "/MediaBox")
	pageW, pageH := templatePageSize(imp)

	orientation, size := "P", fpdf.SizeType{Wd: pageW, Ht: pageH}
	if pageW > pageH {
		orientation, size = "L", fpdf.SizeType{Wd: pageH, Ht: pageW}
	}
	pdf.AddPageFormat(orientation, size)
	pdf.SetAutoPageBreak(false, 0)
	imp.UseImportedTemplate(pdf, tpl, 0, 0, pageW, pageH)

	fields := data.FormattedFields()
	for _, section := range g.layout.sections() {
		anchors := g.layout[section]
		for _, key := range anchors.fieldKeys() {
			text, ok := fields[key]
			if !ok {
				continue
			}
			a := anchors[key]
			pdf.SetFont(family, "", a.Size)
			// Anchors are measured from the bottom-left corner; the
			// document origin is top-left.
			pdf.Text(a.X, pageH-a.Y, tr(text))
		}
	}
	if pdf.Err() {
		return nil, fmt.Errorf("compose receipt: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("produce receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// templatePageSize reads page 1's MediaBox in millimeters, defaulting
// to A4 when the box is absent.
func templatePageSize(imp *gofpdi.Importer) (w, h float64) {
	if box, ok := imp.GetPageSizes()[1]["/MediaBox"]; ok {
		w, h = box["w"]/ptPerMM, box["h"]/ptPerMM
	}
	if w <= 0 || h <= 0 {
		w, h = 210, 297
	}
	return w, h
}
