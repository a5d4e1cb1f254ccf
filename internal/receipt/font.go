package receipt

import (
	"log/slog"
	"os"

	"github.com/go-pdf/fpdf"
)

// Font is a pre-resolved font handle. Resolution happens once, at
// generator construction; no rendering-engine state is mutated
// process-wide.
type Font struct {
	Family   string
	Path     string
	Fallback string
	// Degraded is set when the configured TTF is missing or unusable.
	// Rendering then uses the built-in fallback, which lacks Japanese
	// glyphs but keeps generation working.
	Degraded bool
}

// ResolveFont checks the configured TTF exists and parses. Failure is
// a warning, never an error: receipts must stay printable on machines
// without the preferred font.
func ResolveFont(cfg Config, logger *slog.Logger) Font {
	font := Font{
		Family:   cfg.FontFamily,
		Path:     cfg.FontPath,
		Fallback: cfg.FallbackFont,
	}

	if _, err := os.Stat(cfg.FontPath); err != nil {
		logger.Warn("receipt font not found, falling back", "path", cfg.FontPath, "fallback", cfg.FallbackFont)
		font.Degraded = true
		return font
	}

	// Probe with a throwaway document so a corrupt file degrades at
	// construction instead of failing every generate call.
	probe := fpdf.New("P", "mm", "A4", "")
	probe.AddUTF8Font(cfg.FontFamily, "", cfg.FontPath)
	if probe.Err() {
		logger.Warn("receipt font unusable, falling back",
			"path", cfg.FontPath, "fallback", cfg.FallbackFont, "error", probe.Error())
		font.Degraded = true
	}
	return font
}

// register installs the font on a document being composed and returns
// the family to draw with plus a text transform for the chosen
// encoding.
func (f Font) register(pdf *fpdf.Fpdf) (string, func(string) string) {
	if !f.Degraded {
		pdf.AddUTF8Font(f.Family, "", f.Path)
		if !pdf.Err() {
			return f.Family, func(s string) string { return s }
		}
		pdf.ClearError()
	}
	// Core fonts are cp1252; translate what can be translated and let
	// the rest degrade.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	return f.Fallback, tr
}
