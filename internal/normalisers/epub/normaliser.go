// Package epub provides the EPUB normaliser: it opens the archive,
// follows META-INF/container.xml to the OPF package, walks the spine in
// reading order and strips the XHTML of each content item down to
// plain text.
package epub

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"html"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/remedylabs/remedysearch/internal/core/domain"
	"github.com/remedylabs/remedysearch/internal/core/ports/driven"
	"github.com/remedylabs/remedysearch/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

const containerPath = "META-INF/container.xml"

// Normaliser handles EPUB books.
type Normaliser struct{}

// New creates a new EPUB normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns the file extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".epub"}
}

// container mirrors META-INF/container.xml.
type container struct {
	XMLName   xml.Name   `xml:"container"`
	RootFiles []rootFile `xml:"rootfiles>rootfile"`
}

type rootFile struct {
	FullPath  string `xml:"full-path,attr"`
	MediaType string `xml:"media-type,attr"`
}

// opfPackage mirrors the OPF package document.
type opfPackage struct {
	XMLName  xml.Name    `xml:"package"`
	Metadata opfMetadata `xml:"metadata"`
	Manifest opfManifest `xml:"manifest"`
	Spine    opfSpine    `xml:"spine"`
}

type opfMetadata struct {
	Titles []string `xml:"title"`
}

type opfManifest struct {
	Items []opfItem `xml:"item"`
}

type opfItem struct {
	ID        string `xml:"id,attr"`
	Href      string `xml:"href,attr"`
	MediaType string `xml:"media-type,attr"`
}

type opfSpine struct {
	ItemRefs []opfItemRef `xml:"itemref"`
}

type opfItemRef struct {
	IDRef string `xml:"idref,attr"`
}

// Normalise parses an EPUB into a Book with per-chapter plain text.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawBook) (*driven.NormaliseResult, error) {
	if raw == nil || len(raw.Content) == 0 {
		return nil, domain.ErrInvalidInput
	}

	reader, err := zip.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	files := make(map[string]*zip.File, len(reader.File))
	for _, f := range reader.File {
		files[f.Name] = f
	}

	opfPath, err := resolveRootFile(files)
	if err != nil {
		return nil, err
	}
	logger.Debug("EPUB rootfile: %s", opfPath)

	pkg, err := parsePackage(files, opfPath)
	if err != nil {
		return nil, err
	}

	chapters := extractChapters(ctx, files, pkg, path.Dir(opfPath))
	if len(chapters) == 0 {
		return nil, domain.ErrNoText
	}

	book := domain.Book{
		ID:        uuid.New().String(),
		Title:     bookTitle(pkg, raw.Filename),
		Filename:  raw.Filename,
		Chapters:  len(chapters),
		CreatedAt: time.Now(),
	}

	return &driven.NormaliseResult{
		Book:     book,
		Chapters: chapters,
	}, nil
}

// resolveRootFile reads container.xml and returns the OPF path.
func resolveRootFile(files map[string]*zip.File) (string, error) {
	cf, ok := files[containerPath]
	if !ok {
		return "", domain.ErrInvalidInput
	}

	data, err := readZipFile(cf)
	if err != nil {
		return "", domain.ErrInvalidInput
	}

	var c container
	if err := xml.Unmarshal(data, &c); err != nil {
		return "", domain.ErrInvalidInput
	}
	if len(c.RootFiles) == 0 {
		return "", domain.ErrInvalidInput
	}

	return c.RootFiles[0].FullPath, nil
}

// parsePackage reads and decodes the OPF package document.
func parsePackage(files map[string]*zip.File, opfPath string) (*opfPackage, error) {
	of, ok := files[opfPath]
	if !ok {
		return nil, domain.ErrInvalidInput
	}

	data, err := readZipFile(of)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	var pkg opfPackage
	if err := xml.Unmarshal(data, &pkg); err != nil {
		return nil, domain.ErrInvalidInput
	}

	return &pkg, nil
}

// extractChapters walks the spine in order and strips each XHTML item.
// Items that are missing or unreadable are skipped rather than failing
// the whole book.
func extractChapters(ctx context.Context, files map[string]*zip.File, pkg *opfPackage, opfDir string) []domain.Chapter {
	manifest := make(map[string]opfItem, len(pkg.Manifest.Items))
	for _, item := range pkg.Manifest.Items {
		manifest[item.ID] = item
	}

	var chapters []domain.Chapter
	for _, ref := range pkg.Spine.ItemRefs {
		if ctx.Err() != nil {
			break
		}

		item, ok := manifest[ref.IDRef]
		if !ok {
			continue
		}
		if item.MediaType != "application/xhtml+xml" && item.MediaType != "text/html" {
			continue
		}

		href := item.Href
		if opfDir != "." && opfDir != "" {
			href = path.Join(opfDir, item.Href)
		}

		f, ok := files[href]
		if !ok {
			logger.Warn("EPUB spine item missing from archive: %s", href)
			continue
		}

		data, err := readZipFile(f)
		if err != nil {
			logger.Warn("EPUB spine item unreadable: %s: %v", href, err)
			continue
		}

		text := stripMarkup(string(data))
		if text == "" {
			continue
		}

		chapters = append(chapters, domain.Chapter{
			Path: href,
			Text: text,
		})
	}

	return chapters
}

// bookTitle prefers the OPF metadata title, then falls back to a
// cleaned-up filename.
func bookTitle(pkg *opfPackage, filename string) string {
	for _, t := range pkg.Metadata.Titles {
		if title := strings.TrimSpace(t); title != "" {
			return title
		}
	}

	name := filepath.Base(filename)
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Pre-compiled regular expressions for markup stripping.
var (
	scriptTag     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	headTag       = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	svgTag        = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	xmlComments   = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockClose    = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|blockquote|pre|table|section)>`)
	blockOpen     = regexp.MustCompile(`(?i)<(p|div|h[1-6]|li|tr|blockquote|pre|table|section)[^>]*>`)
	brTags        = regexp.MustCompile(`(?i)<br\s*/?>`)
	hrTags        = regexp.MustCompile(`(?i)<hr\s*/?>`)
	allTags       = regexp.MustCompile(`<[^>]+>`)
	multiSpaces   = regexp.MustCompile(`[ \t]+`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
)

// stripMarkup removes XHTML tags and extracts readable text, keeping
// line structure so the extractor can scan bullet lists.
func stripMarkup(content string) string {
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = headTag.ReplaceAllString(content, "")
	content = svgTag.ReplaceAllString(content, "")
	content = xmlComments.ReplaceAllString(content, "")

	// Block boundaries become newlines so list items stay line-oriented.
	content = blockOpen.ReplaceAllString(content, "\n")
	content = blockClose.ReplaceAllString(content, "\n")
	content = brTags.ReplaceAllString(content, "\n")
	content = hrTags.ReplaceAllString(content, "\n")

	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	content = multiSpaces.ReplaceAllString(content, " ")
	content = multiNewlines.ReplaceAllString(content, "\n\n")

	lines := strings.Split(content, "\n")
	var result []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}
