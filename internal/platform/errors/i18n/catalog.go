// Package i18n provides internationalization support for error messages.
package i18n

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"text/template"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the canonical source locale for catalogs.
const BaseLocale = "en-US"

// Code is a machine-readable error code (duplicated from errors package to avoid cycle).
type Code = string

// Catalog maps error codes to message templates for a specific locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

//go:embed locales/*.yaml
var embeddedLocales embed.FS

var (
	catalogsMu sync.RWMutex
	catalogs   = map[string]*Catalog{}
	matcher    language.Matcher
	supported  []string
)

func init() {
	loaded, err := LoadFromFS(embeddedLocales)
	if err != nil {
		panic(fmt.Sprintf("load error catalogs: %v", err))
	}
	tags := make([]language.Tag, 0, len(loaded))
	// The matcher falls back to its first tag, so the base locale goes first.
	tags = append(tags, language.MustParse(BaseLocale))
	supported = append(supported, BaseLocale)
	for _, cat := range loaded {
		catalogs[cat.locale] = cat
		if cat.locale == BaseLocale {
			continue
		}
		tags = append(tags, language.MustParse(cat.locale))
		supported = append(supported, cat.locale)
	}
	matcher = language.NewMatcher(tags)
}

// LoadFromFS loads catalog files from locales/*.yaml in the provided filesystem.
func LoadFromFS(catalogFS fs.FS) ([]*Catalog, error) {
	paths, err := fs.Glob(catalogFS, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	out := make([]*Catalog, 0, len(paths))
	seenBase := false
	for _, p := range paths {
		data, err := fs.ReadFile(catalogFS, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		localeFromPath := strings.TrimSuffix(path.Base(p), path.Ext(p))
		if strings.TrimSpace(file.Locale) != localeFromPath {
			return nil, fmt.Errorf("catalog %s: locale %q must match path locale %q", p, file.Locale, localeFromPath)
		}
		if _, err := language.Parse(localeFromPath); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", p, err)
		}
		if len(file.Messages) == 0 {
			return nil, fmt.Errorf("catalog %s: messages map is required", p)
		}
		if localeFromPath == BaseLocale {
			seenBase = true
		}
		out = append(out, NewCatalog(localeFromPath, file.Messages))
	}
	if !seenBase {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	return out, nil
}

// Negotiate picks the best supported locale for an Accept-Language value.
func Negotiate(acceptLanguage string) string {
	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return BaseLocale
	}
	_, index, confidence := matcher.Match(desired...)
	if confidence == language.No {
		return BaseLocale
	}
	return supported[index]
}

// GetCatalog returns the catalog for the given locale.
// Falls back to en-US if the locale is not found.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = BaseLocale
	}
	if c, ok := lookupCatalog(requested); ok {
		return c
	}
	if c, ok := lookupCatalog(Negotiate(requested)); ok {
		return c
	}
	c, _ := lookupCatalog(BaseLocale)
	return c
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message template with the given metadata.
// Falls back to the base locale, then to the error code itself.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	tmpl, ok := c.messages[code]
	if !ok && c.locale != BaseLocale {
		if base, found := lookupCatalog(BaseLocale); found {
			tmpl, ok = base.messages[code]
		}
	}
	if !ok {
		return code
	}

	if metadata == nil {
		metadata = map[string]string{}
	}

	t, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}

// RegisterCatalog registers a catalog for the given locale.
// Intended for tests; it does not extend locale negotiation.
func RegisterCatalog(locale string, cat *Catalog) {
	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	catalogs[locale] = cat
}

// NewCatalog creates a new catalog with the given locale and messages.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	cloned := make(map[Code]string, len(messages))
	for key, value := range messages {
		cloned[key] = value
	}
	return &Catalog{
		locale:   locale,
		messages: cloned,
	}
}

func lookupCatalog(locale string) (*Catalog, bool) {
	catalogsMu.RLock()
	defer catalogsMu.RUnlock()
	cat, ok := catalogs[locale]
	return cat, ok
}
