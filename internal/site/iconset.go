package site

import (
	"context"
	"errors"
	"log/slog"

	"github.com/a-h/templ"
	"github.com/otherdev/site/internal/domain"
	"github.com/otherdev/site/internal/icons"
)

// IconKey binds a template-facing key to a source icon name.
type IconKey struct {
	Key  string
	Icon string
}

// DefaultIconKeys returns the icons exposed to page templates.
func DefaultIconKeys() []IconKey {
	return []IconKey{
		{Key: "externalLink", Icon: "external-link"},
		{Key: "linkedin", Icon: "brand-linkedin"},
		{Key: "instagram", Icon: "brand-instagram"},
	}
}

// IconEntry is one rendered icon of the set.
type IconEntry struct {
	Key    string
	Icon   string
	Markup string
}

// IconSet is an ordered collection of inline icon markup.
type IconSet struct {
	entries []IconEntry
	missing []string
}

// BuildIconSet renders each key with the inline variant at its default size.
// Icons that fail to load are logged to logger and kept with empty markup; their
// source names are reported by Missing. Only context errors are returned.
func BuildIconSet(ctx context.Context, loader *icons.Loader, keys []IconKey, logger *slog.Logger) (IconSet, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var set IconSet
	for _, k := range keys {
		icon, err := loader.Load(ctx, icons.Request{Name: k.Icon, Variant: domain.VariantInline})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return IconSet{}, err
			}
			logger.Error("Icon not found", "icon", k.Icon, "key", k.Key, "error", err)
			set.missing = append(set.missing, k.Icon)
		}
		set.entries = append(set.entries, IconEntry{Key: k.Key, Icon: k.Icon, Markup: icon.Markup})
	}
	return set, nil
}

// Get returns the markup for key, or an empty string.
func (s IconSet) Get(key string) string {
	for _, e := range s.entries {
		if e.Key == key {
			return e.Markup
		}
	}
	return ""
}

// Entries returns the icons in key order.
func (s IconSet) Entries() []IconEntry {
	return append([]IconEntry(nil), s.entries...)
}

// Missing returns the source names of icons that could not be loaded.
func (s IconSet) Missing() []string {
	return append([]string(nil), s.missing...)
}

// Map returns the set as key -> markup.
func (s IconSet) Map() map[string]string {
	m := make(map[string]string, len(s.entries))
	for _, e := range s.entries {
		m[e.Key] = e.Markup
	}
	return m
}

// Component exposes the icon as a templ component for server-rendered pages.
func (s IconSet) Component(key string) templ.Component {
	return templ.Raw(s.Get(key))
}
