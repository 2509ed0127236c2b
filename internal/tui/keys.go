package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Scopes []string
}

// KeyRegistry maps key names to actions per input scope. The first key of a
// binding is its help label and may be a combined form like "h/l".
type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

const (
	scopeGlobal     = "global"
	scopeCarousel   = "carousel"
	scopeEmpty      = "empty"
	scopeLightbox   = "lightbox"
	scopePrompt     = "prompt"
	scopeGenerating = "generating"
)

const (
	actionQuit           Action = "quit"
	actionPrev           Action = "prev"
	actionNext           Action = "next"
	actionOpen           Action = "open"
	actionReopen         Action = "reopen"
	actionToggleAutoplay Action = "toggle_autoplay"
	actionSelectDot      Action = "select_dot"
	actionScrollLeft     Action = "scroll_left"
	actionScrollRight    Action = "scroll_right"
	actionPrompt         Action = "prompt"
	actionClose          Action = "close"
	actionSubmit         Action = "submit"
	actionCancel         Action = "cancel"
)

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scopes: []string{scope}})
	}

	reg(scopeGlobal, actionQuit, []string{"q", "ctrl+c"}, "quit")

	reg(scopeCarousel, actionPrev, []string{"h/l", "h", "left"}, "prev/next")
	reg(scopeCarousel, actionNext, []string{"l", "right"}, "")
	reg(scopeCarousel, actionOpen, []string{"enter"}, "view")
	reg(scopeCarousel, actionReopen, []string{"o"}, "reopen")
	reg(scopeCarousel, actionToggleAutoplay, []string{"space", " "}, "autoplay")
	reg(scopeCarousel, actionSelectDot, []string{"1-9", "1", "2", "3", "4", "5", "6", "7", "8", "9"}, "jump")
	reg(scopeCarousel, actionScrollLeft, []string{"shift+left/right", "shift+left"}, "scroll")
	reg(scopeCarousel, actionScrollRight, []string{"shift+right"}, "")
	reg(scopeCarousel, actionPrompt, []string{"/", "g"}, "generate")
	reg(scopeCarousel, actionQuit, []string{"q", "ctrl+c"}, "quit")

	reg(scopeEmpty, actionPrompt, []string{"/", "g"}, "generate")
	reg(scopeEmpty, actionQuit, []string{"q", "ctrl+c"}, "quit")

	// Lightbox bindings mirror nav.Lightbox.HandleKey.
	reg(scopeLightbox, actionPrev, []string{"←/→", "left"}, "prev/next")
	reg(scopeLightbox, actionNext, []string{"right"}, "")
	reg(scopeLightbox, actionClose, []string{"esc"}, "close")
	reg(scopeLightbox, actionQuit, []string{"q", "ctrl+c"}, "quit")

	reg(scopePrompt, actionSubmit, []string{"enter"}, "generate")
	reg(scopePrompt, actionCancel, []string{"esc"}, "cancel")

	reg(scopeGenerating, actionPrompt, []string{"/"}, "new prompt")
	reg(scopeGenerating, actionCancel, []string{"esc"}, "cancel")
	reg(scopeGenerating, actionQuit, []string{"q", "ctrl+c"}, "quit")

	return r
}

func (r *KeyRegistry) Register(b Binding) {
	if r == nil {
		return
	}
	for _, scope := range b.Scopes {
		scope = strings.TrimSpace(scope)
		if scope == "" || len(b.Keys) == 0 {
			continue
		}
		if _, ok := r.indexByScope[scope]; !ok {
			r.indexByScope[scope] = make(map[string]*Binding)
		}
		normKeys := normalizeKeyList(b.Keys)
		if len(normKeys) == 0 || r.scopeHasAnyKey(scope, normKeys) {
			continue
		}

		copyBinding := b
		copyBinding.Keys = normKeys
		copyBinding.Scopes = []string{scope}
		r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &copyBinding)
		for _, k := range copyBinding.Keys {
			r.indexByScope[scope][k] = &copyBinding
		}
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []Binding {
	if r == nil {
		return nil
	}
	items := r.bindingsByScope[scope]
	out := make([]Binding, 0, len(items))
	for _, b := range items {
		out = append(out, *b)
	}
	return out
}

// Lookup resolves keyName in scope, falling back to the global scope.
func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = normalizeKeyName(keyName)
	if b := r.lookupInScope(keyName, scope); b != nil {
		return b
	}
	if scope != scopeGlobal {
		return r.lookupInScope(keyName, scopeGlobal)
	}
	return nil
}

// HelpBindings returns the footer entries for scope. A binding with no help
// text is covered by a neighbour's combined label, like "h/l".
func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := r.BindingsForScope(scope)
	out := make([]key.Binding, 0, len(items))
	for _, b := range items {
		if len(b.Keys) == 0 || b.Help == "" {
			continue
		}
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Help)))
	}
	return out
}

func (r *KeyRegistry) lookupInScope(keyName, scope string) *Binding {
	if scope == "" {
		return nil
	}
	lookup, ok := r.indexByScope[scope]
	if !ok {
		return nil
	}
	return lookup[keyName]
}

func (r *KeyRegistry) scopeHasAnyKey(scope string, keys []string) bool {
	lookup := r.indexByScope[scope]
	for _, k := range keys {
		if _, exists := lookup[k]; exists {
			return true
		}
	}
	return false
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) == 1 {
		ch := trimmed[0]
		if ch >= 'A' && ch <= 'Z' {
			return trimmed
		}
	}
	s := strings.ToLower(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "return", "enter")
	s = strings.ReplaceAll(s, "spacebar", "space")
	return s
}
