package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const defaultLang = "en"

var (
	translationsMu sync.RWMutex
	translations   = map[string]map[string]string{}
)

// Init loads every <lang>.json file found in dir into the translation table.
// Calling it again replaces previously loaded locales with the same name.
func Init(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read locales dir %s: %w", dir, err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		lang := strings.TrimSuffix(entry.Name(), ".json")
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("read locale file %s: %w", entry.Name(), err)
		}
		table := map[string]string{}
		if err := json.Unmarshal(data, &table); err != nil {
			return fmt.Errorf("parse locale file %s: %w", entry.Name(), err)
		}
		translationsMu.Lock()
		translations[lang] = table
		translationsMu.Unlock()
		loaded++
	}

	if loaded == 0 {
		return fmt.Errorf("no locale files found in %s", dir)
	}
	return nil
}

// Translate resolves code in lang, falling back to the default language and
// finally to the code itself. Args are applied with Sprintf when present.
func Translate(code string, lang string, args ...interface{}) string {
	lang = normalizeLang(lang)

	translationsMu.RLock()
	defer translationsMu.RUnlock()

	msg := ""
	if table, ok := translations[lang]; ok {
		msg = table[code]
	}
	if msg == "" {
		if table, ok := translations[defaultLang]; ok {
			msg = table[code]
		}
	}
	if msg == "" {
		return code
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// normalizeLang maps Accept-Language style values ("zh-CN", "en-US") onto
// locale file names.
func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return defaultLang
	}
	if idx := strings.IndexAny(lang, "-_"); idx > 0 {
		lang = lang[:idx]
	}
	return lang
}
