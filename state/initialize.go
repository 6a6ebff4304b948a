package state

import (
	"time"

	"github.com/google/uuid"

	"htmlcoder/coder"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
		RunID: uuid.New(),
		DefaultIllustrations: map[string][]byte{
			coder.IllustrationEditorNote: []byte(`<svg viewBox="0 0 1080 120" xmlns="http://www.w3.org/2000/svg">
  <rect x="0" y="0" width="1080" height="120" fill="#fdf3f3"/>
  <rect x="0" y="0" width="16" height="120" fill="#c00000"/>
  <path d="M60 84 L96 36 L108 48 L72 96 L56 100 Z" fill="#c00000"/>
  <path d="M140 60 H1040" stroke="#c00000" stroke-width="3"/>
  <circle cx="1040" cy="60" r="8" fill="#c00000"/>
</svg>`),
			coder.IllustrationReporterNote: []byte(`<svg viewBox="0 0 1080 120" xmlns="http://www.w3.org/2000/svg">
  <rect x="0" y="0" width="1080" height="120" fill="#f3f6fd"/>
  <rect x="0" y="0" width="16" height="120" fill="#1f3c88"/>
  <rect x="52" y="44" width="56" height="40" rx="6" fill="#1f3c88"/>
  <circle cx="80" cy="64" r="12" fill="#f3f6fd"/>
  <rect x="64" y="36" width="20" height="10" fill="#1f3c88"/>
  <path d="M140 60 H1040" stroke="#1f3c88" stroke-width="3"/>
  <circle cx="1040" cy="60" r="8" fill="#1f3c88"/>
</svg>`),
		},
	}
}
