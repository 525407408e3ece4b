// Package matchers holds the stack of package configs active during a
// walk and answers exclude and include queries against it.
package matchers

import (
	"github.com/arthur-debert/bub/pkg/config"
)

// ConfigStack is a LIFO of the configs of the directories enclosing the
// entry being visited. The root config sits at the bottom and is never
// popped. Scalars come from the top; patterns are the union of the stack.
type ConfigStack struct {
	configs []*config.PackageConfig
}

// NewConfigStack returns a stack seeded with the root config
func NewConfigStack(root *config.PackageConfig) *ConfigStack {
	return &ConfigStack{configs: []*config.PackageConfig{root}}
}

// Push makes cfg the innermost config
func (s *ConfigStack) Push(cfg *config.PackageConfig) {
	s.configs = append(s.configs, cfg)
}

// Pop removes and returns the innermost config. The root is never removed;
// popping a stack holding only the root returns nil.
func (s *ConfigStack) Pop() *config.PackageConfig {
	if len(s.configs) <= 1 {
		return nil
	}
	top := s.configs[len(s.configs)-1]
	s.configs = s.configs[:len(s.configs)-1]
	return top
}

// Top returns the innermost config
func (s *ConfigStack) Top() *config.PackageConfig {
	return s.configs[len(s.configs)-1]
}

// Len returns the number of configs on the stack
func (s *ConfigStack) Len() int {
	return len(s.configs)
}

// Correct pops configs whose package scope does not contain path and
// returns how many were popped.
func (s *ConfigStack) Correct(path string) int {
	popped := 0
	for len(s.configs) > 1 && !s.Top().Contains(path) {
		s.Pop()
		popped++
	}
	return popped
}

// Excluded reports whether an entry's bare name matches an exclude pattern
// of any config on the stack.
func (s *ConfigStack) Excluded(name string) bool {
	for _, cfg := range s.configs {
		if cfg.MatchesExclude(name) {
			return true
		}
	}
	return false
}

// HasIncludes reports whether any config on the stack has include patterns
func (s *ConfigStack) HasIncludes() bool {
	for _, cfg := range s.configs {
		if len(cfg.IncludePatterns) > 0 {
			return true
		}
	}
	return false
}

// Included reports whether any of the path components matches an include
// pattern of any config on the stack. With no include patterns anywhere
// every entry is included.
func (s *ConfigStack) Included(components []string) bool {
	if !s.HasIncludes() {
		return true
	}
	for _, component := range components {
		for _, cfg := range s.configs {
			if cfg.MatchesInclude(component) {
				return true
			}
		}
	}
	return false
}
