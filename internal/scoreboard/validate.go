package scoreboard

import (
	"fmt"
	"unicode/utf8"

	"github.com/danmuck/sbcontrol/internal/chat"
	"github.com/danmuck/sbcontrol/internal/protocol"
)

// Client-side length caps. Names and entity names are capped through 1.20;
// display texts, prefixes and suffixes only on 1.12.
const (
	maxNameLen    = 16
	maxEntityLen  = 40
	maxDisplayLen = 32
	maxAffixLen   = 16
)

func (c *Controller) checkName(what, name string) error {
	if name == "" {
		return fmt.Errorf("%w: %s name is empty", protocol.ErrInvalidArgument, what)
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: %s name %q is not valid utf-8", protocol.ErrInvalidArgument, what, name)
	}
	if !c.version.Supports(protocol.FeatureUncappedNames) && utf8.RuneCountInString(name) > maxNameLen {
		return fmt.Errorf("%w: %s name %q is longer than %d characters on %s",
			protocol.ErrInvalidArgument, what, name, maxNameLen, c.version)
	}
	return nil
}

func (c *Controller) checkEntity(entity string) error {
	if entity == "" {
		return fmt.Errorf("%w: entity name is empty", protocol.ErrInvalidArgument)
	}
	if !utf8.ValidString(entity) {
		return fmt.Errorf("%w: entity name %q is not valid utf-8", protocol.ErrInvalidArgument, entity)
	}
	if !c.version.Supports(protocol.FeatureUncappedNames) && utf8.RuneCountInString(entity) > maxEntityLen {
		return fmt.Errorf("%w: entity name %q is longer than %d characters on %s",
			protocol.ErrInvalidArgument, entity, maxEntityLen, c.version)
	}
	return nil
}

func (c *Controller) checkText(what, text string, limit int) error {
	if !utf8.ValidString(text) {
		return fmt.Errorf("%w: %s is not valid utf-8", protocol.ErrInvalidArgument, what)
	}
	if !c.version.Supports(protocol.FeatureUncappedText) && utf8.RuneCountInString(text) > limit {
		return fmt.Errorf("%w: %s is longer than %d characters on %s",
			protocol.ErrInvalidArgument, what, limit, c.version)
	}
	return nil
}

// markup resolves '&' codes the way the running version understands them.
func (c *Controller) markup(text string) string {
	return chat.Translate(text, c.version.Supports(protocol.FeatureHexColors))
}

func destroyed(what, name string) error {
	return fmt.Errorf("%w: %s %q is not registered on its board", protocol.ErrInvalidState, what, name)
}
