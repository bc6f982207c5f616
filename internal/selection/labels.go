// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package selection

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys. English text doubles as the key.
const (
	msgCompare         = "Compare"
	msgCompareLater    = "Compare Later"
	msgCompareTo       = "Compare to %s"
	msgTipCompareTo    = "Compare to the file remembered before"
	msgTipCompareLater = "Remember file for later comparison"
	msgTipCompare      = "Compare selected files"
	msgTipMultiCompare = "Compare selected files to the file remembered before"
)

var supported = []language.Tag{language.English, language.Estonian}

var matcher = language.NewMatcher(supported)

func init() {
	et := language.Estonian
	for key, msg := range map[string]string{
		msgCompare:         "Võrdle",
		msgCompareLater:    "Võrdle hiljem",
		msgCompareTo:       "Võrdle failiga %s",
		msgTipCompareTo:    "Võrdle eelnevalt meelde jäetud failiga",
		msgTipCompareLater: "Jäta fail hilisemaks võrdlemiseks meelde",
		msgTipCompare:      "Võrdle valitud faile",
		msgTipMultiCompare: "Võrdle valitud faile eelnevalt meelde jäetud failiga",
	} {
		// SetString only fails on malformed tags.
		_ = message.SetString(et, key, msg)
	}
}

// Labels renders menu labels and tooltips in one language.
type Labels struct {
	tag     language.Tag
	printer *message.Printer
}

// NewLabels picks the closest supported language for a locale string
// like "et_EE.UTF-8".
func NewLabels(locale string) *Labels {
	tag := MatchLanguage(locale)
	return &Labels{tag: tag, printer: message.NewPrinter(tag)}
}

// Language returns the chosen language.
func (l *Labels) Language() language.Tag { return l.tag }

// MatchLanguage maps a POSIX locale or BCP 47 string to a supported tag.
func MatchLanguage(locale string) language.Tag {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return language.English
	}
	parsed, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return language.English
	}
	_, idx, conf := matcher.Match(parsed)
	if conf == language.No {
		return language.English
	}
	return supported[idx]
}

// For returns the label and tooltip of an action. remembered is only used
// by CompareTo and MultiCompare.
func (l *Labels) For(k Kind, remembered string) (label, tip string) {
	p := l.printer
	switch k {
	case KindRemember:
		return p.Sprintf(msgCompareLater), p.Sprintf(msgTipCompareLater)
	case KindCompareTo:
		return p.Sprintf(msgCompareTo, PrepareForMenu(remembered)), p.Sprintf(msgTipCompareTo)
	case KindMultiCompare:
		return p.Sprintf(msgCompareTo, PrepareForMenu(remembered)), p.Sprintf(msgTipMultiCompare)
	default:
		return p.Sprintf(msgCompare), p.Sprintf(msgTipCompare)
	}
}

// PrepareForMenu makes an item readable in a menu label: underscores are
// doubled so they are not taken as mnemonics, and a file:// prefix is
// dropped.
func PrepareForMenu(item string) string {
	prep := strings.ReplaceAll(item, "_", "__")
	if i := strings.LastIndex(prep, "file://"); i >= 0 {
		prep = prep[i+len("file://"):]
	}
	return prep
}
