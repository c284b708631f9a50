// SPDX-License-Identifier: EPL-2.0

package planner

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// HihatType tells closed from open hi-hats.
type HihatType string

const (
	HihatNone   HihatType = ""
	HihatClosed HihatType = "closed"
	HihatOpen   HihatType = "open"
)

var (
	closedMarkers = []string{"closedhh", "clsdhh", "closed", "clsd"}
	openMarkers   = []string{"openhh", "opennhh", "open", "opn"}
)

func fold(s string) string {
	return cases.Fold().String(s)
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func markerType(s string) HihatType {
	s = fold(s)
	switch {
	case containsAny(s, closedMarkers):
		return HihatClosed
	case containsAny(s, openMarkers):
		return HihatOpen
	default:
		return HihatNone
	}
}

// DetectHihat reports the hi-hat type of path. The parent directory name
// is checked before the file name, closed markers before open ones.
func DetectHihat(path string) HihatType {
	if t := markerType(filepath.Base(filepath.Dir(path))); t != HihatNone {
		return t
	}
	return markerType(filepath.Base(path))
}

func isMarker(token string) bool {
	token = fold(token)
	for _, markers := range [][]string{closedMarkers, openMarkers} {
		for _, m := range markers {
			if token == m {
				return true
			}
		}
	}
	return false
}

func isNumeric(token string) bool {
	for _, r := range token {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return token != ""
}

// BaseName is the grouping key of a hi-hat file: the stem without marker
// tokens or trailing take numbers, words joined by single spaces.
// "ClosedHH A 1.wav" and "OpenHH_A.wav" both give "A".
func BaseName(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	tokens := strings.FieldsFunc(stem, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '_'
	})

	kept := tokens[:0:0]
	for _, tok := range tokens {
		if !isMarker(tok) {
			kept = append(kept, tok)
		}
	}
	for len(kept) > 1 && isNumeric(kept[len(kept)-1]) {
		kept = kept[:len(kept)-1]
	}

	if len(kept) == 0 {
		return norm.NFC.String(stem)
	}
	return norm.NFC.String(strings.Join(kept, " "))
}
