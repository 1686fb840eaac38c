// internal/intake/parse.go
package intake

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// FileInput carries attachment metadata collected from a multipart upload.
// The binary content itself is never retained past request handling.
type FileInput struct {
	Name        string
	ContentType string
	Size        int64
	ModTime     time.Time
}

// FormBag is the flat key/value view of a submitted form, the shape the
// browser actually sends. Repeatable records arrive as bracketed keys
// (siblings[0][name]) and attachments as documents.<kind> parts.
type FormBag struct {
	Values map[string]string
	Files  map[string]FileInput
}

// groupEntry is one reconstructed element of a repeatable record.
type groupEntry struct {
	index int
	props map[string]string
}

// parsedForm is the structured intermediate between the flat bag and the
// validated application.
type parsedForm struct {
	scalars map[string]string
	groups  map[string][]groupEntry
}

// parseBag reconstructs structured records from the flat bag. Unknown keys
// and malformed bracket shapes are collected as field errors; a submission
// carrying fields outside the declared schema is rejected rather than
// silently stripped.
func parseBag(bag FormBag) (*parsedForm, FieldErrors) {
	errs := FieldErrors{}
	form := &parsedForm{
		scalars: make(map[string]string, len(bag.Values)),
		groups:  make(map[string][]groupEntry),
	}

	indexed := make(map[string]map[int]map[string]string)

	for key, value := range bag.Values {
		if _, ok := fieldRules[key]; ok {
			form.scalars[key] = value
			continue
		}

		if m := groupKeyRegex.FindStringSubmatch(key); m != nil {
			group, idxStr, prop := m[1], m[2], m[3]
			rules, ok := groupRules[group]
			if !ok {
				errs.Add(key, "Unrecognized field")
				continue
			}
			if _, ok := rules[prop]; !ok {
				errs.Add(key, "Unrecognized field")
				continue
			}
			idx, err := strconv.Atoi(idxStr)
			if err != nil || idx >= maxGroupEntries {
				errs.Add(key, fmt.Sprintf("Entry index must be below %d", maxGroupEntries))
				continue
			}
			if indexed[group] == nil {
				indexed[group] = make(map[int]map[string]string)
			}
			if indexed[group][idx] == nil {
				indexed[group][idx] = make(map[string]string)
			}
			indexed[group][idx][prop] = value
			continue
		}

		errs.Add(key, "Unrecognized field")
	}

	// Preserve submission order of repeated records by index.
	for group, byIndex := range indexed {
		indices := make([]int, 0, len(byIndex))
		for idx := range byIndex {
			indices = append(indices, idx)
		}
		sort.Ints(indices)
		for _, idx := range indices {
			form.groups[group] = append(form.groups[group], groupEntry{
				index: idx,
				props: byIndex[idx],
			})
		}
	}

	for key := range bag.Files {
		if m := docKeyRegex.FindStringSubmatch(key); m != nil {
			if _, ok := documentRules[m[1]]; ok {
				continue
			}
		}
		errs.Add(key, "Unrecognized document field")
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return form, nil
}
