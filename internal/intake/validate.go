// internal/intake/validate.go
package intake

import (
	"fmt"
	"time"

	"scholarship-portal/internal/models"
)

// FieldErrors maps a dotted field path (siblings.0.name) to the problems
// found at that path. An empty map means the form passed.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Validator performs the single synchronous intake pass: sanitize,
// reconstruct, validate, and assemble the persistable application.
type Validator struct {
	maxDocumentBytes int64
	maxPhotoBytes    int64
}

func NewValidator(maxDocumentBytes, maxPhotoBytes int64) *Validator {
	if maxDocumentBytes <= 0 {
		maxDocumentBytes = DefaultMaxDocumentBytes
	}
	if maxPhotoBytes <= 0 {
		maxPhotoBytes = DefaultMaxPhotoBytes
	}
	return &Validator{
		maxDocumentBytes: maxDocumentBytes,
		maxPhotoBytes:    maxPhotoBytes,
	}
}

// Validate runs the full intake pass over a submitted form bag. Every
// value is escaped before any rule sees it, so stored data is safe for
// redisplay without further treatment. On failure the returned map holds
// every problem found, not just the first.
func (v *Validator) Validate(bag FormBag) (*models.Application, FieldErrors) {
	bag.Values = CleanAll(bag.Values)

	form, errs := parseBag(bag)
	if len(errs) > 0 {
		return nil, errs
	}
	errs = FieldErrors{}

	values := form.scalars
	for field, rule := range fieldRules {
		raw, present := values[field]

		if rule.Checkbox && raw == "on" {
			raw = "true"
			values[field] = raw
		}
		if raw == "" && rule.Default != "" {
			raw = rule.Default
			values[field] = raw
		}

		if raw == "" {
			if rule.Required {
				errs.Add(field, "This field is required")
			}
			continue
		}
		if !present {
			continue
		}

		if rule.Checkbox {
			if raw != "true" {
				errs.Add(field, "Consent must be given to submit the application")
			}
			continue
		}
		if rule.MinLen > 0 && len(raw) < rule.MinLen {
			errs.Add(field, fmt.Sprintf("Must be at least %d characters", rule.MinLen))
			continue
		}
		if rule.Pattern != nil && !rule.Pattern.MatchString(raw) {
			errs.Add(field, rule.Message)
			continue
		}
		if len(rule.Enum) > 0 && !contains(rule.Enum, raw) {
			errs.Add(field, rule.Message)
		}
	}

	v.validateGroups(form, errs)
	documents := v.validateFiles(bag.Files, errs)

	if len(errs) > 0 {
		return nil, errs
	}

	return assemble(form, documents), nil
}

// validateGroups applies element rules to each reconstructed repeatable
// record, reporting problems under dotted paths like siblings.0.name.
func (v *Validator) validateGroups(form *parsedForm, errs FieldErrors) {
	for group, entries := range form.groups {
		rules := groupRules[group]
		for pos, entry := range entries {
			for prop, rule := range rules {
				raw := entry.props[prop]
				path := fmt.Sprintf("%s.%d.%s", group, pos, prop)

				if raw == "" {
					if rule.Required {
						errs.Add(path, "This field is required")
					}
					continue
				}
				if rule.MinLen > 0 && len(raw) < rule.MinLen {
					errs.Add(path, fmt.Sprintf("Must be at least %d characters", rule.MinLen))
					continue
				}
				if rule.Pattern != nil && !rule.Pattern.MatchString(raw) {
					errs.Add(path, rule.Message)
					continue
				}
				if len(rule.Enum) > 0 && !contains(rule.Enum, raw) {
					errs.Add(path, rule.Message)
				}
			}
		}
	}
}

// validateFiles checks each attachment against its declared kind and
// returns the metadata map to persist. File bytes never make it past here.
func (v *Validator) validateFiles(files map[string]FileInput, errs FieldErrors) map[string]models.DocumentMeta {
	if len(files) == 0 {
		return nil
	}
	documents := make(map[string]models.DocumentMeta, len(files))
	for key, file := range files {
		kind := docKeyRegex.FindStringSubmatch(key)[1]
		rule := documentRules[kind]
		path := "documents." + kind

		if !contains(rule.AllowedTypes, file.ContentType) {
			errs.Add(path, fmt.Sprintf("File type %s is not accepted", file.ContentType))
			continue
		}
		limit := v.maxDocumentBytes
		if rule.PhotoSized {
			limit = v.maxPhotoBytes
		}
		if file.Size > limit {
			errs.Add(path, fmt.Sprintf("File exceeds the %d MB limit", limit>>20))
			continue
		}
		if file.Size <= 0 {
			errs.Add(path, "File is empty")
			continue
		}

		modTime := file.ModTime
		if modTime.IsZero() {
			modTime = time.Now().UTC()
		}
		documents[kind] = models.DocumentMeta{
			FileName:    Clean(file.Name),
			ContentType: file.ContentType,
			SizeBytes:   file.Size,
			ModifiedAt:  modTime,
		}
	}
	return documents
}

// assemble maps the validated form onto the persistable document. Only
// runs once every rule has passed.
func assemble(form *parsedForm, documents map[string]models.DocumentMeta) *models.Application {
	s := form.scalars

	app := &models.Application{
		FirstName:   s["firstName"],
		LastName:    s["lastName"],
		DateOfBirth: s["dateOfBirth"],
		Sex:         s["sex"],
		Nationality: s["nationality"],

		AddressLine1: s["addressLine1"],
		AddressLine2: s["addressLine2"],
		City:         s["city"],
		State:        s["state"],
		PinCode:      s["pinCode"],

		StudentMobile: s["studentMobile"],
		FatherMobile:  s["fatherMobile"],
		MotherMobile:  s["motherMobile"],
		StudentEmail:  s["studentEmail"],
		ParentEmail:   s["parentEmail"],

		FatherOccupation: s["fatherOccupation"],
		MotherOccupation: s["motherOccupation"],
		FatherIncome:     s["fatherIncome"],
		MotherIncome:     s["motherIncome"],
		IncomeCurrency:   s["incomeCurrency"],

		EnrollmentStatus: s["enrollmentStatus"],

		TenthScore:    s["tenthScore"],
		TenthSubjects: s["tenthSubjects"],
		TenthBoard:    s["tenthBoard"],
		TenthYear:     s["tenthYear"],

		TwelfthScore:    s["twelfthScore"],
		TwelfthSubjects: s["twelfthSubjects"],
		TwelfthBoard:    s["twelfthBoard"],
		TwelfthYear:     s["twelfthYear"],

		GraduationDegree:      s["graduationDegree"],
		GraduationInstitution: s["graduationInstitution"],
		GraduationScore:       s["graduationScore"],
		GraduationYear:        s["graduationYear"],

		PostgradDegree:      s["postgradDegree"],
		PostgradInstitution: s["postgradInstitution"],
		PostgradScore:       s["postgradScore"],
		PostgradYear:        s["postgradYear"],

		ProgramType:      s["programType"],
		FirstPreference:  s["firstPreference"],
		SecondPreference: s["secondPreference"],
		ThirdPreference:  s["thirdPreference"],
		HostelRequired:   s["hostelRequired"],

		StudentDeclaration: s["studentDeclaration"] == "true",
		ParentDeclaration:  s["parentDeclaration"] == "true",

		Documents: documents,
	}

	for _, entry := range form.groups["siblings"] {
		app.Siblings = append(app.Siblings, models.Sibling{
			Relation:  entry.props["relation"],
			Name:      entry.props["name"],
			School:    entry.props["school"],
			ClassYear: entry.props["classYear"],
		})
	}
	for _, entry := range form.groups["entranceTests"] {
		app.EntranceTests = append(app.EntranceTests, models.EntranceTest{
			Name:        entry.props["name"],
			ConductedBy: entry.props["conductedBy"],
			Year:        entry.props["year"],
			MarksRank:   entry.props["marksRank"],
		})
	}

	return app
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
