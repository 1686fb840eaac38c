// internal/intake/validate_test.go
package intake

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validValues() map[string]string {
	return map[string]string{
		"firstName":   "Ravi",
		"lastName":    "Kumar",
		"dateOfBirth": "2004-06-15",
		"sex":         "Male",
		"nationality": "Indian",

		"addressLine1": "14 Gandhi Road",
		"city":         "Pune",
		"state":        "Maharashtra",
		"pinCode":      "411001",

		"studentMobile": "+91 9876543210",
		"fatherMobile":  "+91 9876543211",
		"motherMobile":  "+91 9876543212",
		"studentEmail":  "ravi.kumar@example.com",
		"parentEmail":   "parent.kumar@example.com",

		"fatherOccupation": "Farmer",
		"motherOccupation": "Teacher",
		"fatherIncome":     "240000",
		"motherIncome":     "180000",

		"enrollmentStatus": "Completed 12th",

		"tenthScore":    "88%",
		"tenthSubjects": "Science, Mathematics",
		"tenthBoard":    "CBSE",
		"tenthYear":     "2020",

		"twelfthScore":    "91%",
		"twelfthSubjects": "Physics, Chemistry, Mathematics",
		"twelfthBoard":    "CBSE",
		"twelfthYear":     "2022",

		"programType":     "Undergraduate Degree",
		"firstPreference": "Computer Engineering",

		"studentDeclaration": "true",
		"parentDeclaration":  "true",
	}
}

func TestValidateAcceptsCompleteForm(t *testing.T) {
	v := NewValidator(0, 0)

	app, errs := v.Validate(FormBag{Values: validValues()})

	require.Empty(t, errs)
	require.NotNil(t, app)
	assert.Equal(t, "Ravi", app.FirstName)
	assert.Equal(t, "Undergraduate Degree", app.ProgramType)
	assert.True(t, app.StudentDeclaration)
	assert.True(t, app.ParentDeclaration)
}

func TestValidateAppliesDefaults(t *testing.T) {
	v := NewValidator(0, 0)

	app, errs := v.Validate(FormBag{Values: validValues()})

	require.Empty(t, errs)
	assert.Equal(t, "INR", app.IncomeCurrency)
	assert.Equal(t, "Yes", app.HostelRequired)
}

func TestValidateCoercesCheckboxLiteral(t *testing.T) {
	v := NewValidator(0, 0)
	values := validValues()
	values["studentDeclaration"] = "on"
	values["parentDeclaration"] = "on"

	app, errs := v.Validate(FormBag{Values: values})

	require.Empty(t, errs)
	assert.True(t, app.StudentDeclaration)
	assert.True(t, app.ParentDeclaration)
}

func TestValidateRejectsWithheldConsent(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "explicit false", value: "false"},
		{name: "arbitrary truthy word", value: "yes"},
		{name: "numeric one", value: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator(0, 0)
			values := validValues()
			values["parentDeclaration"] = tt.value

			app, errs := v.Validate(FormBag{Values: values})

			assert.Nil(t, app)
			assert.Contains(t, errs, "parentDeclaration")
		})
	}
}

func TestValidateRejectsMissingConsent(t *testing.T) {
	v := NewValidator(0, 0)
	values := validValues()
	delete(values, "studentDeclaration")

	app, errs := v.Validate(FormBag{Values: values})

	assert.Nil(t, app)
	assert.Contains(t, errs, "studentDeclaration")
}

func TestValidateCollectsAllFailures(t *testing.T) {
	v := NewValidator(0, 0)
	values := validValues()
	values["studentEmail"] = "not-an-email"
	values["tenthYear"] = "20"
	delete(values, "city")

	app, errs := v.Validate(FormBag{Values: values})

	assert.Nil(t, app)
	assert.Contains(t, errs, "studentEmail")
	assert.Contains(t, errs, "tenthYear")
	assert.Contains(t, errs, "city")
}

func TestValidateEscapesMarkupCharacters(t *testing.T) {
	v := NewValidator(0, 0)
	values := validValues()
	values["firstName"] = `<script>alert("x")</script>`

	app, errs := v.Validate(FormBag{Values: values})

	require.Empty(t, errs)
	for _, ch := range []string{"<", ">", `"`, "'", "/", "`", `\`} {
		assert.NotContains(t, app.FirstName, ch)
	}
	assert.Contains(t, app.FirstName, "&lt;script&gt;")
}

func TestValidateRejectsUnrecognizedField(t *testing.T) {
	v := NewValidator(0, 0)
	values := validValues()
	values["adminOverride"] = "true"

	app, errs := v.Validate(FormBag{Values: values})

	assert.Nil(t, app)
	assert.Contains(t, errs, "adminOverride")
}

func TestValidateReconstructsSiblings(t *testing.T) {
	v := NewValidator(0, 0)
	values := validValues()
	values["siblings[0][relation]"] = "Sister"
	values["siblings[0][name]"] = "Priya Kumar"
	values["siblings[1][relation]"] = "Brother"
	values["siblings[1][name]"] = "Arun Kumar"
	values["siblings[1][school]"] = "City High School"

	app, errs := v.Validate(FormBag{Values: values})

	require.Empty(t, errs)
	require.Len(t, app.Siblings, 2)
	assert.Equal(t, "Sister", app.Siblings[0].Relation)
	assert.Equal(t, "Arun Kumar", app.Siblings[1].Name)
	assert.Equal(t, "City High School", app.Siblings[1].School)
}

func TestValidateReportsGroupErrorsWithDottedPaths(t *testing.T) {
	v := NewValidator(0, 0)
	values := validValues()
	values["siblings[0][relation]"] = "Cousin"
	values["siblings[0][name]"] = "X"

	app, errs := v.Validate(FormBag{Values: values})

	assert.Nil(t, app)
	assert.Contains(t, errs, "siblings.0.relation")
	assert.Contains(t, errs, "siblings.0.name")
}

func TestValidateRejectsUnknownGroupProperty(t *testing.T) {
	v := NewValidator(0, 0)
	values := validValues()
	values["siblings[0][salary]"] = "100"

	app, errs := v.Validate(FormBag{Values: values})

	assert.Nil(t, app)
	assert.Contains(t, errs, "siblings[0][salary]")
}

func TestValidateEntranceTests(t *testing.T) {
	v := NewValidator(0, 0)
	values := validValues()
	values["entranceTests[0][name]"] = "JEE Main"
	values["entranceTests[0][conductedBy]"] = "NTA"
	values["entranceTests[0][year]"] = "2022"
	values["entranceTests[0][marksRank]"] = "AIR 4521"

	app, errs := v.Validate(FormBag{Values: values})

	require.Empty(t, errs)
	require.Len(t, app.EntranceTests, 1)
	assert.Equal(t, "JEE Main", app.EntranceTests[0].Name)
	assert.Equal(t, "AIR 4521", app.EntranceTests[0].MarksRank)
}

func TestValidateFileRules(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		file      FileInput
		wantError bool
	}{
		{
			name:      "pdf within limit accepted",
			key:       "documents.tenthCertificate",
			file:      FileInput{Name: "tenth.pdf", ContentType: "application/pdf", Size: 1900 * 1024},
			wantError: false,
		},
		{
			name:      "oversized pdf rejected",
			key:       "documents.incomeProof",
			file:      FileInput{Name: "income.pdf", ContentType: "application/pdf", Size: 2100 * 1024},
			wantError: true,
		},
		{
			name:      "photo under the smaller cap accepted",
			key:       "documents.photo",
			file:      FileInput{Name: "me.png", ContentType: "image/png", Size: 900 * 1024},
			wantError: false,
		},
		{
			name:      "photo over the smaller cap rejected",
			key:       "documents.photo",
			file:      FileInput{Name: "me.jpg", ContentType: "image/jpeg", Size: 1100 * 1024},
			wantError: true,
		},
		{
			name:      "pdf photo rejected",
			key:       "documents.photo",
			file:      FileInput{Name: "me.pdf", ContentType: "application/pdf", Size: 100 * 1024},
			wantError: true,
		},
		{
			name:      "executable rejected",
			key:       "documents.idCard",
			file:      FileInput{Name: "id.exe", ContentType: "application/octet-stream", Size: 100 * 1024},
			wantError: true,
		},
		{
			name:      "empty file rejected",
			key:       "documents.idCard",
			file:      FileInput{Name: "id.pdf", ContentType: "application/pdf", Size: 0},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator(0, 0)
			bag := FormBag{
				Values: validValues(),
				Files:  map[string]FileInput{tt.key: tt.file},
			}

			app, errs := v.Validate(bag)

			if tt.wantError {
				assert.Nil(t, app)
				assert.Contains(t, errs, tt.key)
			} else {
				require.Empty(t, errs)
				kind := strings.TrimPrefix(tt.key, "documents.")
				require.Contains(t, app.Documents, kind)
				assert.Equal(t, tt.file.Size, app.Documents[kind].SizeBytes)
			}
		})
	}
}

func TestValidateRejectsUnknownDocumentKind(t *testing.T) {
	v := NewValidator(0, 0)
	bag := FormBag{
		Values: validValues(),
		Files: map[string]FileInput{
			"documents.bankStatement": {Name: "b.pdf", ContentType: "application/pdf", Size: 1024},
		},
	}

	app, errs := v.Validate(bag)

	assert.Nil(t, app)
	assert.Contains(t, errs, "documents.bankStatement")
}

func TestValidateStampsFileModTime(t *testing.T) {
	v := NewValidator(0, 0)
	modified := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	bag := FormBag{
		Values: validValues(),
		Files: map[string]FileInput{
			"documents.idCard": {Name: "id.pdf", ContentType: "application/pdf", Size: 1024, ModTime: modified},
		},
	}

	app, errs := v.Validate(bag)

	require.Empty(t, errs)
	assert.Equal(t, modified, app.Documents["idCard"].ModifiedAt)
}
