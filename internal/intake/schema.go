// internal/intake/schema.go
package intake

import (
	"regexp"

	"scholarship-portal/internal/models"
)

// Predefined patterns
var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	// Loose contact format: optional +, then digits, spaces, hyphens, parens
	contactRegex = regexp.MustCompile(`^[+]?[0-9\s\-()]+$`)
	dateRegex    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	yearRegex    = regexp.MustCompile(`^\d{4}$`)
	pinRegex     = regexp.MustCompile(`^\d{4,10}$`)
	amountRegex  = regexp.MustCompile(`^\d+(\.\d+)?$`)

	// Field-path shapes accepted from the flat form bag
	groupKeyRegex = regexp.MustCompile(`^([a-zA-Z]+)\[(\d+)\]\[([a-zA-Z]+)\]$`)
	docKeyRegex   = regexp.MustCompile(`^documents\.([a-zA-Z]+)$`)
)

// fieldRule declares the constraint for one scalar form field.
type fieldRule struct {
	Required bool
	Pattern  *regexp.Regexp
	Message  string // shown when the pattern or enum fails
	Enum     []string
	MinLen   int
	Default  string
	Checkbox bool // "on" coerces to "true" before validation
}

// fieldRules is the declarative scalar schema. Any submitted key absent
// from this map (and from the group/document shapes) rejects the
// submission outright.
var fieldRules = map[string]fieldRule{
	// Applicant
	"firstName":   {Required: true, MinLen: 2},
	"lastName":    {Required: true, MinLen: 1},
	"dateOfBirth": {Required: true, Pattern: dateRegex, Message: "Date of birth must be in YYYY-MM-DD format"},
	"sex":         {Required: true, Enum: []string{"Male", "Female", "Other"}, Message: "Sex must be Male, Female or Other"},
	"nationality": {Required: true, MinLen: 2},

	"addressLine1": {Required: true, MinLen: 3},
	"addressLine2": {},
	"city":         {Required: true, MinLen: 2},
	"state":        {Required: true, MinLen: 2},
	"pinCode":      {Required: true, Pattern: pinRegex, Message: "Postal code must be 4-10 digits"},

	"studentMobile": {Required: true, Pattern: contactRegex, MinLen: 10, Message: "Invalid mobile number format"},
	"fatherMobile":  {Required: true, Pattern: contactRegex, MinLen: 10, Message: "Invalid mobile number format"},
	"motherMobile":  {Required: true, Pattern: contactRegex, MinLen: 10, Message: "Invalid mobile number format"},
	"studentEmail":  {Required: true, Pattern: emailRegex, Message: "Invalid email format"},
	"parentEmail":   {Required: true, Pattern: emailRegex, Message: "Invalid email format"},

	// Family and financials
	"fatherOccupation": {Required: true, MinLen: 2},
	"motherOccupation": {Required: true, MinLen: 2},
	"fatherIncome":     {Required: true, Pattern: amountRegex, Message: "Income must be a number"},
	"motherIncome":     {Required: true, Pattern: amountRegex, Message: "Income must be a number"},
	"incomeCurrency":   {Enum: models.Currencies, Default: "INR", Message: "Unsupported currency code"},

	// Academics
	"enrollmentStatus": {Required: true, MinLen: 2},

	"tenthScore":    {Required: true, MinLen: 1},
	"tenthSubjects": {Required: true, MinLen: 2},
	"tenthBoard":    {Required: true, MinLen: 2},
	"tenthYear":     {Required: true, Pattern: yearRegex, Message: "Year must be four digits"},

	"twelfthScore":    {Required: true, MinLen: 1},
	"twelfthSubjects": {Required: true, MinLen: 2},
	"twelfthBoard":    {Required: true, MinLen: 2},
	"twelfthYear":     {Required: true, Pattern: yearRegex, Message: "Year must be four digits"},

	"graduationDegree":      {},
	"graduationInstitution": {},
	"graduationScore":       {},
	"graduationYear":        {Pattern: yearRegex, Message: "Year must be four digits"},

	"postgradDegree":      {},
	"postgradInstitution": {},
	"postgradScore":       {},
	"postgradYear":        {Pattern: yearRegex, Message: "Year must be four digits"},

	// Program
	"programType":      {Required: true, Enum: models.ProgramTypes, Message: "Unsupported program type"},
	"firstPreference":  {Required: true, MinLen: 2},
	"secondPreference": {},
	"thirdPreference":  {},
	"hostelRequired":   {Enum: models.HostelOptions, Default: "Yes", Message: "Hostel requirement must be Yes or No"},

	// Consent. Anything other than true fails validation; the only
	// permitted implicit coercion is the checkbox literal "on".
	"studentDeclaration": {Required: true, Checkbox: true},
	"parentDeclaration":  {Required: true, Checkbox: true},
}

// groupRules declares the element schema for repeatable sub-records
// submitted as <group>[<index>][<prop>].
var groupRules = map[string]map[string]fieldRule{
	"siblings": {
		"relation":  {Required: true, Enum: models.SiblingRelations, Message: "Relation must be Brother or Sister"},
		"name":      {Required: true, MinLen: 2},
		"school":    {},
		"classYear": {},
	},
	"entranceTests": {
		"name":        {Required: true, MinLen: 2},
		"conductedBy": {Required: true, MinLen: 2},
		"year":        {Required: true, Pattern: yearRegex, Message: "Year must be four digits"},
		"marksRank":   {Required: true, MinLen: 1},
	},
}

// maxGroupEntries caps repeatable record indices to keep the parse bounded.
const maxGroupEntries = 20

// Attachment size caps.
const (
	DefaultMaxDocumentBytes = 2 << 20
	DefaultMaxPhotoBytes    = 1 << 20
)

// fileRule declares the constraint for one document kind.
type fileRule struct {
	AllowedTypes []string
	PhotoSized   bool // subject to the smaller photograph cap
}

var pdfOrImage = []string{"application/pdf", "image/jpeg", "image/png"}
var imageOnly = []string{"image/jpeg", "image/png"}

// documentRules is the declarative file schema, keyed by document kind.
var documentRules = map[string]fileRule{
	"idCard":             {AllowedTypes: pdfOrImage},
	"photo":              {AllowedTypes: imageOnly, PhotoSized: true},
	"tenthCertificate":   {AllowedTypes: pdfOrImage},
	"twelfthCertificate": {AllowedTypes: pdfOrImage},
	"incomeProof":        {AllowedTypes: pdfOrImage},
	"admissionProof":     {AllowedTypes: pdfOrImage},
}
