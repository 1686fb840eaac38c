// internal/models/application.go
package models

import (
	"strings"
	"time"
)

// Application lifecycle states. Transitions happen in an external review
// process; this service writes Pending and preserves anything it reads.
const (
	StatusPending     = "Pending"
	StatusUnderReview = "Under Review"
	StatusApproved    = "Approved"
	StatusRejected    = "Rejected"
)

// ProgramTypes enumerates the supported scholarship tracks.
var ProgramTypes = []string{
	"Skill Courses",
	"Diploma",
	"Undergraduate Degree",
	"Postgraduate Degree",
	"Doctoral Program",
}

// Currencies enumerates the accepted income currency codes.
var Currencies = []string{"INR", "USD", "EUR", "GBP", "NGN", "ZAR", "KES"}

// SiblingRelations enumerates the accepted sibling relation values.
var SiblingRelations = []string{"Brother", "Sister"}

// HostelOptions enumerates the accepted hostel requirement values.
var HostelOptions = []string{"Yes", "No"}

// Sibling is one entry of the ordered sibling list.
type Sibling struct {
	Relation  string `bson:"relation" json:"relation"`
	Name      string `bson:"name" json:"name"`
	School    string `bson:"school,omitempty" json:"school,omitempty"`
	ClassYear string `bson:"classYear,omitempty" json:"classYear,omitempty"`
}

// EntranceTest is one entry of the ordered entrance-test list.
type EntranceTest struct {
	Name        string `bson:"name" json:"name"`
	ConductedBy string `bson:"conductedBy" json:"conductedBy"`
	Year        string `bson:"year" json:"year"`
	MarksRank   string `bson:"marksRank" json:"marksRank"`
}

// DocumentMeta holds attachment metadata only. Binary content is never
// persisted by this service.
type DocumentMeta struct {
	FileName    string    `bson:"fileName" json:"fileName"`
	ContentType string    `bson:"contentType" json:"contentType"`
	SizeBytes   int64     `bson:"sizeBytes" json:"sizeBytes"`
	ModifiedAt  time.Time `bson:"modifiedAt" json:"modifiedAt"`
}

// AuditMeta records where and when a submission entered the system.
type AuditMeta struct {
	SubmittedIP string    `bson:"submittedIp" json:"submittedIp"`
	UserAgent   string    `bson:"userAgent" json:"userAgent"`
	TraceID     string    `bson:"traceId" json:"traceId"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// Application is the persisted document. ApplicationID is immutable once
// assigned and unique within the store; SubmittedAt is set once at creation.
type Application struct {
	ApplicationID string `bson:"applicationId" json:"applicationId"`

	// Applicant
	FirstName   string `bson:"firstName" json:"firstName"`
	LastName    string `bson:"lastName" json:"lastName"`
	DateOfBirth string `bson:"dateOfBirth" json:"dateOfBirth"`
	Sex         string `bson:"sex" json:"sex"`
	Nationality string `bson:"nationality" json:"nationality"`

	AddressLine1 string `bson:"addressLine1" json:"addressLine1"`
	AddressLine2 string `bson:"addressLine2,omitempty" json:"addressLine2,omitempty"`
	City         string `bson:"city" json:"city"`
	State        string `bson:"state" json:"state"`
	PinCode      string `bson:"pinCode" json:"pinCode"`

	StudentMobile string `bson:"studentMobile" json:"studentMobile"`
	FatherMobile  string `bson:"fatherMobile" json:"fatherMobile"`
	MotherMobile  string `bson:"motherMobile" json:"motherMobile"`
	StudentEmail  string `bson:"studentEmail" json:"studentEmail"`
	ParentEmail   string `bson:"parentEmail" json:"parentEmail"`

	// Family and financials
	FatherOccupation string    `bson:"fatherOccupation" json:"fatherOccupation"`
	MotherOccupation string    `bson:"motherOccupation" json:"motherOccupation"`
	FatherIncome     string    `bson:"fatherIncome" json:"fatherIncome"`
	MotherIncome     string    `bson:"motherIncome" json:"motherIncome"`
	IncomeCurrency   string    `bson:"incomeCurrency" json:"incomeCurrency"`
	Siblings         []Sibling `bson:"siblings,omitempty" json:"siblings,omitempty"`

	// Academics
	EnrollmentStatus string `bson:"enrollmentStatus" json:"enrollmentStatus"`

	TenthScore    string `bson:"tenthScore" json:"tenthScore"`
	TenthSubjects string `bson:"tenthSubjects" json:"tenthSubjects"`
	TenthBoard    string `bson:"tenthBoard" json:"tenthBoard"`
	TenthYear     string `bson:"tenthYear" json:"tenthYear"`

	TwelfthScore    string `bson:"twelfthScore" json:"twelfthScore"`
	TwelfthSubjects string `bson:"twelfthSubjects" json:"twelfthSubjects"`
	TwelfthBoard    string `bson:"twelfthBoard" json:"twelfthBoard"`
	TwelfthYear     string `bson:"twelfthYear" json:"twelfthYear"`

	GraduationDegree      string `bson:"graduationDegree,omitempty" json:"graduationDegree,omitempty"`
	GraduationInstitution string `bson:"graduationInstitution,omitempty" json:"graduationInstitution,omitempty"`
	GraduationScore       string `bson:"graduationScore,omitempty" json:"graduationScore,omitempty"`
	GraduationYear        string `bson:"graduationYear,omitempty" json:"graduationYear,omitempty"`

	PostgradDegree      string `bson:"postgradDegree,omitempty" json:"postgradDegree,omitempty"`
	PostgradInstitution string `bson:"postgradInstitution,omitempty" json:"postgradInstitution,omitempty"`
	PostgradScore       string `bson:"postgradScore,omitempty" json:"postgradScore,omitempty"`
	PostgradYear        string `bson:"postgradYear,omitempty" json:"postgradYear,omitempty"`

	EntranceTests []EntranceTest `bson:"entranceTests,omitempty" json:"entranceTests,omitempty"`

	// Program
	ProgramType      string `bson:"programType" json:"programType"`
	FirstPreference  string `bson:"firstPreference" json:"firstPreference"`
	SecondPreference string `bson:"secondPreference,omitempty" json:"secondPreference,omitempty"`
	ThirdPreference  string `bson:"thirdPreference,omitempty" json:"thirdPreference,omitempty"`
	HostelRequired   string `bson:"hostelRequired" json:"hostelRequired"`

	// Consent. Both must be true at persistence time; a record with either
	// false must never be written.
	StudentDeclaration bool `bson:"studentDeclaration" json:"studentDeclaration"`
	ParentDeclaration  bool `bson:"parentDeclaration" json:"parentDeclaration"`

	// Attachments, keyed by document kind (idCard, tenthCertificate, ...)
	Documents map[string]DocumentMeta `bson:"documents,omitempty" json:"documents,omitempty"`

	// Lifecycle
	Status               string    `bson:"status" json:"status"`
	StatusDetails        string    `bson:"statusDetails,omitempty" json:"statusDetails,omitempty"`
	ExpectedResponseDate string    `bson:"expectedResponseDate,omitempty" json:"expectedResponseDate,omitempty"`
	SubmittedAt          time.Time `bson:"submittedAt" json:"submittedAt"`
	LastUpdated          time.Time `bson:"lastUpdated" json:"lastUpdated"`

	Audit AuditMeta `bson:"audit" json:"audit"`
}

// FullName joins the name fields for display in status responses.
func (a *Application) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// StatusRecord is the whitelisted projection returned by status lookups.
// Contact and financial details never appear here.
type StatusRecord struct {
	ApplicationID        string    `bson:"applicationId" json:"applicationId"`
	Name                 string    `bson:"-" json:"name"`
	Status               string    `bson:"status" json:"status"`
	ProgramType          string    `bson:"programType" json:"programType"`
	FirstPreference      string    `bson:"firstPreference" json:"firstPreference"`
	SubmittedAt          time.Time `bson:"submittedAt" json:"submittedAt"`
	LastUpdated          time.Time `bson:"lastUpdated" json:"lastUpdated"`
	StatusDetails        string    `bson:"statusDetails,omitempty" json:"statusDetails,omitempty"`
	ExpectedResponseDate string    `bson:"expectedResponseDate,omitempty" json:"expectedResponseDate,omitempty"`

	FirstName string `bson:"firstName" json:"-"`
	LastName  string `bson:"lastName" json:"-"`
}
