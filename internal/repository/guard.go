// internal/repository/guard.go
package repository

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"scholarship-portal/internal/models"
)

// documentGuardSchema is the last line of defense before a write. The
// intake validator already enforces all of this; the guard exists so a
// future code path that skips intake can still never persist a record
// without consent or with a malformed identifier.
const documentGuardSchema = `{
	"type": "object",
	"required": [
		"applicationId", "firstName", "lastName",
		"studentMobile", "fatherMobile", "motherMobile",
		"programType", "firstPreference",
		"studentDeclaration", "parentDeclaration",
		"status", "submittedAt"
	],
	"properties": {
		"applicationId": {"type": "string", "pattern": "^IAF-[0-9]{4}-[0-9]{5}$"},
		"firstName": {"type": "string", "minLength": 1},
		"lastName": {"type": "string", "minLength": 1},
		"studentDeclaration": {"const": true},
		"parentDeclaration": {"const": true},
		"status": {"const": "Pending"}
	}
}`

var guardSchema = gojsonschema.NewStringLoader(documentGuardSchema)

// checkGuard validates the assembled document against the write guard.
func checkGuard(app *models.Application) error {
	raw, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("marshal application for guard check: %w", err)
	}

	result, err := gojsonschema.Validate(guardSchema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("run guard check: %w", err)
	}
	if !result.Valid() {
		first := result.Errors()[0]
		return fmt.Errorf("document rejected by write guard: %s", first.String())
	}
	return nil
}
