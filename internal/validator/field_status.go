package validator

import (
	"telcheck/internal/domain"
)

// ComputeFieldStatuses derives per-field statuses from validation outcomes.
// A failed error-severity rule makes a field invalid, a failed warning makes
// it unsure. Fields whose checks were all skipped get no entry.
func ComputeFieldStatuses(outcomes []Outcome) map[string]domain.FieldStatus {
	statuses := make(map[string]domain.FieldStatus)

	for i := range outcomes {
		o := &outcomes[i]
		if o.Skipped {
			continue
		}
		fs, ok := statuses[o.FieldPath]
		if !ok {
			fs = domain.FieldStatus{Status: domain.FieldStatusValid, Messages: []string{}}
		}
		if !o.Passed {
			if o.Severity == domain.ValidationSeverityError {
				fs.Status = domain.FieldStatusInvalid
			} else if fs.Status != domain.FieldStatusInvalid {
				fs.Status = domain.FieldStatusUnsure
			}
			fs.Messages = append(fs.Messages, o.Message)
		}
		statuses[o.FieldPath] = fs
	}

	return statuses
}
