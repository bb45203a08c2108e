package validate

import (
	"strings"
	"time"

	"github.com/landy-dev/organizer-be/internal/models"
)

// Todo checks a candidate todo. The due date and time must be given
// together. The past-due rejection applies on creation only: an existing
// todo may age into the past without blocking later edits.
func Todo(title string, dateFor, timeFor *string, creating bool, now time.Time) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(title) == "" {
		errs["title"] = "title is required"
	} else if len(title) > maxTodoTitleLen {
		errs["title"] = "title must be at most 200 characters"
	}

	if dateFor == nil && timeFor != nil {
		errs["date_for"] = "La date doit être définie si l'heure est fournie."
		return errs
	}
	if timeFor == nil && dateFor != nil {
		errs["time_for"] = "L'heure doit être définie si la date est fournie."
		return errs
	}
	if dateFor == nil {
		return errs
	}

	if _, err := time.Parse(models.DateLayout, *dateFor); err != nil {
		errs["date_for"] = "date_for must use the YYYY-MM-DD format"
		return errs
	}
	if _, err := time.Parse(models.TimeLayout, *timeFor); err != nil {
		errs["time_for"] = "time_for must use the HH:MM:SS format"
		return errs
	}

	if creating {
		due, _ := models.CombineDateTime(*dateFor, *timeFor)
		if due.Before(now) {
			errs["date_for"] = "La date ne peut pas être dans le passé."
			errs["time_for"] = "L'heure ne peut pas être dans le passé."
		}
	}
	return errs
}

// NormalizeClock widens HH:MM input to the canonical HH:MM:SS form.
func NormalizeClock(clock string) string {
	if _, err := time.Parse("15:04", clock); err == nil {
		return clock + ":00"
	}
	return clock
}
