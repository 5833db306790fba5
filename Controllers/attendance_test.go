package Controllers

import (
	"testing"
	"time"

	"ProSpine/Models"

	"github.com/stretchr/testify/assert"
)

func TestFetchAttendanceListsUnmarkedPatients(t *testing.T) {
	db := setupHandlerTest(t)
	branch := seedTestBranch(t, db, "Main")
	today := time.Now().Format("2006-01-02")

	funded := seedTestPatient(t, db, branch.ID, "Asha Verma", "9800000001", Models.Patient{
		TreatmentType:       Models.TreatmentDaily,
		TreatmentCostPerDay: 400,
	})
	_, _, _, err := Models.AddPayment(db, funded.ID, 400, "cash", "", 1)
	assert.NoError(t, err)
	_, err = Models.MarkAttendance(db, Models.MarkAttendanceInput{
		PatientID:  funded.ID,
		Date:       today,
		EmployeeID: 1,
	})
	assert.NoError(t, err)

	seedTestPatient(t, db, branch.ID, "Binod Karki", "9800000002", Models.Patient{
		TreatmentType:       Models.TreatmentDaily,
		TreatmentCostPerDay: 400,
	})

	c, w := getContext(t, "/FetchAttendance?date="+today, branch.ID, Models.RoleReception)
	FetchAttendance(c)

	assert.Equal(t, 200, w.Code)
	data := responseData(t, w)
	assert.Equal(t, float64(2), data["total"])

	rows := data["rows"].([]interface{})
	assert.Len(t, rows, 2)

	byName := map[string]map[string]interface{}{}
	for _, raw := range rows {
		row := raw.(map[string]interface{})
		byName[row["patient_name"].(string)] = row
	}

	// Marked patient: consumed the day's session, balance back to zero.
	marked := byName["Asha Verma"]
	assert.Equal(t, true, marked["is_present"])
	assert.Equal(t, Models.AttendancePresent, marked["attendance_status"])
	assert.Equal(t, 0.0, marked["effective_balance"])

	// Unmarked patient still appears, with the shortfall precomputed.
	unmarked := byName["Binod Karki"]
	assert.Equal(t, false, unmarked["is_present"])
	assert.Equal(t, "", unmarked["attendance_status"])
	assert.Nil(t, unmarked["attendance_id"])
	assert.Equal(t, 0.0, unmarked["effective_balance"])
	assert.Equal(t, 400.0, unmarked["cost_per_day"])
	assert.Equal(t, 400.0, unmarked["shortfall"])

	stats := data["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["present"])
	assert.Equal(t, 400.0, stats["collected"])
}

func TestFetchAttendanceStatusFilter(t *testing.T) {
	db := setupHandlerTest(t)
	branch := seedTestBranch(t, db, "Main")
	today := time.Now().Format("2006-01-02")

	funded := seedTestPatient(t, db, branch.ID, "Asha Verma", "9800000001", Models.Patient{
		TreatmentType:       Models.TreatmentDaily,
		TreatmentCostPerDay: 400,
	})
	_, _, _, err := Models.AddPayment(db, funded.ID, 400, "cash", "", 1)
	assert.NoError(t, err)
	_, err = Models.MarkAttendance(db, Models.MarkAttendanceInput{
		PatientID:  funded.ID,
		Date:       today,
		EmployeeID: 1,
	})
	assert.NoError(t, err)

	seedTestPatient(t, db, branch.ID, "Binod Karki", "9800000002", Models.Patient{
		TreatmentType:       Models.TreatmentDaily,
		TreatmentCostPerDay: 400,
	})

	c, w := getContext(t, "/FetchAttendance?date="+today+"&status=absent", branch.ID, Models.RoleReception)
	FetchAttendance(c)
	data := responseData(t, w)
	rows := data["rows"].([]interface{})
	assert.Len(t, rows, 1)
	assert.Equal(t, "Binod Karki", rows[0].(map[string]interface{})["patient_name"])

	c, w = getContext(t, "/FetchAttendance?date="+today+"&status=present", branch.ID, Models.RoleReception)
	FetchAttendance(c)
	data = responseData(t, w)
	rows = data["rows"].([]interface{})
	assert.Len(t, rows, 1)
	assert.Equal(t, "Asha Verma", rows[0].(map[string]interface{})["patient_name"])
}

func TestFetchAttendanceSearch(t *testing.T) {
	db := setupHandlerTest(t)
	branch := seedTestBranch(t, db, "Main")

	seedTestPatient(t, db, branch.ID, "Asha Verma", "9800000001", Models.Patient{
		TreatmentType:       Models.TreatmentDaily,
		TreatmentCostPerDay: 400,
	})
	seedTestPatient(t, db, branch.ID, "Binod Karki", "9800000002", Models.Patient{
		TreatmentType:       Models.TreatmentDaily,
		TreatmentCostPerDay: 400,
	})

	c, w := getContext(t, "/FetchAttendance?date=2026-03-05&search=Karki", branch.ID, Models.RoleReception)
	FetchAttendance(c)
	data := responseData(t, w)
	rows := data["rows"].([]interface{})
	assert.Len(t, rows, 1)
	assert.Equal(t, "Binod Karki", rows[0].(map[string]interface{})["patient_name"])
}
