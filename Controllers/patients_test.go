package Controllers

import (
	"testing"

	"ProSpine/Models"

	"github.com/stretchr/testify/assert"
)

func TestFetchPatientsBucketsAndCollection(t *testing.T) {
	db := setupHandlerTest(t)
	branch := seedTestBranch(t, db, "Main")

	active := seedTestPatient(t, db, branch.ID, "Asha Verma", "9800000001", Models.Patient{
		TreatmentType:       Models.TreatmentDaily,
		TreatmentCostPerDay: 400,
		Status:              string(Models.StatusActive),
	})
	seedTestPatient(t, db, branch.ID, "Binod Karki", "9800000002", Models.Patient{
		TreatmentType: Models.TreatmentPackage,
		TreatmentDays: 10,
		PackageCost:   5000,
		Status:        string(Models.StatusCompleted),
	})
	seedTestPatient(t, db, branch.ID, "Chandra Rai", "9800000003", Models.Patient{
		TreatmentType:       Models.TreatmentDaily,
		TreatmentCostPerDay: 300,
		Status:              string(Models.StatusInactive),
	})

	_, _, _, err := Models.AddPayment(db, active.ID, 500, "cash", "", 1)
	assert.NoError(t, err)

	c, w := getContext(t, "/FetchPatients", branch.ID, Models.RoleReception)
	FetchPatients(c)

	assert.Equal(t, 200, w.Code)
	data := responseData(t, w)
	assert.Equal(t, float64(3), data["total"])
	assert.Len(t, data["patients"].([]interface{}), 3)

	stats := data["stats"].(map[string]interface{})
	assert.Equal(t, float64(3), stats["total"])
	assert.Equal(t, float64(1), stats["active"])
	assert.Equal(t, float64(1), stats["completed"])
	assert.Equal(t, float64(1), stats["inactive"])
	assert.Equal(t, 500.0, stats["total_collection"])
}

func TestFetchPatientsPagination(t *testing.T) {
	db := setupHandlerTest(t)
	branch := seedTestBranch(t, db, "Main")

	for i := 0; i < 3; i++ {
		seedTestPatient(t, db, branch.ID, "Patient "+string(rune('A'+i)), "98000001"+string(rune('0'+i)), Models.Patient{
			TreatmentType:       Models.TreatmentDaily,
			TreatmentCostPerDay: 400,
		})
	}

	c, w := getContext(t, "/FetchPatients?limit=2&page=1", branch.ID, Models.RoleReception)
	FetchPatients(c)
	data := responseData(t, w)
	assert.Equal(t, float64(3), data["total"])
	assert.Len(t, data["patients"].([]interface{}), 2)

	c, w = getContext(t, "/FetchPatients?limit=2&page=2", branch.ID, Models.RoleReception)
	FetchPatients(c)
	data = responseData(t, w)
	assert.Len(t, data["patients"].([]interface{}), 1)
}
